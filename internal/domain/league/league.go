// Package league maintains the three divisions of a career: result
// application, simulation of the other fixtures, ranking and the
// end-of-season promotion and relegation.
package league

import (
	"fmt"
	"slices"
	"sort"

	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/random"
)

// Points per result.
const (
	pointsWin  = 3
	pointsDraw = 1
	maxGoals   = 3
)

// Divisions holds the three leagues, top tier first. Methods that record
// results mutate the receiver in place; use Clone for a working copy.
type Divisions []model.League

// Fixture is one simulated match between two non-player clubs.
type Fixture struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

// Clone returns a deep copy.
func (d Divisions) Clone() Divisions {
	if d == nil {
		return nil
	}
	out := make(Divisions, len(d))
	for i, l := range d {
		out[i] = l
		out[i].Teams = append([]model.TeamStanding(nil), l.Teams...)
	}
	return out
}

// Division returns division id or false when it does not exist.
func (d Divisions) Division(id int) (model.League, bool) {
	if id < 0 || id >= len(d) {
		return model.League{}, false
	}
	return d[id], true
}

// LeagueOf returns the division holding team.
func (d Divisions) LeagueOf(team string) (int, bool) {
	for _, l := range d {
		if l.Find(team) >= 0 {
			return l.ID, true
		}
	}
	return 0, false
}

// Initialize seeds all three divisions from the catalog with zeroed standings,
// placing playerTeam in playerLeague. When the catalog lists playerTeam in
// another division, the club it displaces from playerLeague takes that slot so
// the player's club appears exactly once.
func Initialize(cat *catalog.Catalog, playerTeam string, playerLeague int) Divisions {
	rosters := make([][]string, model.DivisionCount)
	for id := range rosters {
		rosters[id] = cat.Roster(id)
	}
	if playerTeam != "" && playerLeague >= 0 && playerLeague < len(rosters) {
		target := rosters[playerLeague]
		if !contains(target, playerTeam) && len(target) > 0 {
			displaced := target[len(target)-1]
			for id, r := range rosters {
				if id == playerLeague {
					continue
				}
				if i := slices.Index(r, playerTeam); i >= 0 {
					r[i] = displaced
				}
			}
		}
	}

	d := make(Divisions, model.DivisionCount)
	for id := range d {
		team := ""
		if id == playerLeague {
			team = playerTeam
		}
		d[id] = SeedDivision(id, cat.LeagueName(id), rosters[id], team)
	}
	return d
}

// SeedDivision builds a division with zeroed standings. A playerTeam missing
// from the roster takes the place of the roster's last club and is listed first.
func SeedDivision(id int, name string, roster []string, playerTeam string) model.League {
	teams := append([]string(nil), roster...)
	if playerTeam != "" && !contains(teams, playerTeam) {
		if len(teams) > 0 {
			teams = teams[:len(teams)-1]
		}
		teams = append([]string{playerTeam}, teams...)
	}
	l := model.League{ID: id, Name: name, Tier: id + 1, Teams: make([]model.TeamStanding, len(teams))}
	for i, t := range teams {
		l.Teams[i] = model.TeamStanding{Name: t}
	}
	return l
}

// ApplyMatchResult records the player's match in division id. A name that is
// not in the division is skipped.
func (d Divisions) ApplyMatchResult(id int, playerTeam, opponent string, home, away int) {
	if id < 0 || id >= len(d) {
		return
	}
	l := d[id]
	if i := l.Find(playerTeam); i >= 0 {
		record(&l.Teams[i], home, away)
	}
	if i := l.Find(opponent); i >= 0 {
		record(&l.Teams[i], away, home)
	}
}

// SimulateRemainder plays every club of division id not in exclude against
// its neighbour in insertion order, scores uniform in 0..3. An odd club out
// sits the week out.
func (d Divisions) SimulateRemainder(id int, exclude []string, rng random.Source) []Fixture {
	if id < 0 || id >= len(d) {
		return nil
	}
	teams := d[id].Teams
	var idx []int
	for i := range teams {
		if !contains(exclude, teams[i].Name) {
			idx = append(idx, i)
		}
	}
	fixtures := make([]Fixture, 0, len(idx)/2)
	for i := 0; i+1 < len(idx); i += 2 {
		h, a := &teams[idx[i]], &teams[idx[i+1]]
		s1 := random.Intn(rng, maxGoals+1)
		s2 := random.Intn(rng, maxGoals+1)
		record(h, s1, s2)
		record(a, s2, s1)
		fixtures = append(fixtures, Fixture{Home: h.Name, Away: a.Name, HomeScore: s1, AwayScore: s2})
	}
	return fixtures
}

// RankedStandings returns division id ordered by points then goal difference.
// Ties keep insertion order. The division itself is not reordered.
func (d Divisions) RankedStandings(id int) []model.TeamStanding {
	if id < 0 || id >= len(d) {
		return nil
	}
	return Rank(d[id].Teams)
}

// Rank sorts a copy of teams by points then goal difference, stable.
func Rank(teams []model.TeamStanding) []model.TeamStanding {
	out := append([]model.TeamStanding(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].GoalDifference > out[j].GoalDifference
	})
	return out
}

// Position returns the 1-based rank of team in division id, or 0.
func (d Divisions) Position(id int, team string) int {
	for i, t := range d.RankedStandings(id) {
		if t.Name == team {
			return i + 1
		}
	}
	return 0
}

// Validate checks a loaded set of divisions: three leagues with ids 0..2,
// each holding DivisionSize unique clubs.
func Validate(d Divisions) error {
	if len(d) != model.DivisionCount {
		return fmt.Errorf("%w: want %d divisions, got %d", ErrUnknownDivision, model.DivisionCount, len(d))
	}
	seen := make(map[string]int)
	for i, l := range d {
		if l.ID != i {
			return fmt.Errorf("%w: division at %d has id %d", ErrUnknownDivision, i, l.ID)
		}
		if len(l.Teams) != model.DivisionSize {
			return fmt.Errorf("%w: division %d has %d teams", ErrDivisionSize, i, len(l.Teams))
		}
		for _, t := range l.Teams {
			if prev, ok := seen[t.Name]; ok {
				return fmt.Errorf("%w: %q in divisions %d and %d", ErrDuplicateTeam, t.Name, prev, i)
			}
			seen[t.Name] = i
		}
	}
	return nil
}

func record(t *model.TeamStanding, scored, conceded int) {
	t.Played++
	t.GoalDifference += scored - conceded
	switch {
	case scored > conceded:
		t.Won++
		t.Points += pointsWin
	case scored == conceded:
		t.Drawn++
		t.Points += pointsDraw
	default:
		t.Lost++
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
