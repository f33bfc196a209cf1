package league

import (
	"fmt"

	"github.com/okian/matchday/internal/domain/model"
)

// Clubs exchanged between adjacent divisions each season.
const swapCount = 2

// Movement describes what the season boundary did to the player's club.
type Movement string

// Movements.
const (
	Promoted  Movement = "promoted"
	Relegated Movement = "relegated"
	Unchanged Movement = "unchanged"
)

// SeasonOutcome reports the result of EndOfSeason.
type SeasonOutcome struct {
	PreviousLeague int      `json:"previousLeague"`
	LeagueID       int      `json:"leagueId"`
	Movement       Movement `json:"movement"`
	// Promoted[i] lists the clubs that moved up into division i.
	Promoted [][]string `json:"promoted"`
	// Relegated[i] lists the clubs that dropped into division i.
	Relegated [][]string `json:"relegated"`
}

// EndOfSeason swaps the bottom two of each division with the top two of the
// one below, resets every standing and re-derives the player's division.
// The receiver is not modified.
func (d Divisions) EndOfSeason(playerTeam string, playerLeague int) (Divisions, SeasonOutcome, error) {
	if len(d) != model.DivisionCount {
		return nil, SeasonOutcome{}, fmt.Errorf("%w: want %d divisions, got %d", ErrUnknownDivision, model.DivisionCount, len(d))
	}
	for i, l := range d {
		if len(l.Teams) != model.DivisionSize {
			return nil, SeasonOutcome{}, fmt.Errorf("%w: division %d has %d teams", ErrDivisionSize, i, len(l.Teams))
		}
	}

	tier1 := Rank(d[0].Teams)
	tier2 := Rank(d[1].Teams)
	tier3 := Rank(d[2].Teams)
	cut := model.DivisionSize - swapCount

	t1Relegated := tier1[cut:]
	t2Promoted := tier2[:swapCount]
	t2Relegated := tier2[cut:]
	t3Promoted := tier3[:swapCount]

	out := d.Clone()
	out[0].Teams = concat(tier1[:cut], t2Promoted)
	out[1].Teams = concat(tier2[swapCount:cut], t1Relegated, t3Promoted)
	out[2].Teams = concat(tier3[swapCount:], t2Relegated)
	for i := range out {
		for j := range out[i].Teams {
			out[i].Teams[j].Reset()
		}
	}

	newLeague := playerLeague
	switch {
	case playerLeague == 2 && hasTeam(t3Promoted, playerTeam):
		newLeague = 1
	case playerLeague == 1 && hasTeam(t2Promoted, playerTeam):
		newLeague = 0
	case playerLeague == 1 && hasTeam(t2Relegated, playerTeam):
		newLeague = 2
	case playerLeague == 0 && hasTeam(t1Relegated, playerTeam):
		newLeague = 1
	}

	outcome := SeasonOutcome{
		PreviousLeague: playerLeague,
		LeagueID:       newLeague,
		Movement:       Unchanged,
		Promoted:       [][]string{names(t2Promoted), names(t3Promoted), nil},
		Relegated:      [][]string{nil, names(t1Relegated), names(t2Relegated)},
	}
	switch {
	case newLeague < playerLeague:
		outcome.Movement = Promoted
	case newLeague > playerLeague:
		outcome.Movement = Relegated
	}
	return out, outcome, nil
}

func concat(parts ...[]model.TeamStanding) []model.TeamStanding {
	var out []model.TeamStanding
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func hasTeam(teams []model.TeamStanding, name string) bool {
	for _, t := range teams {
		if t.Name == name {
			return true
		}
	}
	return false
}

func names(teams []model.TeamStanding) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.Name
	}
	return out
}
