package progression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/league"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/random"
)

// SandboxCash is the starting balance of a sandbox career.
const SandboxCash int64 = 999_999_999

const (
	baseSkill      = 40
	skillSpread    = 10
	defaultStartUp = 100
)

// NewCareer describes a career to create.
type NewCareer struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	Team        string `json:"team"`
	Sandbox     bool   `json:"sandbox"`
	StartCash   int64  `json:"startCash"`
	StartWage   int    `json:"startWage"`
}

// FromStarterClub fills the club terms of nc from a catalog starter club:
// wage, and cash of 100 plus the signing bonus.
func FromStarterClub(nc NewCareer, club catalog.StarterClub) NewCareer {
	nc.Team = club.Name
	nc.StartWage = club.Wage
	nc.StartCash = defaultStartUp + club.SigningBonus
	return nc
}

// CreateCareer builds the starting state. The three skills share a baseline
// of 40 plus 0 to 9; the club's division is found in the catalog rosters.
func CreateCareer(nc NewCareer, cat *catalog.Catalog, rng random.Source) (State, error) {
	name := strings.TrimSpace(nc.Name)
	if name == "" {
		return State{}, fmt.Errorf("%w: empty name", ErrInvalidCareer)
	}
	if nc.StartWage < 0 {
		return State{}, fmt.Errorf("%w: negative wage %d", ErrInvalidCareer, nc.StartWage)
	}

	p := model.NewPlayer()
	p.Name = name
	if nc.Position != "" {
		p.Position = nc.Position
	}
	if nc.Nationality != "" {
		p.Nationality = nc.Nationality
	}
	if nc.Team != "" {
		p.Team = nc.Team
	}
	skill := baseSkill + random.Intn(rng, skillSpread)
	p.Attacking, p.Technique, p.Fitness = skill, skill, skill
	p.Cash = nc.StartCash
	if nc.Sandbox {
		p.Cash = SandboxCash
	}
	p.Wage = nc.StartWage
	p.Sandbox = nc.Sandbox
	p.LeagueID = rosterOf(cat, p.Team)

	return State{
		Player:    p,
		Divisions: league.Initialize(cat, p.Team, p.LeagueID),
		Week:      1,
	}, nil
}

func rosterOf(cat *catalog.Catalog, team string) int {
	for id, r := range cat.Rosters {
		if slices.Contains(r, team) {
			return id
		}
	}
	return model.DefaultLeagueID
}
