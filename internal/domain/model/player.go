package model

// Relationships holds the player's standing with manager, team and fans.
type Relationships struct {
	Manager int `json:"manager"`
	Team    int `json:"team"`
	Fans    int `json:"fans"`
}

// Player is the bounded attribute state of one career.
type Player struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Team        string `json:"team"`
	Nationality string `json:"nationality"`
	LeagueID    int    `json:"leagueId"`

	Energy    int `json:"energy"`
	Morale    int `json:"morale"`
	Form      int `json:"form"`
	Attacking int `json:"attacking"`
	Technique int `json:"technique"`
	Fitness   int `json:"fitness"`

	Cash          int64 `json:"cash"`
	Wage          int   `json:"wage"`
	PassiveIncome int   `json:"passiveIncome"`
	Clout         int64 `json:"clout"`

	Caps               int `json:"caps"`
	InternationalGoals int `json:"internationalGoals"`
	GoalsScored        int `json:"goalsScored"`
	Assists            int `json:"assists"`
	MatchesPlayed      int `json:"matchesPlayed"`
	SeasonMatchCount   int `json:"seasonMatchCount"`
	TalentPoints       int `json:"talentPoints"`

	Talents       []string      `json:"talents"`
	Inventory     []string      `json:"inventory"`
	Relationships Relationships `json:"relationships"`

	Sandbox bool `json:"sandbox,omitempty"`
}

// Defaults used for a fresh career and as coercion fallbacks.
const (
	DefaultName        = "Rookie One"
	DefaultTeam        = "Sunday League FC"
	DefaultNationality = "England"
	DefaultPosition    = "Forward"
	DefaultLeagueID    = 2
)

// NewPlayer returns the fixed starting state before any career choices.
func NewPlayer() Player {
	return Player{
		Name:          DefaultName,
		Position:      DefaultPosition,
		Team:          DefaultTeam,
		Nationality:   DefaultNationality,
		LeagueID:      DefaultLeagueID,
		Energy:        100,
		Morale:        80,
		Form:          50,
		Attacking:     40,
		Technique:     40,
		Fitness:       40,
		Cash:          100,
		Wage:          100,
		Clout:         1200,
		Talents:       []string{},
		Inventory:     []string{},
		Relationships: Relationships{Manager: 50, Team: 50, Fans: 10},
	}
}

// Clone returns a deep copy.
func (p Player) Clone() Player {
	c := p
	c.Talents = append([]string(nil), p.Talents...)
	c.Inventory = append([]string(nil), p.Inventory...)
	if c.Talents == nil {
		c.Talents = []string{}
	}
	if c.Inventory == nil {
		c.Inventory = []string{}
	}
	return c
}

// HasTalent reports whether id is unlocked.
func (p Player) HasTalent(id string) bool {
	return contains(p.Talents, id)
}

// Owns reports whether item id is in the inventory.
func (p Player) Owns(id string) bool {
	return contains(p.Inventory, id)
}

// OverallRating is the floored mean of the three skill attributes.
func (p Player) OverallRating() int {
	return (p.Attacking + p.Technique + p.Fitness) / 3
}

// MarketValue scales the overall rating by clout.
func (p Player) MarketValue() int64 {
	return int64(float64(p.OverallRating()) * 15000 * (1 + float64(p.Clout)/100000))
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
