// Package catalog holds the fixed game data: rosters, nations, starter clubs,
// lifestyle items and narrative events. Defaults can be overridden from YAML.
package catalog

import (
	"fmt"
	"slices"

	"github.com/okian/matchday/internal/domain/model"
)

// ItemType decides whether an item is tracked as owned.
type ItemType string

// Item types.
const (
	Consumable ItemType = "CONSUMABLE"
	Gear       ItemType = "GEAR"
	Asset      ItemType = "ASSET"
)

// ItemEffects are applied once on purchase.
type ItemEffects struct {
	Energy    int   `yaml:"energy" json:"energy"`
	Morale    int   `yaml:"morale" json:"morale"`
	Attacking int   `yaml:"attacking" json:"attacking"`
	Technique int   `yaml:"technique" json:"technique"`
	Fitness   int   `yaml:"fitness" json:"fitness"`
	Clout     int64 `yaml:"clout" json:"clout"`
	Form      int   `yaml:"form" json:"form"`
	Income    int   `yaml:"income" json:"income"`
}

// Item is a lifestyle purchase.
type Item struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Type        ItemType    `yaml:"type" json:"type"`
	Cost        int64       `yaml:"cost" json:"cost"`
	Effects     ItemEffects `yaml:"effects" json:"effects"`
	Description string      `yaml:"description" json:"description"`
}

// ChoiceEffect is applied when a narrative choice is taken.
type ChoiceEffect struct {
	Morale  int   `yaml:"morale" json:"morale"`
	Energy  int   `yaml:"energy" json:"energy"`
	Fitness int   `yaml:"fitness" json:"fitness"`
	Cash    int64 `yaml:"cash" json:"cash"`
	Clout   int64 `yaml:"clout" json:"clout"`
	Form    int   `yaml:"form" json:"form"`
}

// Choice is one answer to a narrative event.
type Choice struct {
	Text       string       `yaml:"text" json:"text"`
	Effect     ChoiceEffect `yaml:"effect" json:"effect"`
	ResultText string       `yaml:"result_text" json:"resultText"`
}

// NarrativeEvent is a between-match decision.
type NarrativeEvent struct {
	Title    string   `yaml:"title" json:"title"`
	Text     string   `yaml:"text" json:"text"`
	Choices  []Choice `yaml:"choices" json:"choices"`
	IsCallUp bool     `yaml:"-" json:"isCallUp,omitempty"`
}

// StarterClub is a club a new career can sign for.
type StarterClub struct {
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	Wage         int    `yaml:"wage" json:"wage"`
	SigningBonus int64  `yaml:"signing_bonus" json:"signingBonus"`
}

// Catalog is the full set of static game data.
type Catalog struct {
	LeagueNames  []string         `yaml:"league_names"`
	Rosters      [][]string       `yaml:"rosters"`
	Nations      []string         `yaml:"nations"`
	StarterClubs []StarterClub    `yaml:"starter_clubs"`
	SquadNames   []string         `yaml:"squad_names"`
	Items        []Item           `yaml:"items"`
	Events       []NarrativeEvent `yaml:"events"`
}

// Roster returns the clubs seeded into division id.
func (c *Catalog) Roster(id int) []string {
	if id < 0 || id >= len(c.Rosters) {
		return nil
	}
	return slices.Clone(c.Rosters[id])
}

// LeagueName returns the display name of division id.
func (c *Catalog) LeagueName(id int) string {
	if id < 0 || id >= len(c.LeagueNames) {
		return ""
	}
	return c.LeagueNames[id]
}

// AllClubs lists every club across the divisions, top tier first.
func (c *Catalog) AllClubs() []string {
	var out []string
	for _, r := range c.Rosters {
		out = append(out, r...)
	}
	return out
}

// Item looks up a lifestyle item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// StarterClub looks up a starter club by name.
func (c *Catalog) StarterClub(name string) (StarterClub, bool) {
	for _, s := range c.StarterClubs {
		if s.Name == name {
			return s, true
		}
	}
	return StarterClub{}, false
}

// CallUpEvent is the single-choice event offered when the national team calls.
func CallUpEvent(nationality string) NarrativeEvent {
	return NarrativeEvent{
		Title: "International Duty",
		Text:  fmt.Sprintf("You have been selected to play for %s!", nationality),
		Choices: []Choice{{
			Text:       "Accept Call-up",
			Effect:     ChoiceEffect{Morale: 10, Form: 5},
			ResultText: "You join the national squad.",
		}},
		IsCallUp: true,
	}
}

// Validate checks the structural rules the engine relies on.
func (c *Catalog) Validate() error {
	if len(c.LeagueNames) != model.DivisionCount {
		return fmt.Errorf("%w: want %d league names, got %d", ErrInvalidCatalog, model.DivisionCount, len(c.LeagueNames))
	}
	if len(c.Rosters) != model.DivisionCount {
		return fmt.Errorf("%w: want %d rosters, got %d", ErrInvalidCatalog, model.DivisionCount, len(c.Rosters))
	}
	seen := make(map[string]struct{})
	for i, r := range c.Rosters {
		if len(r) != model.DivisionSize {
			return fmt.Errorf("%w: roster %d has %d clubs", ErrInvalidCatalog, i, len(r))
		}
		for _, name := range r {
			if name == "" {
				return fmt.Errorf("%w: roster %d has an empty club name", ErrInvalidCatalog, i)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: club %q listed twice", ErrInvalidCatalog, name)
			}
			seen[name] = struct{}{}
		}
	}
	if len(c.Nations) == 0 {
		return fmt.Errorf("%w: no nations", ErrInvalidCatalog)
	}
	for _, ev := range c.Events {
		if len(ev.Choices) == 0 {
			return fmt.Errorf("%w: event %q has no choices", ErrInvalidCatalog, ev.Title)
		}
	}
	ids := make(map[string]struct{})
	for _, it := range c.Items {
		if _, dup := ids[it.ID]; dup || it.ID == "" {
			return fmt.Errorf("%w: bad item id %q", ErrInvalidCatalog, it.ID)
		}
		switch it.Type {
		case Consumable, Gear, Asset:
		default:
			return fmt.Errorf("%w: item %q has unknown type %q", ErrInvalidCatalog, it.ID, it.Type)
		}
		ids[it.ID] = struct{}{}
	}
	return nil
}
