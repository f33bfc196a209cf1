package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/okian/matchday/internal/domain/attributes"
	"github.com/okian/matchday/internal/domain/league"
	"github.com/okian/matchday/internal/domain/model"
)

// IsPristine reports whether data is a career nobody has played yet.
func IsPristine(data model.SaveData) bool {
	return data.Player.Name == model.DefaultName && data.Week == 1
}

// Encode renders data as a save document. Pristine careers are refused with
// ErrPristineCareer.
func Encode(data model.SaveData) ([]byte, error) {
	if IsPristine(data) {
		return nil, ErrPristineCareer
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return b, nil
}

// Decode parses and validates a save document. Every numeric field is
// coerced; structural problems return ErrCorruptSave.
func Decode(doc []byte) (model.SaveData, error) {
	var raw map[string]any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return model.SaveData{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	player, ok := raw["player"].(map[string]any)
	if !ok {
		return model.SaveData{}, fmt.Errorf("%w: missing player", ErrCorruptSave)
	}
	rawLeagues, ok := raw["leagues"].([]any)
	if !ok || len(rawLeagues) != model.DivisionCount {
		return model.SaveData{}, fmt.Errorf("%w: want %d leagues", ErrCorruptSave, model.DivisionCount)
	}

	p, err := attributes.Sanitize(player)
	if err != nil {
		return model.SaveData{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	divs := make(league.Divisions, 0, model.DivisionCount)
	for i, rl := range rawLeagues {
		l, err := decodeLeague(i, rl)
		if err != nil {
			return model.SaveData{}, err
		}
		divs = append(divs, l)
	}
	if err := league.Validate(divs); err != nil {
		return model.SaveData{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	id, ok := divs.LeagueOf(p.Team)
	if !ok {
		return model.SaveData{}, fmt.Errorf("%w: club %q not in any division", ErrCorruptSave, p.Team)
	}
	// The rosters are authoritative for the player's division.
	p.LeagueID = id

	data := model.SaveData{
		Player:  p,
		Week:    max(1, int(attributes.Number(raw["week"], 1))),
		Leagues: divs,
	}
	if s, ok := raw["lastSaved"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			data.LastSaved = t
		}
	}
	return data, nil
}

func decodeLeague(i int, v any) (model.League, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return model.League{}, fmt.Errorf("%w: league %d is not an object", ErrCorruptSave, i)
	}
	teams, ok := m["teams"].([]any)
	if !ok {
		return model.League{}, fmt.Errorf("%w: league %d has no teams", ErrCorruptSave, i)
	}
	name, _ := m["name"].(string)
	l := model.League{ID: i, Name: name, Tier: i + 1, Teams: make([]model.TeamStanding, 0, len(teams))}
	for _, t := range teams {
		tm, ok := t.(map[string]any)
		if !ok {
			return model.League{}, fmt.Errorf("%w: league %d has a malformed team", ErrCorruptSave, i)
		}
		tn, _ := tm["name"].(string)
		if strings.TrimSpace(tn) == "" {
			return model.League{}, fmt.Errorf("%w: league %d has an unnamed team", ErrCorruptSave, i)
		}
		l.Teams = append(l.Teams, model.TeamStanding{
			Name:           tn,
			Played:         count(tm["played"]),
			Won:            count(tm["won"]),
			Drawn:          count(tm["drawn"]),
			Lost:           count(tm["lost"]),
			Points:         count(tm["points"]),
			GoalDifference: int(attributes.Number(tm["gd"], 0)),
		})
	}
	return l, nil
}

func count(v any) int {
	return attributes.Floor0(int(attributes.Number(v, 0)))
}

// SlotOf summarizes data for listing under name.
func SlotOf(name string, data model.SaveData) Slot {
	return Slot{
		Name:      name,
		Player:    data.Player.Name,
		Team:      data.Player.Team,
		Week:      data.Week,
		LastSaved: data.LastSaved,
	}
}

// ValidSlot reports whether name can be used as a slot key.
func ValidSlot(name string) error {
	if name == "" || len(name) > 128 || strings.ContainsAny(name, " /\\:\t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, name)
	}
	return nil
}
