package attributes

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/okian/matchday/internal/domain/model"
)

// Fallbacks for fields that are missing or not numeric.
const (
	fallbackEnergy   = 100
	fallbackMorale   = 80
	fallbackCash     = 100
	fallbackWage     = 100
	fallbackSkill    = 40
	fallbackForm     = 50
	fallbackManager  = 50
	fallbackTeamRel  = 50
	fallbackFans     = 10
	maxSafeMagnitude = 1 << 53
)

// Number coerces v to a finite float. Missing, non-numeric, NaN and infinite
// values become fallback. Numeric strings are parsed.
func Number(v any, fallback float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return fallback
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return fallback
		}
		f = parsed
	default:
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return Clamp(f, -maxSafeMagnitude, maxSafeMagnitude)
}

func intField(raw map[string]any, key string, fallback int) int {
	return int(math.Floor(Number(raw[key], float64(fallback))))
}

func int64Field(raw map[string]any, key string, fallback int64) int64 {
	return int64(math.Floor(Number(raw[key], float64(fallback))))
}

func stringField(raw map[string]any, key, fallback string) string {
	if s, ok := raw[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// StringSet keeps the string members of a list-shaped value. Anything else
// becomes an empty set.
func StringSet(v any) []string {
	var out []string
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return unique(out)
}

func relationships(v any) model.Relationships {
	obj, ok := v.(map[string]any)
	if !ok {
		return model.Relationships{Manager: fallbackManager, Team: fallbackTeamRel, Fans: fallbackFans}
	}
	return model.Relationships{
		Manager: intField(obj, "manager", fallbackManager),
		Team:    intField(obj, "team", fallbackTeamRel),
		Fans:    intField(obj, "fans", fallbackFans),
	}
}

// Sanitize builds a player from an externally sourced document, replacing
// every malformed field with its fallback and clamping the result.
// Sanitize(ToDocument(Sanitize(x))) equals Sanitize(x).
func Sanitize(raw map[string]any) (model.Player, error) {
	if raw == nil {
		return model.Player{}, ErrMissingPlayer
	}
	p := model.Player{
		Name:        stringField(raw, "name", model.DefaultName),
		Position:    stringField(raw, "position", model.DefaultPosition),
		Team:        stringField(raw, "team", model.DefaultTeam),
		Nationality: stringField(raw, "nationality", model.DefaultNationality),
		LeagueID:    intField(raw, "leagueId", model.DefaultLeagueID),

		Energy:    intField(raw, "energy", fallbackEnergy),
		Morale:    intField(raw, "morale", fallbackMorale),
		Form:      intField(raw, "form", fallbackForm),
		Attacking: intField(raw, "attacking", fallbackSkill),
		Technique: intField(raw, "technique", fallbackSkill),
		Fitness:   intField(raw, "fitness", fallbackSkill),

		Cash:          int64Field(raw, "cash", fallbackCash),
		Wage:          intField(raw, "wage", fallbackWage),
		PassiveIncome: intField(raw, "passiveIncome", 0),
		Clout:         int64Field(raw, "clout", 0),

		Caps:               intField(raw, "caps", 0),
		InternationalGoals: intField(raw, "internationalGoals", 0),
		GoalsScored:        intField(raw, "goalsScored", 0),
		Assists:            intField(raw, "assists", 0),
		MatchesPlayed:      intField(raw, "matchesPlayed", 0),
		SeasonMatchCount:   intField(raw, "seasonMatchCount", 0),
		TalentPoints:       intField(raw, "talentPoints", 0),

		Talents:       StringSet(raw["talents"]),
		Inventory:     StringSet(raw["inventory"]),
		Relationships: relationships(raw["relationships"]),
	}
	if sandbox, ok := raw["sandbox"].(bool); ok {
		p.Sandbox = sandbox
	}
	return Normalize(p), nil
}

// ToDocument renders p in the generic document shape Sanitize accepts.
func ToDocument(p model.Player) (map[string]any, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
