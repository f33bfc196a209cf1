// Package attributes holds the clamping and coercion primitives applied to a
// player's bounded state after every mutation.
package attributes

import (
	"cmp"

	"github.com/okian/matchday/internal/domain/model"
)

// Bounds of the percentage-style attributes.
const (
	Min = 0
	Max = 100
)

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// ClampUnit limits v to [0, 100].
func ClampUnit(v int) int {
	return Clamp(v, Min, Max)
}

// Floor0 limits v to be non-negative.
func Floor0[T cmp.Ordered](v T) T {
	var zero T
	return max(zero, v)
}

// Delta is a signed change applied by Adjust.
type Delta struct {
	Energy        int
	Morale        int
	Form          int
	Attacking     int
	Technique     int
	Fitness       int
	Cash          int64
	Clout         int64
	PassiveIncome int
	Relationships model.RelationshipDelta
}

// Adjust applies d to p and returns the clamped result. p is not modified.
func Adjust(p model.Player, d Delta) model.Player {
	out := p.Clone()
	out.Energy = ClampUnit(p.Energy + d.Energy)
	out.Morale = ClampUnit(p.Morale + d.Morale)
	out.Form = ClampUnit(p.Form + d.Form)
	out.Attacking = ClampUnit(p.Attacking + d.Attacking)
	out.Technique = ClampUnit(p.Technique + d.Technique)
	out.Fitness = ClampUnit(p.Fitness + d.Fitness)
	out.Cash = p.Cash + d.Cash
	out.Clout = Floor0(p.Clout + d.Clout)
	out.PassiveIncome = Floor0(p.PassiveIncome + d.PassiveIncome)
	out.Relationships = model.Relationships{
		Manager: ClampUnit(p.Relationships.Manager + d.Relationships.Manager),
		Team:    ClampUnit(p.Relationships.Team + d.Relationships.Team),
		Fans:    ClampUnit(p.Relationships.Fans + d.Relationships.Fans),
	}
	return out
}

// Normalize clamps every bounded field of p and removes duplicate set members.
// Normalize(Normalize(p)) == Normalize(p).
func Normalize(p model.Player) model.Player {
	out := p.Clone()
	out.Energy = ClampUnit(p.Energy)
	out.Morale = ClampUnit(p.Morale)
	out.Form = ClampUnit(p.Form)
	out.Attacking = ClampUnit(p.Attacking)
	out.Technique = ClampUnit(p.Technique)
	out.Fitness = ClampUnit(p.Fitness)
	out.Wage = Floor0(p.Wage)
	out.PassiveIncome = Floor0(p.PassiveIncome)
	out.Clout = Floor0(p.Clout)
	out.Caps = Floor0(p.Caps)
	out.InternationalGoals = Floor0(p.InternationalGoals)
	out.GoalsScored = Floor0(p.GoalsScored)
	out.Assists = Floor0(p.Assists)
	out.MatchesPlayed = Floor0(p.MatchesPlayed)
	out.SeasonMatchCount = Floor0(p.SeasonMatchCount)
	out.TalentPoints = Floor0(p.TalentPoints)
	if p.LeagueID < 0 || p.LeagueID >= model.DivisionCount {
		out.LeagueID = model.DefaultLeagueID
	}
	out.Relationships = model.Relationships{
		Manager: ClampUnit(p.Relationships.Manager),
		Team:    ClampUnit(p.Relationships.Team),
		Fans:    ClampUnit(p.Relationships.Fans),
	}
	out.Talents = unique(out.Talents)
	out.Inventory = unique(out.Inventory)
	return out
}

func unique(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
