// Package talent is the read-only catalog of passive modifiers a player can
// unlock with talent points.
package talent

import (
	"fmt"
	"math"

	"github.com/okian/matchday/internal/domain/model"
)

// Talent ids.
const (
	Poacher = "poacher"
	Engine  = "engine"
	Maestro = "maestro"
	Leader  = "leader"
	Darling = "darling"
	Clutch  = "clutch"
)

// Talent describes one unlockable modifier.
type Talent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var catalog = []Talent{ //nolint:gochecknoglobals // fixed catalog
	{ID: Poacher, Name: "The Poacher", Description: "Increases goal probability inside the box."},
	{ID: Engine, Name: "The Engine", Description: "Reduces fitness drain during matches."},
	{ID: Maestro, Name: "Midfield Maestro", Description: "Boosts team possession stats slightly."},
	{ID: Leader, Name: "Locker Room Leader", Description: "Prevents morale drops after losses."},
	{ID: Darling, Name: "Media Darling", Description: "+20% Clout gain from all sources."},
	{ID: Clutch, Name: "Clutch Gene", Description: "Boosts stats in the final 10 minutes of a match."},
}

// Catalog returns every talent in display order.
func Catalog() []Talent {
	out := make([]Talent, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a talent by id.
func Lookup(id string) (Talent, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Talent{}, false
}

// Modifier magnitudes.
const (
	poacherHeroBonus   = 0.10
	engineEnergyCut    = 5
	engineTeamPower    = 5
	maestroPossession  = 2
	darlingCloutFactor = 1.2
	clutchGoalBonus    = 0.20
	clutchMinuteAfter  = 80
	minMatchEnergyLoss = 1
)

// Modifiers is the effect of a talent set on the match and progression formulas.
type Modifiers struct {
	HeroSuccessBonus float64
	TeamPowerBonus   int
	PossessionBonus  float64
	EnergyReduction  int
	CloutFactor      float64
	LateGoalBonus    float64
	ShieldsMorale    bool
}

// For computes the modifiers of p's unlocked talents.
func For(p model.Player) Modifiers {
	return FromSet(p.Talents)
}

// FromSet computes the modifiers of a talent set.
func FromSet(ids []string) Modifiers {
	m := Modifiers{CloutFactor: 1}
	for _, id := range ids {
		switch id {
		case Poacher:
			m.HeroSuccessBonus = poacherHeroBonus
		case Engine:
			m.TeamPowerBonus = engineTeamPower
			m.EnergyReduction = engineEnergyCut
		case Maestro:
			m.PossessionBonus = maestroPossession
		case Darling:
			m.CloutFactor = darlingCloutFactor
		case Clutch:
			m.LateGoalBonus = clutchGoalBonus
		case Leader:
			m.ShieldsMorale = true
		}
	}
	return m
}

// HeroGoalBonus is the extra hero goal probability at minute.
func (m Modifiers) HeroGoalBonus(minute int) float64 {
	if minute > clutchMinuteAfter {
		return m.LateGoalBonus
	}
	return 0
}

// MatchEnergyLoss applies the energy reduction to a base match loss.
func (m Modifiers) MatchEnergyLoss(base int) int {
	if m.EnergyReduction == 0 {
		return base
	}
	return max(minMatchEnergyLoss, base-m.EnergyReduction)
}

// ScaleClout multiplies a match clout change, flooring the result.
func (m Modifiers) ScaleClout(gain int64) int64 {
	if m.CloutFactor == 1 {
		return gain
	}
	return int64(math.Floor(float64(gain) * m.CloutFactor))
}

// MoraleAfter returns the morale delta to apply, dropping losses when the
// leader talent shields morale.
func (m Modifiers) MoraleAfter(delta int) int {
	if m.ShieldsMorale && delta < 0 {
		return 0
	}
	return delta
}

// Unlock spends one talent point on id. On error p is returned unchanged.
func Unlock(p model.Player, id string) (model.Player, error) {
	if _, ok := Lookup(id); !ok {
		return p, fmt.Errorf("%w: %s", ErrUnknownTalent, id)
	}
	if p.HasTalent(id) {
		return p, fmt.Errorf("%w: %s", ErrAlreadyUnlocked, id)
	}
	if p.TalentPoints <= 0 {
		return p, ErrNoTalentPoints
	}
	out := p.Clone()
	out.TalentPoints--
	out.Talents = append(out.Talents, id)
	return out, nil
}
