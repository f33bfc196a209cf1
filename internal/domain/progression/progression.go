// Package progression applies the weekly career update: match results,
// training, purchases, transfers, narrative choices, agent offers and bank
// transactions. Every function takes a value and returns a new one; on error
// the input is returned unchanged.
package progression

import (
	"fmt"

	"github.com/okian/matchday/internal/domain/attributes"
	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/league"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/random"
	"github.com/okian/matchday/internal/domain/talent"
)

// Costs and cadence.
const (
	EnergyCostMatch = 30
	EnergyCostTrain = 20
	GamesPerSeason  = 18

	minMatchEnergyLoss = 5
	talentPointEvery   = 5
	callUpEvery        = 5
	callUpSkillSum     = 130
	narrativeChance    = 0.2
	weeklyFormDecay    = 2
)

// State is the part of a career the pipeline reads and writes.
type State struct {
	Player    model.Player     `json:"player"`
	Divisions league.Divisions `json:"leagues"`
	Week      int              `json:"week"`
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{Player: s.Player.Clone(), Divisions: s.Divisions.Clone(), Week: s.Week}
}

// Outcome is everything a finished match changed.
type Outcome struct {
	State State `json:"state"`

	EnergyLoss        int   `json:"energyLoss"`
	CashDelta         int64 `json:"cashDelta"`
	CloutDelta        int64 `json:"cloutDelta"`
	TalentPointEarned bool  `json:"talentPointEarned"`

	// Fixtures are the other results simulated in the player's division.
	Fixtures []league.Fixture      `json:"fixtures,omitempty"`
	Season   *league.SeasonOutcome `json:"season,omitempty"`
	// Event is the narrative decision now pending, if any.
	Event *catalog.NarrativeEvent `json:"event,omitempty"`
}

// MatchEnergyLoss is the energy a match costs p before talents:
// max(5, 30 - floor(fitness/20)), then reduced by the engine talent.
func MatchEnergyLoss(p model.Player) int {
	loss := max(minMatchEnergyLoss, EnergyCostMatch-p.Fitness/20)
	return talent.For(p).MatchEnergyLoss(loss)
}

func formChange(rating float64) int {
	switch {
	case rating > 6.5:
		return 2
	case rating < 5:
		return -2
	default:
		return 0
	}
}

func xpGain(rating float64) int {
	if rating > 6.0 {
		return 1
	}
	return 0
}

// ApplyMatchResult folds a finished match into the career. Domestic matches
// update the division and may end the season, queue a call-up or surface a
// narrative event, in that order of precedence.
func ApplyMatchResult(s State, r model.MatchResult, rng random.Source, cat *catalog.Catalog) (Outcome, error) {
	p := s.Player
	mods := talent.For(p)
	energyLoss := MatchEnergyLoss(p)
	form := formChange(r.Rating)
	xp := xpGain(r.Rating)
	earned := (p.MatchesPlayed+1)%talentPointEvery == 0

	out := Outcome{State: s.Clone(), EnergyLoss: energyLoss, TalentPointEarned: earned}

	if r.IsInternational {
		morale := -5
		if r.Rating > 6 {
			morale = 10
		}
		d := attributes.Delta{
			Energy:    -energyLoss,
			Morale:    mods.MoraleAfter(morale),
			Form:      form,
			Attacking: xp,
			Technique: xp,
			Fitness:   xp,
			Cash:      int64(p.PassiveIncome),
			Clout:     1000 + int64(r.Goals)*500,
		}
		np := attributes.Adjust(p, d)
		np.Caps++
		np.InternationalGoals += r.Goals
		if earned {
			np.TalentPoints++
		}
		out.State.Player = np
		out.CashDelta = d.Cash
		out.CloutDelta = np.Clout - p.Clout
		return out, nil
	}

	bonus := int64(r.Goals) * 50
	if r.Rating > 7 {
		bonus += 100
	}
	clout := int64(r.Goals) * 300
	if r.Rating > 7 {
		clout += 100
	} else {
		clout -= 20
	}
	morale := -5
	if r.Rating > 6 {
		morale = 5
	}
	d := attributes.Delta{
		Energy:    -energyLoss,
		Morale:    mods.MoraleAfter(morale),
		Form:      form - weeklyFormDecay,
		Attacking: xp,
		Technique: xp,
		Fitness:   xp,
		Cash:      int64(p.Wage) + bonus + int64(p.PassiveIncome) - int64(r.Expenses),
		Clout:     mods.ScaleClout(clout),
	}
	if r.InterviewEffect != nil {
		d.Relationships = *r.InterviewEffect
	}
	np := attributes.Adjust(p, d)
	np.GoalsScored += r.Goals
	np.MatchesPlayed++
	np.SeasonMatchCount++
	if earned {
		np.TalentPoints++
	}
	out.CashDelta = d.Cash
	out.CloutDelta = np.Clout - p.Clout

	divs := out.State.Divisions
	divs.ApplyMatchResult(p.LeagueID, p.Team, r.Opponent, r.HomeScore, r.AwayScore)
	out.Fixtures = divs.SimulateRemainder(p.LeagueID, []string{p.Team, r.Opponent}, rng)
	out.State.Week = s.Week + 1

	switch {
	case np.SeasonMatchCount >= GamesPerSeason:
		next, season, err := divs.EndOfSeason(np.Team, np.LeagueID)
		if err != nil {
			return Outcome{State: s}, fmt.Errorf("end of season: %w", err)
		}
		np.LeagueID = season.LeagueID
		np.SeasonMatchCount = 0
		out.State.Divisions = next
		out.Season = &season
	case s.Week%callUpEvery == 0 && p.Attacking+p.Technique > callUpSkillSum:
		ev := catalog.CallUpEvent(p.Nationality)
		out.Event = &ev
	case len(cat.Events) > 0 && random.Chance(rng, narrativeChance):
		ev := random.Pick(rng, cat.Events)
		out.Event = &ev
	}
	out.State.Player = np
	return out, nil
}
