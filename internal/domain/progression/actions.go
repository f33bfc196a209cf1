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

// Attribute is a trainable skill.
type Attribute string

// Trainable attributes.
const (
	Attacking Attribute = "attacking"
	Technique Attribute = "technique"
	Fitness   Attribute = "fitness"
)

func (a Attribute) valid() bool {
	return a == Attacking || a == Technique || a == Fitness
}

const (
	tiredEnergy     = 40
	trainMoraleCost = 2
	trainFormGain   = 3
	transferMorale  = 100
	transferClout   = 5000
)

// Train spends energy on one attribute. The gain is 1 to 3, one less when the
// player is tired, never below 1.
func Train(p model.Player, attr Attribute, rng random.Source) (model.Player, int, error) {
	if !attr.valid() {
		return p, 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	if p.Energy < EnergyCostTrain {
		return p, 0, fmt.Errorf("%w: have %d, training costs %d", ErrInsufficientEnergy, p.Energy, EnergyCostTrain)
	}
	d := attributes.Delta{Energy: -EnergyCostTrain, Morale: -trainMoraleCost, Form: trainFormGain}
	gain := random.Between(rng, 1, 3)
	if p.Energy < tiredEnergy {
		gain--
	}
	gain = max(1, gain)
	switch attr {
	case Attacking:
		d.Attacking = gain
	case Technique:
		d.Technique = gain
	case Fitness:
		d.Fitness = gain
	}
	return attributes.Adjust(p, d), gain, nil
}

// Buy purchases item. Non-consumables are added to the inventory and can
// only be bought once.
func Buy(p model.Player, item catalog.Item) (model.Player, error) {
	if p.Cash < item.Cost {
		return p, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCash, item.ID, item.Cost, p.Cash)
	}
	if item.Type != catalog.Consumable && p.Owns(item.ID) {
		return p, fmt.Errorf("%w: %s", ErrAlreadyOwned, item.ID)
	}
	e := item.Effects
	out := attributes.Adjust(p, attributes.Delta{
		Energy:        e.Energy,
		Morale:        e.Morale,
		Form:          e.Form,
		Attacking:     e.Attacking,
		Technique:     e.Technique,
		Fitness:       e.Fitness,
		Cash:          -item.Cost,
		Clout:         e.Clout,
		PassiveIncome: e.Income,
	})
	if item.Type != catalog.Consumable {
		out.Inventory = append(out.Inventory, item.ID)
	}
	return out, nil
}

// BuyItem looks up id in cat and buys it.
func BuyItem(p model.Player, cat *catalog.Catalog, id string) (model.Player, error) {
	item, ok := cat.Item(id)
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return Buy(p, item)
}

// UnlockTalent spends a talent point.
func UnlockTalent(p model.Player, id string) (model.Player, error) {
	return talent.Unlock(p, id)
}

// Transfer moves the player to team on wage. The new division is found by
// membership in the current divisions (division 2 when absent) and all three
// divisions are reseeded, discarding the standings in progress.
func Transfer(s State, cat *catalog.Catalog, team string, wage int) (State, error) {
	if team == "" {
		return s, fmt.Errorf("%w: empty team", ErrInvalidTransfer)
	}
	if wage < 0 {
		return s, fmt.Errorf("%w: negative wage %d", ErrInvalidTransfer, wage)
	}
	id, ok := s.Divisions.LeagueOf(team)
	if !ok {
		id = model.DefaultLeagueID
	}
	p := attributes.Adjust(s.Player, attributes.Delta{Clout: transferClout})
	p.Team = team
	p.Wage = wage
	p.LeagueID = id
	p.Morale = transferMorale
	p.SeasonMatchCount = 0
	return State{
		Player:    p,
		Divisions: league.Initialize(cat, team, id),
		Week:      s.Week,
	}, nil
}

// ResolveNarrativeChoice applies choice i of ev. Accepting a call-up changes
// no attributes; it reports international=true so the next match is played
// for the national team.
func ResolveNarrativeChoice(p model.Player, ev catalog.NarrativeEvent, i int) (model.Player, bool, error) {
	if i < 0 || i >= len(ev.Choices) {
		return p, false, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, i, len(ev.Choices))
	}
	if ev.IsCallUp {
		return p, true, nil
	}
	e := ev.Choices[i].Effect
	return attributes.Adjust(p, attributes.Delta{
		Morale:  e.Morale,
		Energy:  e.Energy,
		Fitness: e.Fitness,
		Cash:    e.Cash,
		Clout:   e.Clout,
		Form:    e.Form,
	}), false, nil
}
