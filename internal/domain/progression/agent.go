package progression

import (
	"fmt"
	"math"

	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/random"
)

// OfferCount is how many offers the agent brings.
const OfferCount = 2

// Offer is a transfer proposal.
type Offer struct {
	Team string `json:"team"`
	Wage int    `json:"wage"`
}

// Offers draws transfer proposals from every club but the player's own, each
// paying 110% to 160% of the current wage.
func Offers(p model.Player, cat *catalog.Catalog, rng random.Source) []Offer {
	var clubs []string
	for _, c := range cat.AllClubs() {
		if c != p.Team {
			clubs = append(clubs, c)
		}
	}
	if len(clubs) == 0 {
		return nil
	}
	out := make([]Offer, 0, OfferCount)
	for range OfferCount {
		team := random.Pick(rng, clubs)
		wage := int(math.Floor(float64(p.Wage) * (1.1 + rng.Float64()*0.5)))
		out = append(out, Offer{Team: team, Wage: wage})
	}
	return out
}

// Raise is a wage increase the player may ask for, in percent.
type Raise int

// Supported raises.
const (
	RaiseModest Raise = 10
	RaiseBold   Raise = 25
)

// NegotiationChance is the probability that asking for pct more succeeds.
func NegotiationChance(p model.Player, pct Raise) float64 {
	return 0.5 + float64(p.Clout)/100000 + float64(p.Morale)/200 - float64(2*pct)/100
}

// Negotiate asks for a raise on o. On success the improved offer is returned;
// on failure ok is false and the offer is withdrawn.
func Negotiate(p model.Player, o Offer, pct Raise, rng random.Source) (Offer, bool, error) {
	if pct != RaiseModest && pct != RaiseBold {
		return o, false, fmt.Errorf("%w: %d%%", ErrInvalidRaise, pct)
	}
	if !random.Chance(rng, NegotiationChance(p, pct)) {
		return Offer{}, false, nil
	}
	o.Wage = int(math.Floor(float64(o.Wage) * (1 + float64(pct)/100)))
	return o, true, nil
}
