package progression

import (
	"fmt"

	"github.com/okian/matchday/internal/domain/attributes"
	"github.com/okian/matchday/internal/domain/model"
)

// Bank amounts.
const (
	DonationAmount int64 = 1000
	DonationMorale       = 10
	GrantAmount    int64 = 1_000_000
)

// Donate gives to charity for a morale lift.
func Donate(p model.Player) (model.Player, error) {
	if p.Cash < DonationAmount {
		return p, fmt.Errorf("%w: donation needs %d, have %d", ErrInsufficientCash, DonationAmount, p.Cash)
	}
	return attributes.Adjust(p, attributes.Delta{Cash: -DonationAmount, Morale: DonationMorale}), nil
}

// Grant credits a cash injection. Only sandbox careers may use it.
func Grant(p model.Player) (model.Player, error) {
	if !p.Sandbox {
		return p, ErrNotSandbox
	}
	return attributes.Adjust(p, attributes.Delta{Cash: GrantAmount}), nil
}
