package progression

import "errors"

// Sentinel error kinds for this package. All of them leave the career unchanged.
var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInsufficientCash   = errors.New("insufficient cash")
	ErrAlreadyOwned       = errors.New("item already owned")
	ErrUnknownItem        = errors.New("unknown item")
	ErrUnknownAttribute   = errors.New("unknown trainable attribute")
	ErrInvalidChoice      = errors.New("unknown narrative choice")
	ErrInvalidCareer      = errors.New("invalid career")
	ErrInvalidTransfer    = errors.New("invalid transfer")
	ErrInvalidRaise       = errors.New("unsupported wage raise")
	ErrNotSandbox         = errors.New("grant only available in sandbox careers")
)
