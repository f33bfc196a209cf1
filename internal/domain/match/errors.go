package match

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidPhase  = errors.New("action not valid in current match phase")
	ErrTooTired      = errors.New("player too tired")
	ErrHeroUsed      = errors.New("hero moment already used this minute")
	ErrInvalidStance = errors.New("unknown tactical stance")
	ErrInvalidSpeed  = errors.New("unknown match speed")
	ErrInvalidChoice = errors.New("unknown interview answer")
)
