package service

import "errors"

var (
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrCareerNotFound is returned for unknown career ids.
	ErrCareerNotFound = errors.New("career not found")

	// ErrNoMatch is returned by match commands when no match is in flight.
	ErrNoMatch = errors.New("no match in progress")

	// ErrMatchInProgress is returned when an action needs the match to be over.
	ErrMatchInProgress = errors.New("match in progress")

	// ErrPendingEvent is returned while a narrative decision is unanswered.
	ErrPendingEvent = errors.New("narrative decision pending")

	// ErrNoPendingEvent is returned when answering a decision that is not there.
	ErrNoPendingEvent = errors.New("no narrative decision pending")

	// ErrNoCallUp is returned when an international match was not earned.
	ErrNoCallUp = errors.New("no international call-up accepted")

	// ErrUnknownOffer is returned when negotiating an offer the agent did not bring.
	ErrUnknownOffer = errors.New("unknown transfer offer")

	// ErrInFlight is returned when a command id is retried before the first
	// attempt finished.
	ErrInFlight = errors.New("command already in flight")

	// ErrUnknownDivision is returned for division ids outside 0..2.
	ErrUnknownDivision = errors.New("unknown division")

	// ErrUnknownBankAction is returned for bank actions other than donate and grant.
	ErrUnknownBankAction = errors.New("unknown bank action")
)
