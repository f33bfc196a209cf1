package talent

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownTalent   = errors.New("unknown talent")
	ErrAlreadyUnlocked = errors.New("talent already unlocked")
	ErrNoTalentPoints  = errors.New("no talent points available")
)
