package league

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownDivision = errors.New("unknown division")
	ErrDivisionSize    = errors.New("division does not hold the expected number of teams")
	ErrDuplicateTeam   = errors.New("team listed twice")
)
