package attributes

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrMissingPlayer is returned when a document has no player object.
	ErrMissingPlayer = errors.New("player document missing")
)
