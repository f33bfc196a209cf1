package repository

import "errors"

// Sentinel kinds for save storage errors.
var (
	ErrNotFound       = errors.New("save not found")
	ErrCorruptSave    = errors.New("save data corrupted")
	ErrPristineCareer = errors.New("untouched career is not saved")
	ErrInvalidSlot    = errors.New("invalid save slot")
	ErrUnconfirmed    = errors.New("delete requires confirmation")
)
