package config

import "errors"

var (
	// ErrInvalidConfig marks a configuration that loaded but fails validation.
	ErrInvalidConfig = errors.New("config: invalid")
	// ErrLoadConfig marks a file or environment source that could not be read.
	ErrLoadConfig = errors.New("config: load failed")
)
