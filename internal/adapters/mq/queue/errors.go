package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrQueueFull = errors.New("command queue full")
	ErrStopped   = errors.New("command queue stopped")
)
