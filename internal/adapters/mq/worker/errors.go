package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrCommandFailed = errors.New("command failed")
	ErrStopped       = errors.New("worker pool stopped")
	ErrBusy          = errors.New("career command queue full")

	// ErrRejected wraps a Do failure that happened before the command was
	// queued, so its Run will never execute.
	ErrRejected = errors.New("command not queued")
)
