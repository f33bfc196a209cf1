package worker

import (
	"github.com/okian/matchday/pkg/logger"
)

// Option configures an InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName labels the worker in logs. The pool names workers by shard.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name == "" {
			return
		}
		w.name = name
	}
}

// WithLogger replaces the global logger. The worker name is appended to it.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l == nil {
			return
		}
		w.logger = l
	}
}
