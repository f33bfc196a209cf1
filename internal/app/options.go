package service

import (
	"time"

	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of career workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of each worker queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many command ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the save store. The service closes it on Stop.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithRecorder sets the match history recorder. The service closes it on Stop.
func WithRecorder(r recorder.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithCatalog replaces the built-in game data.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithSeed makes every career's randomness derive from seed. Zero keeps
// crypto seeding.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithPublisher sets where live match updates are sent.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithAutosaveDebounce sets the delay between a change and its autosave.
// Zero disables autosave.
func WithAutosaveDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.autosaveDebounce = d
		}
	}
}

// WithAutosaveRetrySchedule sets the cron schedule on which failed
// autosaves are retried. Empty disables retries.
func WithAutosaveRetrySchedule(spec string) Option {
	return func(s *Service) {
		s.retrySchedule = spec
	}
}

// WithTickIntervals sets the wall-clock length of a match minute at normal
// and fast speed.
func WithTickIntervals(normal, fast time.Duration) Option {
	return func(s *Service) {
		if normal > 0 && fast > 0 {
			s.tickNormal = normal
			s.tickFast = fast
		}
	}
}
