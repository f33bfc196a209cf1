package autoplay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/matchday/pkg/logger"
)

// ErrCareersFailed is returned when at least one career could not be played
// out cleanly.
var ErrCareersFailed = errors.New("careers failed")

// Run executes a complete autoplay run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting matchday autoplay",
		logger.String("baseURL", config.BaseURL),
		logger.Int("careers", config.Careers),
		logger.Int("matches", config.Matches),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("sandbox", config.Sandbox),
		logger.Bool("verbose", config.Verbose))

	c := newClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, c); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Play every career concurrently
	failures := playCareers(ctx, c, config, stats)

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if len(failures) > 0 {
		return stats, fmt.Errorf("%w: %d of %d: %w", ErrCareersFailed, len(failures), config.Careers, errors.Join(failures...))
	}
	logger.Get().Info(ctx, "autoplay completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, c *client) error {
	logger.Get().Info(ctx, "checking service health")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, healthPath, &body); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("service reported status %q", body.Status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// playCareers fans careers out over the worker pool and collects failures.
func playCareers(ctx context.Context, c *client, config *Config, stats *Stats) []error {
	workers := max(1, config.Workers)
	jobs := make(chan int, workers*WorkerChannelMultiplier)

	var (
		mu       sync.Mutex
		failures []error
		wg       sync.WaitGroup
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				if ctx.Err() != nil {
					return
				}
				cs, err := playCareer(ctx, c, config, index)

				mu.Lock()
				stats.add(cs)
				if err != nil {
					stats.CareersFailed++
					failures = append(failures, err)
				} else {
					stats.CareersFinished++
				}
				mu.Unlock()

				if err != nil {
					logger.Get().Error(ctx, "career failed", logger.Int("career", index), logger.Error(err))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range config.Careers {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		failures = append(failures, err)
	}
	return failures
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, matchesPerSecond float64

	if total := stats.CareersFinished + stats.CareersFailed; total > 0 {
		successRate = float64(stats.CareersFinished) / float64(total) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		matchesPerSecond = float64(stats.MatchesPlayed) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("careersCreated", stats.CareersCreated),
		logger.Int("careersFinished", stats.CareersFinished),
		logger.Int("careersFailed", stats.CareersFailed),
		logger.Int("matchesPlayed", stats.MatchesPlayed),
		logger.Int("internationals", stats.Internationals),
		logger.Int("goals", stats.Goals),
		logger.Int("seasonsEnded", stats.SeasonsEnded),
		logger.Int("eventsResolved", stats.EventsResolved),
		logger.Int("itemsBought", stats.ItemsBought),
		logger.Int("trainings", stats.Trainings),
		logger.Int("tablesVerified", stats.TablesVerified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("matchesPerSecond", matchesPerSecond))
}
