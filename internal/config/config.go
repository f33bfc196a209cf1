// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and MATCHDAY_ environment variables on top.
package config

import (
	"runtime"
	"time"
)

// Storage backends for save documents.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds each worker's command queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of single-writer command workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many command ids are remembered for retries.
	DedupeSize int `koanf:"dedupe_size"`

	// Storage selects the save store: memory, sqlite or redis.
	Storage string `koanf:"storage"`

	// SQLitePath is the database file used when Storage is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// RedisURL is the connection URL used when Storage is redis.
	RedisURL string `koanf:"redis_url"`

	// HistoryPath is the SQLite file for match history. Empty disables it.
	HistoryPath string `koanf:"history_path"`

	// AutosaveDebounceMS is the settle period before a dirty career is saved.
	AutosaveDebounceMS int `koanf:"autosave_debounce_ms"`

	// AutosaveRetryCron schedules the sweep that retries failed saves.
	AutosaveRetryCron string `koanf:"autosave_retry_cron"`

	// TickNormalMS and TickFastMS are the live match clock cadences.
	TickNormalMS int `koanf:"tick_normal_ms"`
	TickFastMS   int `koanf:"tick_fast_ms"`

	// CatalogPath optionally points at a YAML file overriding game catalogs.
	CatalogPath string `koanf:"catalog_path"`

	// Seed fixes the random source. Zero draws a seed from crypto/rand.
	Seed int64 `koanf:"seed"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		QueueSize:          1024,
		WorkerCount:        runtime.NumCPU(),
		DedupeSize:         100_000,
		Storage:            StorageMemory,
		SQLitePath:         "matchday.db",
		RedisURL:           "redis://localhost:6379/0",
		HistoryPath:        "",
		AutosaveDebounceMS: 1000,
		AutosaveRetryCron:  "@every 30s",
		TickNormalMS:       800,
		TickFastMS:         100,
	}
}

// AutosaveDebounce returns the debounce period as a duration.
func (c *Config) AutosaveDebounce() time.Duration {
	return time.Duration(c.AutosaveDebounceMS) * time.Millisecond
}

// TickNormal returns the normal-speed clock period.
func (c *Config) TickNormal() time.Duration {
	return time.Duration(c.TickNormalMS) * time.Millisecond
}

// TickFast returns the fast-forward clock period.
func (c *Config) TickFast() time.Duration {
	return time.Duration(c.TickFastMS) * time.Millisecond
}
