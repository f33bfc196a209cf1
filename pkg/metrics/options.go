package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager before its collectors are registered.
type Option func(*Manager)

// defaultLatencyBuckets covers 1ms to roughly 8s. Latencies are observed in
// milliseconds.
func defaultLatencyBuckets() []float64 {
	return prometheus.ExponentialBuckets(1, 2, 14)
}

// WithNamespace prefixes every metric name. Empty keeps "matchday".
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the second name segment. Empty keeps "engine".
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets replaces the millisecond buckets of the command, match
// and HTTP histograms.
func WithLatencyBuckets(ms ...float64) Option {
	return func(m *Manager) {
		if len(ms) == 0 {
			return
		}
		m.histogramBuckets = append([]float64(nil), ms...)
	}
}

// WithPrometheusRegistry registers collectors on r instead of the default
// registerer.
func WithPrometheusRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}
