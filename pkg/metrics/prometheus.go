// Package metrics provides Prometheus metrics for the matchday engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the engine reports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Command pipeline
	commandsProcessed *prometheus.CounterVec
	commandsRejected  *prometheus.CounterVec
	commandsFailed    prometheus.Counter
	commandsDuplicate prometheus.Counter
	commandLatency    prometheus.Histogram
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	workerCount       prometheus.Gauge

	// Sessions and simulation
	activeSessions  prometheus.Gauge
	activeMatches   prometheus.Gauge
	matchesFinished *prometheus.CounterVec
	goalsScored     *prometheus.CounterVec
	heroActions     *prometheus.CounterVec
	seasonsEnded    *prometheus.CounterVec

	// Persistence
	saves         *prometheus.CounterVec
	saveLatency   prometheus.Histogram
	corruptLoads  prometheus.Counter
	historyWrites *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	liveClients         prometheus.Gauge

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchday",
		subsystem:        "engine",
		histogramBuckets: defaultLatencyBuckets(),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	m.commandsProcessed = m.counterVec("commands_processed_total", "Commands applied to a career, by kind", "kind")
	m.commandsRejected = m.counterVec("commands_rejected_total", "Commands rejected by validation, by kind", "kind")
	m.commandsFailed = m.counter("commands_failed_total", "Commands that panicked or could not be delivered")
	m.commandsDuplicate = m.counter("commands_duplicate_total", "Commands dropped because their id was already seen")
	m.commandLatency = m.histogram("command_latency_milliseconds", "Time from enqueue to reply in milliseconds")
	m.queueSize = m.gauge("queue_size", "Commands waiting across all worker queues")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of a single worker queue")
	m.workerCount = m.gauge("worker_count", "Number of single-writer workers")

	m.activeSessions = m.gauge("active_sessions", "Careers loaded in memory")
	m.activeMatches = m.gauge("active_matches", "Matches currently in flight")
	m.matchesFinished = m.counterVec("matches_finished_total", "Matches played to full time, by competition and outcome", "competition", "outcome")
	m.goalsScored = m.counterVec("goals_total", "Goals simulated, by side", "side")
	m.heroActions = m.counterVec("hero_actions_total", "Hero moments attempted, by outcome", "outcome")
	m.seasonsEnded = m.counterVec("seasons_ended_total", "Season boundaries processed, by player movement", "movement")

	m.saves = m.counterVec("saves_total", "Save attempts, by result", "result")
	m.saveLatency = m.histogram("save_latency_milliseconds", "Save document write latency in milliseconds")
	m.corruptLoads = m.counter("corrupt_loads_total", "Save documents rejected as corrupted")
	m.historyWrites = m.counterVec("history_writes_total", "Match history rows written, by result", "result")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.liveClients = m.gauge("live_clients", "Websocket clients following a live match")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordCommandProcessed counts an applied command.
func RecordCommandProcessed(kind string) {
	globalManager.commandsProcessed.WithLabelValues(kind).Inc()
}

// RecordCommandRejected counts a command refused by validation.
func RecordCommandRejected(kind string) {
	globalManager.commandsRejected.WithLabelValues(kind).Inc()
}

// RecordCommandFailed counts a command that panicked or was dropped.
func RecordCommandFailed() {
	globalManager.commandsFailed.Inc()
}

// RecordCommandDuplicate counts a de-duplicated command.
func RecordCommandDuplicate() {
	globalManager.commandsDuplicate.Inc()
}

// RecordCommandLatency observes end-to-end command latency.
func RecordCommandLatency(latencyMs float64) {
	globalManager.commandLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current backlog.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the per-worker queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the number of workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateActiveSessions sets the number of loaded careers.
func UpdateActiveSessions(count int) {
	globalManager.activeSessions.Set(float64(count))
}

// UpdateActiveMatches sets the number of matches in flight.
func UpdateActiveMatches(count int) {
	globalManager.activeMatches.Set(float64(count))
}

// RecordMatchFinished counts a finished match. outcome is win, draw or loss.
func RecordMatchFinished(international bool, outcome string) {
	competition := "domestic"
	if international {
		competition = "international"
	}
	globalManager.matchesFinished.WithLabelValues(competition, outcome).Inc()
}

// RecordGoal counts a goal for side (home or away).
func RecordGoal(side string) {
	globalManager.goalsScored.WithLabelValues(side).Inc()
}

// RecordHeroAction counts a hero moment by outcome.
func RecordHeroAction(outcome string) {
	globalManager.heroActions.WithLabelValues(outcome).Inc()
}

// RecordSeasonEnd counts a season boundary by player movement.
func RecordSeasonEnd(movement string) {
	globalManager.seasonsEnded.WithLabelValues(movement).Inc()
}

// RecordSaveSuccess counts a persisted save and its latency.
func RecordSaveSuccess(latencyMs float64) {
	globalManager.saves.WithLabelValues("ok").Inc()
	globalManager.saveLatency.Observe(latencyMs)
}

// RecordSaveSkipped counts a save that was not attempted (untouched career).
func RecordSaveSkipped() {
	globalManager.saves.WithLabelValues("skipped").Inc()
}

// RecordSaveFailure counts a failed save.
func RecordSaveFailure() {
	globalManager.saves.WithLabelValues("failed").Inc()
}

// RecordCorruptLoad counts a rejected save document.
func RecordCorruptLoad() {
	globalManager.corruptLoads.Inc()
}

// RecordHistoryWrite counts a match history write by result (ok, failed).
func RecordHistoryWrite(result string) {
	globalManager.historyWrites.WithLabelValues(result).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateLiveClients sets the number of connected websocket clients.
func UpdateLiveClients(count int) {
	globalManager.liveClients.Set(float64(count))
}

// UpdateSystemMemoryUsage sets the memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry that backs /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
