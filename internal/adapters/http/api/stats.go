package api

import (
	"net/http"
	"time"
)

// StatsProvider reports engine counters for GET /stats.
type StatsProvider interface {
	GetStats() map[string]any
}

// clientCounter is implemented by live feeds that track their subscribers.
type clientCounter interface {
	ClientCount() int
}

// StatsHandler merges engine counters with process and live feed figures.
type StatsHandler struct {
	provider StatsProvider
	live     clientCounter
	started  time.Time
}

// NewStatsHandler returns a handler for provider. live is consulted only when
// it can count its clients.
func NewStatsHandler(provider StatsProvider, live LiveFeed) *StatsHandler {
	h := &StatsHandler{provider: provider, started: time.Now()}
	if cc, ok := live.(clientCounter); ok {
		h.live = cc
	}
	return h
}

// HandleStats serves GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	out := h.provider.GetStats()
	out["uptimeSeconds"] = int64(time.Since(h.started).Seconds())
	if h.live != nil {
		out["liveClients"] = h.live.ClientCount()
	}
	writeJSON(w, http.StatusOK, out)
}
