package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/robuddie/robuddie/internal/store"
)

// StatusHandler reports uptime, gateway latency and store counts.
type StatusHandler struct {
	sessions store.SessionStore
	guilds   store.GuildStore
	latency  func() time.Duration
	started  time.Time
}

func NewStatusHandler(sessions store.SessionStore, guilds store.GuildStore, latency func() time.Duration) *StatusHandler {
	return &StatusHandler{
		sessions: sessions,
		guilds:   guilds,
		latency:  latency,
		started:  time.Now(),
	}
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	env := StatusEnvelope{
		Status:           "ok",
		UptimeSeconds:    int64(time.Since(h.started).Seconds()),
		GatewayLatencyMS: h.latency().Milliseconds(),
	}

	// Counts are best-effort: a store outage degrades the report, not the probe.
	if n, err := h.sessions.Count(r.Context()); err != nil {
		slog.Warn("failed to count pending sessions", "err", err)
		env.Status = "degraded"
	} else {
		env.PendingSessions = n
	}
	if n, err := h.guilds.Count(r.Context()); err != nil {
		slog.Warn("failed to count configured guilds", "err", err)
		env.Status = "degraded"
	} else {
		env.ConfiguredGuilds = n
	}

	writeJSON(w, http.StatusOK, env)
}
