package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusEnvelope reports the bot's runtime state for hosting-platform probes
// and dashboards.
type StatusEnvelope struct {
	Status           string `json:"status"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
	GatewayLatencyMS int64  `json:"gateway_latency_ms"`
	PendingSessions  int    `json:"pending_sessions"`
	ConfiguredGuilds int    `json:"configured_guilds"`
	Error            string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
