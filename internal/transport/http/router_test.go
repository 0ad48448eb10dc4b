package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robuddie/robuddie/internal/config"
	"github.com/robuddie/robuddie/internal/domain"
	"github.com/robuddie/robuddie/internal/store/memory"
	"github.com/robuddie/robuddie/internal/transport/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*memory.SessionStore, *memory.GuildStore, *httptest.Server) {
	t.Helper()
	sessions := memory.NewSessionStore()
	guilds := memory.NewGuildStore()
	router := NewRouter(&config.Config{AllowedOrigins: []string{"*"}}, &Deps{
		Sessions:       sessions,
		Guilds:         guilds,
		GatewayLatency: func() time.Duration { return 42 * time.Millisecond },
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return sessions, guilds, srv
}

func TestHealthCheck_Ping(t *testing.T) {
	_, _, srv := newTestRouter(t)

	res, err := srv.Client().Get(srv.URL + "/v1/health-check/ping")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	var env handler.MessageEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.Equal(t, "pong", env.Message)
}

func TestHealthCheck_UnknownAction(t *testing.T) {
	_, _, srv := newTestRouter(t)

	res, err := srv.Client().Get(srv.URL + "/v1/health-check/nope")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, 400, res.StatusCode)
}

func TestStatus_ReportsCounts(t *testing.T) {
	sessions, guilds, srv := newTestRouter(t)
	ctx := context.Background()
	require.NoError(t, sessions.Put(ctx, &domain.VerificationSession{UserID: "42"}))
	require.NoError(t, guilds.Put(ctx, &domain.GuildConfig{GuildID: "7"}))
	require.NoError(t, guilds.Put(ctx, &domain.GuildConfig{GuildID: "8"}))

	res, err := srv.Client().Get(srv.URL + "/v1/status")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	var env handler.StatusEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.Equal(t, "ok", env.Status)
	assert.Equal(t, 1, env.PendingSessions)
	assert.Equal(t, 2, env.ConfiguredGuilds)
	assert.EqualValues(t, 42, env.GatewayLatencyMS)
}
