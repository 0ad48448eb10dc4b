package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robuddie/robuddie/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(newTestClient(t))

	_, err := s.Get(ctx, "42")
	require.ErrorIs(t, err, domain.ErrNotFound)

	sess := &domain.VerificationSession{
		SessionID:      "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		UserID:         "42",
		GuildID:        "7",
		RobloxUsername: "Bob123",
		Phrase:         "Robuddie-abc12345",
	}
	require.NoError(t, s.Put(ctx, sess))

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, sess.Phrase, got.Phrase)
	assert.Equal(t, sess.RobloxUsername, got.RobloxUsername)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(ctx, "42"))
	_, err = s.Get(ctx, "42")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGuildStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := NewGuildStore(newTestClient(t))

	require.NoError(t, s.Put(ctx, &domain.GuildConfig{GuildID: "7", VerifiedRoleID: "r1"}))
	require.NoError(t, s.Put(ctx, &domain.GuildConfig{GuildID: "7", VerifiedRoleID: "r2"}))

	got, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.VerifiedRoleID)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStores_SharedClientKeyIsolation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	sessions := NewSessionStore(client)
	guilds := NewGuildStore(client)

	require.NoError(t, sessions.Put(ctx, &domain.VerificationSession{UserID: "42"}))
	require.NoError(t, guilds.Put(ctx, &domain.GuildConfig{GuildID: "42"}))

	n, err := sessions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = guilds.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
