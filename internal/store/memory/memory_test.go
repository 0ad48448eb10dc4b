package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/robuddie/robuddie/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	_, err := s.Get(ctx, "42")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, &domain.VerificationSession{UserID: "42", Phrase: "Robuddie-abc12345"}))
	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Robuddie-abc12345", got.Phrase)

	// Put for the same user overwrites (last write wins).
	require.NoError(t, s.Put(ctx, &domain.VerificationSession{UserID: "42", Phrase: "Robuddie-def67890"}))
	got, err = s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Robuddie-def67890", got.Phrase)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(ctx, "42"))
	_, err = s.Get(ctx, "42")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uid := fmt.Sprintf("user-%d", i)
			_ = s.Put(ctx, &domain.VerificationSession{UserID: uid})
			_, _ = s.Get(ctx, uid)
			_ = s.Delete(ctx, uid)
		}(i)
	}
	wg.Wait()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGuildStore_PutGetCount(t *testing.T) {
	ctx := context.Background()
	s := NewGuildStore()

	_, err := s.Get(ctx, "7")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, &domain.GuildConfig{GuildID: "7", VerifiedRoleID: "r1"}))
	require.NoError(t, s.Put(ctx, &domain.GuildConfig{GuildID: "7", VerifiedRoleID: "r2"}))

	got, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.VerifiedRoleID)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
