package guildconfig

import (
	"context"
	"testing"

	"github.com/robuddie/robuddie/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Absent(t *testing.T) {
	svc := NewService(memory.NewGuildStore())

	cfg, ok, err := svc.Lookup(context.Background(), "9")
	require.NoError(t, err, "absence is not an error")
	assert.False(t, ok)
	assert.Nil(t, cfg)
}

func TestConfigure_Upsert(t *testing.T) {
	svc := NewService(memory.NewGuildStore())
	ctx := context.Background()

	require.NoError(t, svc.Configure(ctx, "7", "role-1", "admin-1"))
	cfg, ok, err := svc.Lookup(ctx, "7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "role-1", cfg.VerifiedRoleID)

	// Reconfiguring overwrites unconditionally.
	require.NoError(t, svc.Configure(ctx, "7", "role-2", "admin-2"))
	cfg, ok, err = svc.Lookup(ctx, "7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "role-2", cfg.VerifiedRoleID)
	assert.Equal(t, "admin-2", cfg.ConfiguredBy)
}
