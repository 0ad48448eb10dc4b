// Package store defines the persistence boundary for verification state.
// The bot itself only needs process-lifetime storage; the interfaces exist so
// a deployment can swap the volatile default for Redis or DynamoDB without
// touching any call site.
package store

import (
	"context"

	"github.com/robuddie/robuddie/internal/domain"
)

// SessionStore keeps pending verification sessions keyed by Discord user ID.
// Get returns a domain.ErrNotFound-wrapped error when no session exists.
type SessionStore interface {
	Put(ctx context.Context, s *domain.VerificationSession) error
	Get(ctx context.Context, userID string) (*domain.VerificationSession, error)
	Delete(ctx context.Context, userID string) error
	Count(ctx context.Context) (int, error)
}

// GuildStore keeps per-guild verification configuration keyed by guild ID.
// Get returns a domain.ErrNotFound-wrapped error when the guild is not configured.
type GuildStore interface {
	Put(ctx context.Context, g *domain.GuildConfig) error
	Get(ctx context.Context, guildID string) (*domain.GuildConfig, error)
	Count(ctx context.Context) (int, error)
}
