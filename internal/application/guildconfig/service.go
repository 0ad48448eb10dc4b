package guildconfig

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robuddie/robuddie/internal/domain"
	"github.com/robuddie/robuddie/internal/store"
)

type Service interface {
	// Configure upserts the verified-role mapping for a guild. Role existence
	// and hierarchy checks are the caller's job; this is a pure mapping write.
	Configure(ctx context.Context, guildID, roleID, configuredBy string) error

	// Lookup reads the guild's configuration. Absence is a normal outcome,
	// reported via ok=false, not an error.
	Lookup(ctx context.Context, guildID string) (cfg *domain.GuildConfig, ok bool, err error)
}

type service struct {
	guilds store.GuildStore
}

func NewService(guilds store.GuildStore) Service {
	return &service{guilds: guilds}
}

func (s *service) Configure(ctx context.Context, guildID, roleID, configuredBy string) error {
	cfg := &domain.GuildConfig{
		GuildID:        guildID,
		VerifiedRoleID: roleID,
		ConfiguredBy:   configuredBy,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.guilds.Put(ctx, cfg); err != nil {
		return err
	}
	slog.Info("guild configured", "guild_id", guildID, "role_id", roleID, "by", configuredBy)
	return nil
}

func (s *service) Lookup(ctx context.Context, guildID string) (*domain.GuildConfig, bool, error) {
	cfg, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return cfg, true, nil
}
