// Package redis backs the verification stores with Redis. Records are stored
// as JSON under a per-type key prefix so both stores can share one database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/robuddie/robuddie/internal/domain"
)

const (
	sessionPrefix = "verification:"
	guildPrefix   = "guild:"
)

// SessionStore is a Redis-backed session store.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, v *domain.VerificationSession) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionPrefix+v.UserID, data, 0).Err()
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*domain.VerificationSession, error) {
	val, err := s.client.Get(ctx, sessionPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session for user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var v domain.VerificationSession
	if err := json.Unmarshal([]byte(val), &v); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &v, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionPrefix+userID).Err()
}

func (s *SessionStore) Count(ctx context.Context) (int, error) {
	return countKeys(ctx, s.client, sessionPrefix+"*")
}

// GuildStore is a Redis-backed guild configuration store.
type GuildStore struct {
	client *redis.Client
}

func NewGuildStore(client *redis.Client) *GuildStore {
	return &GuildStore{client: client}
}

func (s *GuildStore) Put(ctx context.Context, g *domain.GuildConfig) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal guild config: %w", err)
	}
	return s.client.Set(ctx, guildPrefix+g.GuildID, data, 0).Err()
}

func (s *GuildStore) Get(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	val, err := s.client.Get(ctx, guildPrefix+guildID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("config for guild %s: %w", guildID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var g domain.GuildConfig
	if err := json.Unmarshal([]byte(val), &g); err != nil {
		return nil, fmt.Errorf("unmarshal guild config: %w", err)
	}
	return &g, nil
}

func (s *GuildStore) Count(ctx context.Context) (int, error) {
	return countKeys(ctx, s.client, guildPrefix+"*")
}

func countKeys(ctx context.Context, client *redis.Client, pattern string) (int, error) {
	var n int
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
