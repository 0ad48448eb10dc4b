// Package memory is the default store backend: plain maps guarded by a
// RWMutex. State is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/robuddie/robuddie/internal/domain"
)

// SessionStore is an in-memory session store. The mutex matters: discordgo
// dispatches interaction handlers on separate goroutines.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.VerificationSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.VerificationSession)}
}

func (s *SessionStore) Put(_ context.Context, v *domain.VerificationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[v.UserID] = *v
	return nil
}

func (s *SessionStore) Get(_ context.Context, userID string) (*domain.VerificationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("session for user %s: %w", userID, domain.ErrNotFound)
	}
	return &v, nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *SessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// GuildStore is an in-memory guild configuration store.
type GuildStore struct {
	mu     sync.RWMutex
	guilds map[string]domain.GuildConfig
}

func NewGuildStore() *GuildStore {
	return &GuildStore{guilds: make(map[string]domain.GuildConfig)}
}

func (s *GuildStore) Put(_ context.Context, g *domain.GuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guilds[g.GuildID] = *g
	return nil
}

func (s *GuildStore) Get(_ context.Context, guildID string) (*domain.GuildConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guilds[guildID]
	if !ok {
		return nil, fmt.Errorf("config for guild %s: %w", guildID, domain.ErrNotFound)
	}
	return &g, nil
}

func (s *GuildStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.guilds), nil
}
