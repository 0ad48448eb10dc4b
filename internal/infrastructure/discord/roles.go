// Package discord adapts the discordgo session to the narrow role-directory
// and message-delivery surfaces the application layer depends on.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/robuddie/robuddie/internal/domain"
)

// RoleDirectory reads and grants guild roles through the Discord REST API.
type RoleDirectory struct {
	session *discordgo.Session
}

func NewRoleDirectory(session *discordgo.Session) *RoleDirectory {
	return &RoleDirectory{session: session}
}

// Role looks up a guild role by its stored identifier.
// Returns a domain.ErrNotFound-wrapped error if the role has been deleted.
func (d *RoleDirectory) Role(ctx context.Context, guildID, roleID string) (*domain.Role, error) {
	roles, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list guild roles: %w", err)
	}
	for _, r := range roles {
		if r.ID == roleID {
			return &domain.Role{ID: r.ID, Name: r.Name, Position: r.Position}, nil
		}
	}
	return nil, fmt.Errorf("role %s in guild %s: %w", roleID, guildID, domain.ErrNotFound)
}

// FindByName looks up a guild role by exact display name.
func (d *RoleDirectory) FindByName(ctx context.Context, guildID, name string) (*domain.Role, error) {
	roles, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list guild roles: %w", err)
	}
	for _, r := range roles {
		if r.Name == name {
			return &domain.Role{ID: r.ID, Name: r.Name, Position: r.Position}, nil
		}
	}
	return nil, fmt.Errorf("role named %q in guild %s: %w", name, guildID, domain.ErrNotFound)
}

// Grant assigns the role to the member.
func (d *RoleDirectory) Grant(ctx context.Context, guildID, userID, roleID string) error {
	if err := d.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("grant role %s to %s: %w", roleID, userID, err)
	}
	return nil
}

// BotOutranks reports whether the bot's highest role sits strictly above the
// given role. Discord refuses role grants otherwise.
func (d *RoleDirectory) BotOutranks(ctx context.Context, guildID, roleID string) (bool, error) {
	roles, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("list guild roles: %w", err)
	}
	member, err := d.session.GuildMember(guildID, d.session.State.User.ID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("fetch bot member: %w", err)
	}

	positions := make(map[string]int, len(roles))
	var target *discordgo.Role
	for _, r := range roles {
		positions[r.ID] = r.Position
		if r.ID == roleID {
			target = r
		}
	}
	if target == nil {
		return false, fmt.Errorf("role %s in guild %s: %w", roleID, guildID, domain.ErrNotFound)
	}

	highest := 0
	for _, rid := range member.Roles {
		if p, ok := positions[rid]; ok && p > highest {
			highest = p
		}
	}
	return highest > target.Position, nil
}
