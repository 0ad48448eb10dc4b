package domain

import "time"

// GuildConfig is the per-guild verification configuration.
// PK: guild_id. Written by /setup, read on every issue and confirm.
type GuildConfig struct {
	GuildID        string    `json:"guild_id" dynamodbav:"guild_id"`
	VerifiedRoleID string    `json:"verified_role_id" dynamodbav:"verified_role_id"`
	ConfiguredBy   string    `json:"configured_by,omitempty" dynamodbav:"configured_by"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}
