package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var manageGuild int64 = discordgo.PermissionManageServer

// Commands returns the full slash-command set the bot serves.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "verify",
			Description: "Starts the primary verification process.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "roblox_username",
					Description: "Your exact Roblox username (not display name).",
					Required:    true,
				},
			},
		},
		{
			Name:        "done",
			Description: "Finish the verification after adding the code to your profile.",
		},
		{
			Name:        "help",
			Description: "Displays a helpful message and support links.",
		},
		{
			Name:        "ping",
			Description: "Checks the bot's latency and response time.",
		},
		{
			Name:                     "setup",
			Description:              "Configure the verified role for this server.",
			DefaultMemberPermissions: &manageGuild,
		},
		{
			Name:                     "forceverify",
			Description:              "Manually verifies a user and links them to a Roblox account.",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The Discord user to verify.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "roblox_username",
					Description: "The Roblox username to link.",
					Required:    true,
				},
			},
		},
		{
			Name:        "premium",
			Description: "Access premium features (placeholder).",
		},
	}
}

// Sync bulk-overwrites the bot's global application commands. It runs once at
// startup and is idempotent; a failure leaves previously registered commands
// in place, so the gateway can keep serving while an operator investigates.
func Sync(ctx context.Context, session *discordgo.Session, appID string) (int, error) {
	cmds := Commands()
	registered, err := session.ApplicationCommandBulkOverwrite(appID, "", cmds, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("bulk overwrite %d application commands: %w", len(cmds), err)
	}
	return len(registered), nil
}
