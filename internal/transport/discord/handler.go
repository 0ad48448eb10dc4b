package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robuddie/robuddie/internal/application/guildconfig"
	"github.com/robuddie/robuddie/internal/application/verification"
	"github.com/robuddie/robuddie/internal/domain"
	"github.com/robuddie/robuddie/internal/pkg/validate"
)

// Deferred interactions get 15 minutes from Discord; the handlers bound their
// outbound work well below that.
const interactionTimeout = 30 * time.Second

// SetupRoleDirectory is the slice of the role directory the /setup handler
// needs for its preconditions: role-by-name lookup and the hierarchy check.
type SetupRoleDirectory interface {
	FindByName(ctx context.Context, guildID, name string) (*domain.Role, error)
	BotOutranks(ctx context.Context, guildID, roleID string) (bool, error)
}

type handlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Handler dispatches slash-command interactions to typed per-command handlers.
type Handler struct {
	verification     verification.Service
	guilds           guildconfig.Service
	roles            SetupRoleDirectory
	verifiedRoleName string
	routes           map[string]handlerFunc
}

// Deps groups the injected collaborators for NewHandler.
type Deps struct {
	Verification     verification.Service
	Guilds           guildconfig.Service
	Roles            SetupRoleDirectory
	VerifiedRoleName string
}

func NewHandler(deps Deps) *Handler {
	h := &Handler{
		verification:     deps.Verification,
		guilds:           deps.Guilds,
		roles:            deps.Roles,
		verifiedRoleName: deps.VerifiedRoleName,
	}
	h.routes = map[string]handlerFunc{
		"verify":      h.handleVerify,
		"done":        h.handleDone,
		"help":        h.handleHelp,
		"ping":        h.handlePing,
		"setup":       h.handleSetup,
		"forceverify": h.handleForceVerify,
		"premium":     h.handlePremium,
	}
	return h
}

// HandleInteraction is registered on the discordgo session. Unknown command
// names are logged and ignored; they mean the registered command set and this
// table have drifted.
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	route, ok := h.routes[name]
	if !ok {
		slog.Error("no handler for registered command", "command", name)
		return
	}
	route(s, i)
}

// invoker returns the calling user's ID, rejecting DM invocations: every
// command is guild-scoped.
func invoker(s *discordgo.Session, i *discordgo.InteractionCreate) (string, bool) {
	if i.Member == nil || i.Member.User == nil {
		_ = replyEphemeral(s, i, "This command only works inside a server.")
		return "", false
	}
	return i.Member.User.ID, true
}

func guildName(s *discordgo.Session, guildID string) string {
	if g, err := s.State.Guild(guildID); err == nil {
		return g.Name
	}
	return guildID
}

// --- /verify ---

func (h *Handler) handleVerify(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, ok := invoker(s, i)
	if !ok {
		return
	}
	req := verification.IssueRequest{
		UserID:    userID,
		GuildID:   i.GuildID,
		GuildName: guildName(s, i.GuildID),
	}
	for _, o := range i.ApplicationCommandData().Options {
		if o.Name == "roblox_username" {
			req.RobloxUsername = o.StringValue()
		}
	}
	if err := validate.Struct(&req); err != nil {
		_ = replyEphemeral(s, i, "That doesn't look like a valid Roblox username. Please check it and try again.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	_, err := h.verification.Issue(ctx, req)
	if err != nil {
		_ = replyEphemeral(s, i, userMessage(err))
		return
	}
	_ = replyEphemeral(s, i, "✅ **Check your DMs!** I have sent you your unique verification code.")
}

// --- /done ---

func (h *Handler) handleDone(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, ok := invoker(s, i)
	if !ok {
		return
	}
	// The two Roblox round-trips can outlast the 3-second initial-response
	// window, so defer first.
	if err := deferEphemeral(s, i); err != nil {
		slog.Error("failed to defer reply", "command", "done", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	res, err := h.verification.Confirm(ctx, userID, i.GuildID)
	if err != nil {
		_ = editReply(s, i, userMessage(err))
		return
	}
	_ = editReply(s, i, fmt.Sprintf(
		"✅ **Success!** You have been verified as **%s** and have received the `@%s` role.",
		res.RobloxUsername, res.Role.Name))
}

// --- /setup ---

func (h *Handler) handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, ok := invoker(s, i)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	role, err := h.roles.FindByName(ctx, i.GuildID, h.verifiedRoleName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = replyEphemeral(s, i, fmt.Sprintf(
				"A role named exactly %q was not found. Please create one and run this command again.",
				h.verifiedRoleName))
			return
		}
		_ = replyEphemeral(s, i, userMessage(err))
		return
	}

	outranks, err := h.roles.BotOutranks(ctx, i.GuildID, role.ID)
	if err != nil {
		_ = replyEphemeral(s, i, userMessage(err))
		return
	}
	if !outranks {
		_ = replyEphemeral(s, i, fmt.Sprintf(
			"My highest role is below the %q role. To assign it, please go to `Server Settings > Roles` and drag my role higher than the `%s` role.",
			h.verifiedRoleName, h.verifiedRoleName))
		return
	}

	if err := h.guilds.Configure(ctx, i.GuildID, role.ID, userID); err != nil {
		_ = replyEphemeral(s, i, userMessage(err))
		return
	}
	_ = replyEphemeral(s, i, fmt.Sprintf(
		"✅ **Setup Complete!** The verified role has been set to `@%s`.", role.Name))
}

// --- /forceverify ---

type forceVerifyOptions struct {
	TargetUserID   string `validate:"required"`
	RobloxUsername string `validate:"required,min=3,max=20"`
}

func (h *Handler) handleForceVerify(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := invoker(s, i); !ok {
		return
	}
	opts := forceVerifyOptions{}
	for _, o := range i.ApplicationCommandData().Options {
		switch o.Name {
		case "user":
			if u := o.UserValue(s); u != nil {
				opts.TargetUserID = u.ID
			}
		case "roblox_username":
			opts.RobloxUsername = o.StringValue()
		}
	}
	if err := validate.Struct(opts); err != nil {
		_ = replyEphemeral(s, i, "Invalid options: provide a user and a valid Roblox username.")
		return
	}

	if err := deferEphemeral(s, i); err != nil {
		slog.Error("failed to defer reply", "command", "forceverify", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	res, err := h.verification.ForceVerify(ctx, opts.TargetUserID, i.GuildID, opts.RobloxUsername)
	if err != nil {
		_ = editReply(s, i, userMessage(err))
		return
	}
	_ = editReply(s, i, fmt.Sprintf(
		"✅ <@%s> has been manually verified as **%s** and given the `@%s` role.",
		opts.TargetUserID, res.RobloxUsername, res.Role.Name))
}

// --- /help, /ping, /premium ---

func (h *Handler) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Color:       0x5865F2,
		Title:       "Robuddie Help & Commands",
		Description: "I am a bot designed to securely link your Roblox account to this Discord server.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "`/verify [roblox_username]`", Value: "Starts the verification process by sending you a unique code in DMs."},
			{Name: "`/done`", Value: "Run this after you have placed the code in your Roblox bio to get your role."},
			{Name: "`/help`", Value: "Shows this helpful message."},
			{Name: "`/ping`", Value: "Checks my response time."},
			{Name: "For Admins", Value: "Use `/setup` to configure the bot. My role must be higher than the \"Verified\" role."},
		},
	}
	_ = replyEmbedEphemeral(s, i, embed)
}

func (h *Handler) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	start := time.Now()
	if err := replyEphemeral(s, i, "Pinging..."); err != nil {
		slog.Error("failed to reply", "command", "ping", "err", err)
		return
	}
	_ = editReply(s, i, fmt.Sprintf(
		"**Pong!** 🏓\n**Latency:** %dms\n**API Latency:** %dms",
		time.Since(start).Milliseconds(),
		s.HeartbeatLatency().Milliseconds()))
}

func (h *Handler) handlePremium(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = replyEphemeral(s, i, "💎 This is a **Premium** command. This feature is not yet implemented.")
}

// userMessage converts a domain error into the private, human-readable reply
// shown to the invoking user. Unexpected errors are logged for the operator
// and surfaced as a generic retry hint.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return "⚠️ **Setup Required!** An admin must run the `/setup` command before verification can begin."
	case errors.Is(err, domain.ErrDMDeliveryFailed):
		return "❌ **I could not send you a DM.** Please go to `Server Settings > Privacy Settings` and enable \"Allow direct messages from server members\", then run `/verify` again."
	case errors.Is(err, domain.ErrNoPendingVerification):
		return "You need to start the process with `/verify` first."
	case errors.Is(err, domain.ErrRobloxUserNotFound):
		return "Could not find that Roblox user. Please check the username and try again."
	case errors.Is(err, domain.ErrPhraseNotFound):
		return "Verification failed. The code was not found in your Roblox \"About\" section. Please double-check it and try again."
	case errors.Is(err, domain.ErrRoleMissing):
		return "The configured \"Verified\" role seems to have been deleted. Please ask an admin to run `/setup` again, then retry `/done`."
	case errors.Is(err, domain.ErrRobloxUnavailable):
		return "An error occurred while trying to connect to Roblox. Please try again in a moment."
	default:
		slog.Error("unexpected error handling command", "err", err)
		return "Something went wrong on my end. Please try again in a moment."
	}
}
