package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robuddie/robuddie/internal/domain"
	"github.com/robuddie/robuddie/internal/pkg/id"
	"github.com/robuddie/robuddie/internal/pkg/phrase"
	"github.com/robuddie/robuddie/internal/store"
)

// ProfileDirectory resolves Roblox usernames and fetches public profiles.
type ProfileDirectory interface {
	FindUser(ctx context.Context, username string) (*domain.RobloxAccount, error)
	Profile(ctx context.Context, userID int64) (*domain.RobloxProfile, error)
}

// RoleDirectory resolves and grants guild roles.
type RoleDirectory interface {
	Role(ctx context.Context, guildID, roleID string) (*domain.Role, error)
	Grant(ctx context.Context, guildID, userID, roleID string) error
}

// Messenger delivers the challenge phrase to the user over a private channel.
type Messenger interface {
	SendDM(ctx context.Context, userID, content string) error
}

// IssueRequest starts a verification for a Discord user in a guild.
// GuildName is presentation-only; it personalises the DM.
type IssueRequest struct {
	UserID         string `validate:"required"`
	GuildID        string `validate:"required"`
	GuildName      string
	RobloxUsername string `validate:"required,min=3,max=20"`
}

// ConfirmResult reports a completed verification.
type ConfirmResult struct {
	RobloxUsername string
	RobloxID       int64
	Role           *domain.Role
}

type Service interface {
	// Issue generates a challenge phrase, stores a session for the user
	// (replacing any prior one) and DMs the phrase. The returned phrase is
	// for logging only and must never appear in a public reply. A
	// domain.ErrDMDeliveryFailed error still leaves the session stored.
	Issue(ctx context.Context, req IssueRequest) (string, error)

	// Confirm checks the user's Roblox profile for the issued phrase and
	// grants the configured role. The session is deleted only on success, so
	// every failure is retryable without re-issuing.
	Confirm(ctx context.Context, userID, guildID string) (*ConfirmResult, error)

	// ForceVerify grants the configured role to a target user for a claimed
	// Roblox username, skipping the challenge. Admin-only at the command
	// layer. Clears any pending session for the target.
	ForceVerify(ctx context.Context, targetUserID, guildID, robloxUsername string) (*ConfirmResult, error)
}

// Deps groups the injected collaborators for NewService.
type Deps struct {
	Sessions     store.SessionStore
	Guilds       store.GuildStore
	Profiles     ProfileDirectory
	Roles        RoleDirectory
	Messenger    Messenger
	PhrasePrefix string
}

type service struct {
	sessions     store.SessionStore
	guilds       store.GuildStore
	profiles     ProfileDirectory
	roles        RoleDirectory
	dm           Messenger
	phrasePrefix string
}

func NewService(deps Deps) Service {
	return &service{
		sessions:     deps.Sessions,
		guilds:       deps.Guilds,
		profiles:     deps.Profiles,
		roles:        deps.Roles,
		dm:           deps.Messenger,
		phrasePrefix: deps.PhrasePrefix,
	}
}

func (s *service) Issue(ctx context.Context, req IssueRequest) (string, error) {
	if _, err := s.guilds.Get(ctx, req.GuildID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("guild %s: %w", req.GuildID, domain.ErrNotConfigured)
		}
		return "", err
	}

	p, err := phrase.New(s.phrasePrefix)
	if err != nil {
		return "", err
	}

	sess := &domain.VerificationSession{
		SessionID:      id.New(),
		UserID:         req.UserID,
		GuildID:        req.GuildID,
		RobloxUsername: req.RobloxUsername,
		Phrase:         p,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return "", err
	}
	slog.Info("verification session issued",
		"session_id", sess.SessionID, "user_id", req.UserID, "guild_id", req.GuildID)

	msg := fmt.Sprintf(
		"### Verification for %q\n\n"+
			"1. **Copy this unique code:** `%s`\n"+
			"2. **Paste it** into your Roblox \"About\" section.\n"+
			"3. Go back to the server and use the `/done` command.",
		req.GuildName, p)
	if err := s.dm.SendDM(ctx, req.UserID, msg); err != nil {
		// The session stays usable; the user can fix their privacy settings
		// and run /verify again.
		slog.Warn("challenge phrase delivery failed",
			"session_id", sess.SessionID, "user_id", req.UserID, "err", err)
		return p, err
	}
	return p, nil
}

func (s *service) Confirm(ctx context.Context, userID, guildID string) (*ConfirmResult, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNoPendingVerification)
		}
		return nil, err
	}

	acct, err := s.profiles.FindUser(ctx, sess.RobloxUsername)
	if err != nil {
		return nil, err
	}
	prof, err := s.profiles.Profile(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	// Literal, case-sensitive containment — no trimming, no normalisation.
	if !strings.Contains(prof.Description, sess.Phrase) {
		return nil, fmt.Errorf("profile of %q: %w", sess.RobloxUsername, domain.ErrPhraseNotFound)
	}

	role, err := s.grantConfiguredRole(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	// The only normal deletion path: a repeat /done reads as "nothing pending".
	if err := s.sessions.Delete(ctx, userID); err != nil {
		slog.Warn("failed to delete verification session", "user_id", userID, "err", err)
	}
	slog.Info("verification confirmed",
		"session_id", sess.SessionID, "user_id", userID, "roblox_id", acct.ID, "role_id", role.ID)

	return &ConfirmResult{RobloxUsername: acct.Username, RobloxID: acct.ID, Role: role}, nil
}

func (s *service) ForceVerify(ctx context.Context, targetUserID, guildID, robloxUsername string) (*ConfirmResult, error) {
	acct, err := s.profiles.FindUser(ctx, robloxUsername)
	if err != nil {
		return nil, err
	}

	role, err := s.grantConfiguredRole(ctx, guildID, targetUserID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(ctx, targetUserID); err != nil {
		slog.Warn("failed to clear session after force verify", "user_id", targetUserID, "err", err)
	}
	slog.Info("member force-verified",
		"user_id", targetUserID, "guild_id", guildID, "roblox_id", acct.ID)

	return &ConfirmResult{RobloxUsername: acct.Username, RobloxID: acct.ID, Role: role}, nil
}

// grantConfiguredRole re-resolves the guild's verified role and grants it.
// Resolution happens at grant time: a role deleted since /setup surfaces as
// domain.ErrRoleMissing and nothing is granted.
func (s *service) grantConfiguredRole(ctx context.Context, guildID, userID string) (*domain.Role, error) {
	cfg, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("guild %s: %w", guildID, domain.ErrNotConfigured)
		}
		return nil, err
	}
	role, err := s.roles.Role(ctx, guildID, cfg.VerifiedRoleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("role %s: %w", cfg.VerifiedRoleID, domain.ErrRoleMissing)
		}
		return nil, err
	}
	if err := s.roles.Grant(ctx, guildID, userID, role.ID); err != nil {
		return nil, err
	}
	return role, nil
}
