package discord

import (
	"errors"
	"testing"

	"github.com/robuddie/robuddie/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every registered command must have a dispatch route and vice versa, or the
// command set and this table have drifted.
func TestRoutes_MatchRegisteredCommands(t *testing.T) {
	h := NewHandler(Deps{VerifiedRoleName: "Verified"})

	names := make(map[string]bool)
	for _, c := range Commands() {
		names[c.Name] = true
		assert.Contains(t, h.routes, c.Name, "command %q has no handler", c.Name)
	}
	for name := range h.routes {
		assert.True(t, names[name], "handler %q has no registered command", name)
	}
}

func TestCommands_AdminOnlyPermissions(t *testing.T) {
	adminOnly := map[string]bool{"setup": true, "forceverify": true}
	for _, c := range Commands() {
		if adminOnly[c.Name] {
			require.NotNil(t, c.DefaultMemberPermissions, "%q must be admin-gated", c.Name)
			assert.Equal(t, manageGuild, *c.DefaultMemberPermissions)
		} else {
			assert.Nil(t, c.DefaultMemberPermissions, "%q must be open to everyone", c.Name)
		}
	}
}

func TestUserMessage_CoversTaxonomy(t *testing.T) {
	cases := map[error]string{
		domain.ErrNotConfigured:         "/setup",
		domain.ErrDMDeliveryFailed:      "Privacy Settings",
		domain.ErrNoPendingVerification: "/verify",
		domain.ErrRobloxUserNotFound:    "Roblox user",
		domain.ErrPhraseNotFound:        "About",
		domain.ErrRoleMissing:           "deleted",
		domain.ErrRobloxUnavailable:     "try again",
	}
	for sentinel, want := range cases {
		// Wrapped errors map the same as bare sentinels.
		msg := userMessage(errors.Join(errors.New("context"), sentinel))
		assert.Contains(t, msg, want, "message for %v", sentinel)
	}
}

func TestUserMessage_UnexpectedErrorIsGeneric(t *testing.T) {
	msg := userMessage(errors.New("boom"))
	assert.Contains(t, msg, "try again")
	assert.NotContains(t, msg, "boom", "internal detail must not leak to the user")
}
