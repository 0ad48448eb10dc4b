package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/robuddie/robuddie/internal/domain"
)

// Messenger delivers private messages to users. Delivery fails when the user
// has disabled DMs from server members, which the verification flow treats as
// a recoverable condition.
type Messenger struct {
	session *discordgo.Session
}

func NewMessenger(session *discordgo.Session) *Messenger {
	return &Messenger{session: session}
}

// SendDM opens (or reuses) the user's DM channel and sends content.
func (m *Messenger) SendDM(ctx context.Context, userID, content string) error {
	ch, err := m.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel for %s: %w", userID, domain.ErrDMDeliveryFailed)
	}
	if _, err := m.session.ChannelMessageSend(ch.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm to %s: %w", userID, domain.ErrDMDeliveryFailed)
	}
	return nil
}
