// Package notify delivers schedule announcements to external channels.
package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier posts announcement text to a single Discord channel.
// It satisfies the schedule service's AnnouncementPoster interface.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord notifier requires a bot token and channel ID")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord session: %w", err)
	}

	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

func (n *DiscordNotifier) Post(text string) error {
	if _, err := n.session.ChannelMessageSend(n.channelID, text); err != nil {
		return fmt.Errorf("failed to send Discord message: %w", err)
	}
	return nil
}

func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}
