package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/KirkDiggler/rankwatch/internal/services/summary"
	"github.com/bwmarrin/discordgo"
)

// maxHistoryLimit is the most messages Discord returns per history request
const maxHistoryLimit = 100

// channelSession is the subset of *discordgo.Session the messenger uses
type channelSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// Messenger posts notifications as embeds and reads channel history.
// It satisfies summary.Messenger and poller.Notifier.
type Messenger struct {
	session channelSession
	selfID  func() string
}

// NewMessenger creates a messenger; selfID reports the bot's user id
func NewMessenger(session channelSession, selfID func() string) (*Messenger, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if selfID == nil {
		return nil, errors.New("self ID func cannot be nil")
	}
	return &Messenger{session: session, selfID: selfID}, nil
}

// SendNotification posts a new embed and returns its message id
func (m *Messenger) SendNotification(ctx context.Context, channelID string, notification *models.Notification) (string, error) {
	if notification == nil {
		return "", errors.New("notification cannot be nil")
	}

	msg, err := m.session.ChannelMessageSendEmbed(channelID, renderEmbed(notification), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send message to %s: %w", channelID, mapError(err))
	}
	return msg.ID, nil
}

// EditNotification replaces the embed of an existing message
func (m *Messenger) EditNotification(ctx context.Context, channelID, messageID string, notification *models.Notification) error {
	if notification == nil {
		return errors.New("notification cannot be nil")
	}

	if _, err := m.session.ChannelMessageEditEmbed(channelID, messageID, renderEmbed(notification), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message %s: %w", messageID, mapError(err))
	}
	return nil
}

// DeleteMessage removes a message
func (m *Messenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, mapError(err))
	}
	return nil
}

// RecentMessages returns up to limit messages, newest first
func (m *Messenger) RecentMessages(ctx context.Context, channelID string, limit int) ([]*models.ChannelMessage, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	messages, err := m.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", channelID, mapError(err))
	}

	selfID := m.selfID()
	out := make([]*models.ChannelMessage, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		out = append(out, toChannelMessage(msg, selfID))
	}
	return out, nil
}

// mapError turns Discord's unknown-message responses into summary.ErrMessageNotFound
func mapError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return fmt.Errorf("%w: %v", summary.ErrMessageNotFound, err)
	}
	return err
}
