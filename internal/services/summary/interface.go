package summary

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rankwatch/internal/services/summary Service
//go:generate mockgen -package=mocks -destination=mocks/mock_messenger.go github.com/KirkDiggler/rankwatch/internal/services/summary Messenger

import (
	"context"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

// Service keeps one leaderboard message per channel up to date
type Service interface {
	// Publish shows the notification in the channel, writing only when its content changed
	Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error)

	// Latest returns the last notification published to the channel
	Latest(channelID string) (*models.Notification, bool)
}

// Messenger is the channel surface the publisher writes through
type Messenger interface {
	// SendNotification posts a new message and returns its id
	SendNotification(ctx context.Context, channelID string, notification *models.Notification) (string, error)

	// EditNotification replaces the content of an existing message.
	// Returns ErrMessageNotFound when the message no longer exists.
	EditNotification(ctx context.Context, channelID, messageID string, notification *models.Notification) error

	// DeleteMessage removes a message.
	// Returns ErrMessageNotFound when the message no longer exists.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// RecentMessages returns up to limit messages, newest first
	RecentMessages(ctx context.Context, channelID string, limit int) ([]*models.ChannelMessage, error)
}
