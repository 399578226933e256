package poller

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/rankwatch/internal/services/poller Notifier

import (
	"context"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

// Service runs poll cycles over the configured accounts
type Service interface {
	// RunCycle polls every account once and refreshes the summary
	RunCycle(ctx context.Context) (*RunCycleOutput, error)

	// Run polls immediately and then on every interval until ctx is done or a fatal error occurs
	Run(ctx context.Context) error

	// Healthy reports nil while cycles are completing on schedule
	Healthy() error
}

// Notifier posts one-off notifications to a channel
type Notifier interface {
	SendNotification(ctx context.Context, channelID string, notification *models.Notification) (string, error)
}
