package summary

import (
	"errors"
	"log/slog"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

// ErrMessageNotFound is returned by a Messenger when the target message is gone
var ErrMessageNotFound = errors.New("message not found")

// UpdatePolicy selects how a changed summary reaches the channel
type UpdatePolicy string

const (
	// PolicyEditInPlace edits the existing summary message
	PolicyEditInPlace UpdatePolicy = "edit-in-place"

	// PolicyAlwaysResend deletes our previous summary messages and posts a new one
	PolicyAlwaysResend UpdatePolicy = "always-resend"
)

// IsValid reports whether the policy is known
func (p UpdatePolicy) IsValid() bool {
	return p == PolicyEditInPlace || p == PolicyAlwaysResend
}

// Action is what Publish did
type Action string

const (
	ActionNone   Action = "none"
	ActionSent   Action = "sent"
	ActionEdited Action = "edited"
	ActionResent Action = "resent"
)

const defaultHistoryLimit = 50

// Config holds configuration for the summary service
type Config struct {
	Messenger Messenger

	// Policy defaults to PolicyEditInPlace
	Policy UpdatePolicy

	// HistoryLimit bounds the channel history scan
	HistoryLimit int

	// Title identifies our summary message in history
	Title string

	// Logger is optional
	Logger *slog.Logger
}

// PublishInput contains parameters for publishing a summary
type PublishInput struct {
	ChannelID    string
	Notification *models.Notification
}

// PublishOutput reports the result of a publish
type PublishOutput struct {
	Action    Action
	MessageID string
}

// handle tracks the summary message currently shown in one channel
type handle struct {
	messageID    string
	lastRendered string
	notification *models.Notification
}
