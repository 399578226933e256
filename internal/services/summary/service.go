package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

type service struct {
	messenger    Messenger
	policy       UpdatePolicy
	historyLimit int
	title        string
	logger       *slog.Logger

	mu      sync.Mutex
	handles map[string]*handle
}

// New creates a new summary service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Messenger == nil {
		return nil, errors.New("messenger cannot be nil")
	}
	if cfg.Title == "" {
		return nil, errors.New("title cannot be empty")
	}

	policy := cfg.Policy
	if policy == "" {
		policy = PolicyEditInPlace
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("unknown update policy %q", policy)
	}

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		messenger:    cfg.Messenger,
		policy:       policy,
		historyLimit: limit,
		title:        cfg.Title,
		logger:       logger,
		handles:      make(map[string]*handle),
	}, nil
}

// Publish shows the notification in the channel, writing only when its content changed
func (s *service) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if input == nil || input.ChannelID == "" || input.Notification == nil {
		return nil, errors.New("input, channel ID and notification cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.handleFor(ctx, input.ChannelID)
	if err != nil {
		return nil, err
	}

	rendered := input.Notification.Render()
	if h.messageID != "" && h.lastRendered == rendered {
		h.notification = input.Notification
		return &PublishOutput{Action: ActionNone, MessageID: h.messageID}, nil
	}

	var action Action
	switch s.policy {
	case PolicyAlwaysResend:
		action, err = s.resend(ctx, input.ChannelID, h, input.Notification)
	default:
		action, err = s.editInPlace(ctx, input.ChannelID, h, input.Notification)
	}
	if err != nil {
		return nil, err
	}

	h.lastRendered = rendered
	h.notification = input.Notification

	s.logger.Info("summary published",
		"channel_id", input.ChannelID,
		"action", string(action),
		"message_id", h.messageID)

	return &PublishOutput{Action: action, MessageID: h.messageID}, nil
}

// Latest returns the last notification published to the channel
func (s *service) Latest(channelID string) (*models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[channelID]
	if !ok || h.notification == nil {
		return nil, false
	}
	return h.notification, true
}

// handleFor returns the channel's handle, scanning history on first use.
// A failed scan leaves no handle so the next publish scans again.
func (s *service) handleFor(ctx context.Context, channelID string) (*handle, error) {
	if h, ok := s.handles[channelID]; ok {
		return h, nil
	}

	own, err := s.ownSummaries(ctx, channelID)
	if err != nil {
		return nil, err
	}

	h := &handle{}
	if len(own) > 0 {
		h.messageID = own[0].ID
		h.lastRendered = own[0].Notification.Render()
		h.notification = own[0].Notification
		s.logger.Debug("found existing summary", "channel_id", channelID, "message_id", h.messageID)
	}
	s.handles[channelID] = h

	return h, nil
}

// ownSummaries lists our summary messages in recent history, newest first
func (s *service) ownSummaries(ctx context.Context, channelID string) ([]*models.ChannelMessage, error) {
	messages, err := s.messenger.RecentMessages(ctx, channelID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel history: %w", err)
	}

	var own []*models.ChannelMessage
	for _, m := range messages {
		if m == nil || !m.FromSelf || m.Notification == nil {
			continue
		}
		if m.Notification.Title == s.title {
			own = append(own, m)
		}
	}
	return own, nil
}

func (s *service) editInPlace(ctx context.Context, channelID string, h *handle, n *models.Notification) (Action, error) {
	if h.messageID == "" {
		id, err := s.messenger.SendNotification(ctx, channelID, n)
		if err != nil {
			return "", fmt.Errorf("failed to send summary: %w", err)
		}
		h.messageID = id
		return ActionSent, nil
	}

	err := s.messenger.EditNotification(ctx, channelID, h.messageID, n)
	if err == nil {
		return ActionEdited, nil
	}
	if !errors.Is(err, ErrMessageNotFound) {
		return "", fmt.Errorf("failed to edit summary: %w", err)
	}

	s.logger.Warn("summary message was deleted, sending a new one",
		"channel_id", channelID,
		"message_id", h.messageID)

	id, err := s.messenger.SendNotification(ctx, channelID, n)
	if err != nil {
		h.messageID = ""
		return "", fmt.Errorf("failed to resend summary: %w", err)
	}
	h.messageID = id
	return ActionResent, nil
}

func (s *service) resend(ctx context.Context, channelID string, h *handle, n *models.Notification) (Action, error) {
	own, err := s.ownSummaries(ctx, channelID)
	if err != nil {
		return "", err
	}

	deleted := false
	for _, m := range own {
		if err := s.messenger.DeleteMessage(ctx, channelID, m.ID); err != nil && !errors.Is(err, ErrMessageNotFound) {
			return "", fmt.Errorf("failed to delete summary %s: %w", m.ID, err)
		}
		deleted = true
	}
	h.messageID = ""

	id, err := s.messenger.SendNotification(ctx, channelID, n)
	if err != nil {
		return "", fmt.Errorf("failed to send summary: %w", err)
	}
	h.messageID = id

	if deleted {
		return ActionResent, nil
	}
	return ActionSent, nil
}
