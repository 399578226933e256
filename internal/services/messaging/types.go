package messaging

import (
	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/KirkDiggler/rankwatch/internal/ranking"
)

const (
	// SummaryTitle identifies the leaderboard message in channel history
	SummaryTitle = "Ranked Stats"

	// MaxFieldLength is the longest value a field may carry
	MaxFieldLength = 1024
)

// ServiceConfig holds the notification policy
type ServiceConfig struct {
	// NotifyStandingChanges surfaces promotions, demotions and placements
	NotifyStandingChanges bool

	// NotifyPointsChanges also surfaces LP moves inside a division
	NotifyPointsChanges bool
}

// ComposeMatchInput contains parameters for a match notification
type ComposeMatchInput struct {
	Account models.Account
	Match   *models.MatchSummary
}

// ComposeMatchOutput contains the match notification
type ComposeMatchOutput struct {
	Notification *models.Notification
}

// StandingsEntry is one account's standings across the ranked queues
type StandingsEntry struct {
	Account models.Account

	// Standings is keyed by queue; a missing or nil entry is unranked
	Standings map[models.QueueType]*models.RankedStanding
}

// ComposeStandingsInput contains parameters for the leaderboard summary
type ComposeStandingsInput struct {
	// Entries are in configuration order, which breaks ties
	Entries []*StandingsEntry
}

// ComposeStandingsOutput contains the leaderboard summary
type ComposeStandingsOutput struct {
	Notification *models.Notification
}

// ComposeStandingChangeInput contains parameters for a standing change notification
type ComposeStandingChangeInput struct {
	Account  models.Account
	Queue    models.QueueType
	Kind     ranking.ChangeKind
	Previous *models.RankedStanding
	Current  *models.RankedStanding
}

// ComposeStandingChangeOutput contains the standing change notification
type ComposeStandingChangeOutput struct {
	Notification *models.Notification
}
