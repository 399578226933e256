package poller

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/rankwatch/internal/clients/riot"
	"github.com/KirkDiggler/rankwatch/internal/common/clock"
	"github.com/KirkDiggler/rankwatch/internal/common/uuid"
	"github.com/KirkDiggler/rankwatch/internal/metrics"
	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/KirkDiggler/rankwatch/internal/ranking"
	"github.com/KirkDiggler/rankwatch/internal/repositories/account_state"
	"github.com/KirkDiggler/rankwatch/internal/services/messaging"
	"github.com/KirkDiggler/rankwatch/internal/services/summary"
	"github.com/KirkDiggler/rankwatch/internal/tracker"
	"go.opentelemetry.io/otel/trace"
)

// MatchScope selects which matches produce notifications
type MatchScope string

const (
	// ScopeAllModes notifies for every queue
	ScopeAllModes MatchScope = "all-modes"

	// ScopeRankedOnly notifies for ranked solo and flex only
	ScopeRankedOnly MatchScope = "ranked-only"
)

const (
	defaultPollInterval = 60 * time.Second
	defaultCallTimeout  = 10 * time.Second

	// cycles missed before Healthy reports stale
	staleCycles = 3
)

// Config holds the poller's dependencies and policy
type Config struct {
	// Accounts are polled in this order; it also breaks summary ties
	Accounts []models.Account

	RiotClient riot.Client
	Repository account_state.Repository
	Messaging  messaging.Service
	Summary    summary.Service
	Notifier   Notifier

	// Tracker defaults to notifying on cold start
	Tracker *tracker.Tracker

	// MatchChannelID receives match notifications, defaults to RankedChannelID
	MatchChannelID string

	// RankedChannelID receives the summary and standing changes
	RankedChannelID string

	// MatchScope defaults to ScopeAllModes
	MatchScope MatchScope

	PollInterval time.Duration

	// CallTimeout bounds every external call
	CallTimeout time.Duration

	// Concurrency bounds parallel accounts, defaults to 1
	Concurrency int

	// Optional
	Metrics *metrics.Manager
	Tracer  trace.Tracer
	Logger  *slog.Logger
	Clock   clock.Clock
	UUID    uuid.UUID
}

// RunCycleOutput reports what one cycle did
type RunCycleOutput struct {
	CycleID  string
	Accounts []*AccountResult

	// Summary is nil when the publish was skipped or failed
	Summary *summary.PublishOutput
}

// AccountResult is the outcome of polling one account
type AccountResult struct {
	Account models.Account

	// Skipped is true when shutdown began before the account started
	Skipped bool

	// MatchNotified is set with the match id that was surfaced this cycle
	MatchNotified string

	// StandingChanges lists the changes that were surfaced
	StandingChanges []ranking.ChangeKind

	// Standings is the data the summary uses for this account
	Standings map[models.QueueType]*models.RankedStanding

	// StandingsKnown is false when neither fresh nor persisted standings exist
	StandingsKnown bool

	// StateSaved is true when the account's state was written
	StateSaved bool

	// Errors are the failures seen, one per failed sub-check
	Errors []error
}
