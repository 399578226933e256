// Package poller runs the poll cycle: it fetches fresh data for every tracked
// account, surfaces new matches and standing changes, persists account state
// and refreshes the ranked summary.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
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
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/KirkDiggler/rankwatch/internal/services/poller"

// notification kinds for metrics
const (
	kindMatch          = "match"
	kindStandingChange = "standing_change"
)

type service struct {
	accounts        []models.Account
	riotClient      riot.Client
	repository      account_state.Repository
	messaging       messaging.Service
	summary         summary.Service
	notifier        Notifier
	tracker         *tracker.Tracker
	matchChannelID  string
	rankedChannelID string
	matchScope      MatchScope
	pollInterval    time.Duration
	callTimeout     time.Duration
	concurrency     int
	metrics         *metrics.Manager
	tracer          trace.Tracer
	logger          *slog.Logger
	clock           clock.Clock
	uuid            uuid.UUID

	// cycleMu keeps cycles from overlapping
	cycleMu sync.Mutex

	mu          sync.Mutex
	playerIDs   map[string]string
	lastCycleAt time.Time
	fatalErr    error
}

// New creates a new poller
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if len(cfg.Accounts) == 0 {
		return nil, ErrNoAccounts
	}
	if cfg.RiotClient == nil {
		return nil, ErrNilRiotClient
	}
	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Summary == nil {
		return nil, ErrNilSummary
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.RankedChannelID == "" {
		return nil, ErrNoChannel
	}

	s := &service{
		accounts:        cfg.Accounts,
		riotClient:      cfg.RiotClient,
		repository:      cfg.Repository,
		messaging:       cfg.Messaging,
		summary:         cfg.Summary,
		notifier:        cfg.Notifier,
		tracker:         cfg.Tracker,
		matchChannelID:  cfg.MatchChannelID,
		rankedChannelID: cfg.RankedChannelID,
		matchScope:      cfg.MatchScope,
		pollInterval:    cfg.PollInterval,
		callTimeout:     cfg.CallTimeout,
		concurrency:     cfg.Concurrency,
		metrics:         cfg.Metrics,
		tracer:          cfg.Tracer,
		logger:          cfg.Logger,
		clock:           cfg.Clock,
		uuid:            cfg.UUID,
		playerIDs:       make(map[string]string),
	}

	switch s.matchScope {
	case "":
		s.matchScope = ScopeAllModes
	case ScopeAllModes, ScopeRankedOnly:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, cfg.MatchScope)
	}

	if s.tracker == nil {
		s.tracker = tracker.New(nil)
	}
	if s.matchChannelID == "" {
		s.matchChannelID = s.rankedChannelID
	}
	if s.pollInterval <= 0 {
		s.pollInterval = defaultPollInterval
	}
	if s.callTimeout <= 0 {
		s.callTimeout = defaultCallTimeout
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.uuid == nil {
		s.uuid = uuid.New()
	}

	s.metrics.SetTrackedAccounts(len(s.accounts))

	return s, nil
}

// Run polls immediately and then on every interval until ctx is done or a
// fatal error occurs. Cancellation returns nil.
func (s *service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := s.RunCycle(ctx); err != nil {
			if riot.IsFatal(err) {
				return err
			}
			s.logger.Error("poll cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("poller stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunCycle polls every account once and refreshes the summary. It returns an
// error only when the statistics provider reports a fatal failure.
func (s *service) RunCycle(ctx context.Context) (*RunCycleOutput, error) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := s.clock.Now()
	cycleID := s.uuid.NewUUID()
	logger := s.logger.With("cycle_id", cycleID)

	ctx, span := s.tracer.Start(ctx, "poller.RunCycle", trace.WithAttributes(
		attribute.String("cycle_id", cycleID),
		attribute.Int("accounts", len(s.accounts)),
	))
	defer span.End()

	results := make([]*AccountResult, len(s.accounts))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, account := range s.accounts {
		// accounts not yet started are skipped once shutdown begins
		if ctx.Err() != nil {
			results[i] = &AccountResult{Account: account, Skipped: true}
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = &AccountResult{Account: account, Skipped: true}
				return nil
			}
			// a started account finishes even if shutdown begins mid-way
			results[i] = s.processAccount(context.WithoutCancel(ctx), logger, account)
			return nil
		})
	}
	_ = g.Wait()

	output := &RunCycleOutput{CycleID: cycleID, Accounts: results}

	if err := fatalFrom(results); err != nil {
		s.mu.Lock()
		s.fatalErr = err
		s.mu.Unlock()
		span.RecordError(err)
		span.SetStatus(codes.Error, "fatal statistics error")
		logger.Error("fatal statistics error, stopping", "error", err)
		return output, err
	}

	output.Summary = s.publishSummary(context.WithoutCancel(ctx), logger, results)

	elapsed := s.clock.Since(start)
	s.metrics.RecordCycle(elapsed)

	s.mu.Lock()
	s.lastCycleAt = s.clock.Now()
	s.mu.Unlock()

	logger.Info("poll cycle complete", "duration", elapsed, "accounts", len(results))

	return output, nil
}

// Healthy reports nil while cycles are completing on schedule
func (s *service) Healthy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fatalErr != nil {
		return s.fatalErr
	}
	if s.lastCycleAt.IsZero() {
		return ErrNoCycleCompleted
	}
	if s.clock.Since(s.lastCycleAt) > staleCycles*s.pollInterval {
		return ErrStale
	}
	return nil
}

// processAccount runs every sub-check for one account. Failures are recorded
// on the result and never abort the cycle.
func (s *service) processAccount(ctx context.Context, logger *slog.Logger, account models.Account) *AccountResult {
	ctx, span := s.tracer.Start(ctx, "poller.processAccount", trace.WithAttributes(
		attribute.String("account", account.RiotID()),
	))
	defer span.End()

	logger = logger.With("account", account.RiotID())
	result := &AccountResult{Account: account}

	state, err := s.loadState(ctx, account)
	if err != nil {
		s.recordError(logger, result, "load_state", err)
		return result
	}
	original := state.Clone()

	// persisted standings back the summary until a fresh fetch succeeds
	if state.HasStandings() {
		result.Standings = copyStandings(state.Standings)
		result.StandingsKnown = true
	}

	playerID, err := s.playerID(ctx, account)
	if err != nil {
		s.recordError(logger, result, "resolve_player", err)
		showUnrankedIfUnknown(result, err)
		return result
	}

	s.checkMatch(ctx, logger, account, playerID, state, result)
	s.checkStandings(ctx, logger, account, playerID, state, result)

	if stateChanged(original, state) {
		if err := s.saveState(ctx, account, state); err != nil {
			s.recordError(logger, result, "save_state", err)
		} else {
			result.StateSaved = true
			s.metrics.RecordStateSave()
		}
	}

	if len(result.Errors) > 0 {
		span.SetStatus(codes.Error, "account had failures")
	}

	return result
}

// checkMatch surfaces the most recent match when the tracker says it is new.
// last_match_id only moves once the notification was delivered.
func (s *service) checkMatch(ctx context.Context, logger *slog.Logger, account models.Account, playerID string, state *models.AccountState, result *AccountResult) {
	var ids []string
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		ids, err = s.riotClient.RecentMatchIDs(ctx, &riot.RecentMatchIDsInput{PlayerID: playerID, Count: 1})
		return err
	})
	if err != nil {
		s.recordError(logger, result, "match_ids", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	candidate := ids[0]
	logger = logger.With("match_id", candidate)

	switch s.tracker.Decide(state, candidate) {
	case tracker.DecisionIgnore:
		return
	case tracker.DecisionSuppressColdStart:
		logger.Info("first match seen for account, not notifying")
		state.SuppressedMatchID = &candidate
		return
	}

	var match *models.MatchSummary
	err = s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		match, err = s.riotClient.MatchDetails(ctx, &riot.MatchDetailsInput{MatchID: candidate, PlayerID: playerID})
		return err
	})
	if err != nil {
		s.recordError(logger, result, "match_details", err)
		return
	}

	if s.matchScope == ScopeRankedOnly && !match.IsRanked() {
		logger.Debug("match outside scope, not notifying", "queue_id", match.QueueID)
		state.SuppressedMatchID = &candidate
		return
	}

	composed, err := s.messaging.ComposeMatch(ctx, &messaging.ComposeMatchInput{Account: account, Match: match})
	if err != nil {
		s.recordError(logger, result, "compose_match", err)
		return
	}

	if err := s.send(ctx, s.matchChannelID, composed.Notification); err != nil {
		s.metrics.RecordNotificationError(kindMatch)
		s.recordError(logger, result, "send_match", err)
		return
	}
	s.metrics.RecordNotification(kindMatch)

	state.LastMatchID = &candidate
	result.MatchNotified = candidate
	logger.Info("match notification sent", "queue", match.QueueName(), "win", match.Win)
}

// checkStandings refreshes standings for the ranked queues and surfaces changes.
// A queue seen for the first time is a baseline, not a change.
func (s *service) checkStandings(ctx context.Context, logger *slog.Logger, account models.Account, playerID string, state *models.AccountState, result *AccountResult) {
	var entries []*models.RankedStanding
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		entries, err = s.riotClient.RankedStandings(ctx, &riot.RankedStandingsInput{PlayerID: playerID})
		return err
	})
	if err != nil {
		s.recordError(logger, result, "standings", err)
		showUnrankedIfUnknown(result, err)
		return
	}

	current := make(map[models.QueueType]*models.RankedStanding, len(models.RankedQueues))
	for _, e := range entries {
		if e != nil && e.Queue.IsRanked() {
			current[e.Queue] = e
		}
	}

	if state.Standings == nil {
		state.Standings = make(map[models.QueueType]*models.RankedStanding)
	}

	for _, queue := range models.RankedQueues {
		next := current[queue]
		previous, observed := state.Standing(queue)

		if observed {
			kind := ranking.CompareStandings(previous, next)
			if s.messaging.ShouldNotifyStandingChange(kind) {
				if err := s.notifyStandingChange(ctx, account, queue, kind, previous, next); err != nil {
					s.metrics.RecordNotificationError(kindStandingChange)
					s.recordError(logger, result, "send_standing_change", err)
					// keep the old standing so the change is retried next cycle
					continue
				}
				s.metrics.RecordNotification(kindStandingChange)
				result.StandingChanges = append(result.StandingChanges, kind)
				logger.Info("standing change sent",
					"queue", string(queue),
					"change", string(kind),
					"from", previous.Label(),
					"to", next.Label())
			}
		}

		state.Standings[queue] = next.Clone()
	}

	result.Standings = current
	result.StandingsKnown = true
}

func (s *service) notifyStandingChange(ctx context.Context, account models.Account, queue models.QueueType, kind ranking.ChangeKind, previous, current *models.RankedStanding) error {
	composed, err := s.messaging.ComposeStandingChange(ctx, &messaging.ComposeStandingChangeInput{
		Account:  account,
		Queue:    queue,
		Kind:     kind,
		Previous: previous,
		Current:  current,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, s.rankedChannelID, composed.Notification)
}

// showUnrankedIfUnknown lets an account the provider has no data for appear as
// unranked. Transient failures leave it unknown so the summary waits.
func showUnrankedIfUnknown(result *AccountResult, err error) {
	if result.StandingsKnown || !errors.Is(err, riot.ErrNotFound) {
		return
	}
	result.Standings = make(map[models.QueueType]*models.RankedStanding)
	result.StandingsKnown = true
}

// publishSummary builds the leaderboard once every account has resolved. It is
// skipped when any account's standings are unknown after a transient failure,
// so a partial board is never posted.
func (s *service) publishSummary(ctx context.Context, logger *slog.Logger, results []*AccountResult) *summary.PublishOutput {
	entries := make([]*messaging.StandingsEntry, 0, len(results))
	for _, r := range results {
		if r == nil || r.Skipped || !r.StandingsKnown {
			account := ""
			if r != nil {
				account = r.Account.RiotID()
			}
			logger.Warn("standings unavailable, skipping summary this cycle", "account", account)
			s.metrics.RecordSummaryPublish("skipped")
			return nil
		}
		entries = append(entries, &messaging.StandingsEntry{Account: r.Account, Standings: r.Standings})
	}

	composed, err := s.messaging.ComposeStandings(ctx, &messaging.ComposeStandingsInput{Entries: entries})
	if err != nil {
		logger.Error("failed to compose summary", "error", err)
		s.metrics.RecordSummaryPublish("failed")
		return nil
	}

	var output *summary.PublishOutput
	err = s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		output, err = s.summary.Publish(ctx, &summary.PublishInput{
			ChannelID:    s.rankedChannelID,
			Notification: composed.Notification,
		})
		return err
	})
	if err != nil {
		logger.Error("failed to publish summary", "operation", "publish_summary", "error", err)
		s.metrics.RecordSummaryPublish("failed")
		return nil
	}

	s.metrics.RecordSummaryPublish(string(output.Action))
	return output
}

// playerID resolves the account's PUUID once per process
func (s *service) playerID(ctx context.Context, account models.Account) (string, error) {
	key := account.RiotID()

	s.mu.Lock()
	id, ok := s.playerIDs[key]
	s.mu.Unlock()
	if ok {
		return id, nil
	}

	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.riotClient.ResolvePlayerID(ctx, &riot.ResolvePlayerIDInput{Account: account})
		return err
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.playerIDs[key] = id
	s.mu.Unlock()

	return id, nil
}

func (s *service) loadState(ctx context.Context, account models.Account) (*models.AccountState, error) {
	var state *models.AccountState
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		state, err = s.repository.LoadState(ctx, &account_state.LoadStateInput{Account: account})
		return err
	})
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = models.NewAccountState()
	}
	return state, nil
}

func (s *service) saveState(ctx context.Context, account models.Account, state *models.AccountState) error {
	return s.withTimeout(ctx, func(ctx context.Context) error {
		return s.repository.SaveState(ctx, &account_state.SaveStateInput{Account: account, State: state})
	})
}

func (s *service) send(ctx context.Context, channelID string, n *models.Notification) error {
	return s.withTimeout(ctx, func(ctx context.Context) error {
		_, err := s.notifier.SendNotification(ctx, channelID, n)
		return err
	})
}

// withTimeout runs fn under the per-call timeout
func (s *service) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return fn(ctx)
}

func (s *service) recordError(logger *slog.Logger, result *AccountResult, operation string, err error) {
	result.Errors = append(result.Errors, fmt.Errorf("%s: %w", operation, err))
	kind := riot.Kind(err)
	s.metrics.RecordFetchError(operation, kind)

	if errors.Is(err, riot.ErrNotFound) {
		logger.Warn("no data this cycle", "operation", operation, "error", err)
		return
	}
	logger.Error("account check failed", "operation", operation, "kind", kind, "error", err)
}

// fatalFrom returns the first fatal error across all results
func fatalFrom(results []*AccountResult) error {
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, err := range r.Errors {
			if riot.IsFatal(err) {
				return err
			}
		}
	}
	return nil
}

// stateChanged compares everything persisted except UpdatedAt
func stateChanged(before, after *models.AccountState) bool {
	return !cmp.Equal(before, after,
		cmpopts.IgnoreFields(models.AccountState{}, "UpdatedAt"),
		cmpopts.EquateEmpty(),
	)
}

func copyStandings(in map[models.QueueType]*models.RankedStanding) map[models.QueueType]*models.RankedStanding {
	out := make(map[models.QueueType]*models.RankedStanding, len(in))
	for queue, standing := range in {
		out[queue] = standing.Clone()
	}
	return out
}
