package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rankwatch/internal/clients/riot"
	riotmocks "github.com/KirkDiggler/rankwatch/internal/clients/riot/mocks"
	"github.com/KirkDiggler/rankwatch/internal/metrics"
	"github.com/KirkDiggler/rankwatch/internal/models"
	"github.com/KirkDiggler/rankwatch/internal/ranking"
	"github.com/KirkDiggler/rankwatch/internal/repositories/account_state"
	"github.com/KirkDiggler/rankwatch/internal/services/messaging"
	"github.com/KirkDiggler/rankwatch/internal/services/poller/mocks"
	"github.com/KirkDiggler/rankwatch/internal/services/summary"
	summarymocks "github.com/KirkDiggler/rankwatch/internal/services/summary/mocks"
	"github.com/KirkDiggler/rankwatch/internal/tracker"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"
)

const (
	rankedChannel = "ranked-channel"
	matchChannel  = "match-channel"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mr           *miniredis.Miniredis
	client       *redis.Client
	repo         account_state.Repository
	ctrl         *gomock.Controller
	mockRiot     *riotmocks.MockClient
	mockNotifier *mocks.MockNotifier
	mockSummary  *summarymocks.MockService
	messaging    messaging.Service
	foo          models.Account
	bar          models.Account
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	repo, err := account_state.NewRedis(&account_state.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctrl = gomock.NewController(s.T())
	s.mockRiot = riotmocks.NewMockClient(s.ctrl)
	s.mockNotifier = mocks.NewMockNotifier(s.ctrl)
	s.mockSummary = summarymocks.NewMockService(s.ctrl)

	msg, err := messaging.NewService(&messaging.ServiceConfig{NotifyStandingChanges: true})
	s.Require().NoError(err)
	s.messaging = msg

	s.foo = models.Account{Name: "Foo", Tag: "NA1"}
	s.bar = models.Account{Name: "Bar", Tag: "NA1"}
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) newService(mutate func(cfg *Config)) *service {
	cfg := &Config{
		Accounts:        []models.Account{s.foo},
		RiotClient:      s.mockRiot,
		Repository:      s.repo,
		Messaging:       s.messaging,
		Summary:         s.mockSummary,
		Notifier:        s.mockNotifier,
		MatchChannelID:  matchChannel,
		RankedChannelID: rankedChannel,
		PollInterval:    time.Minute,
		CallTimeout:     time.Second,
		Metrics:         metrics.NewManager(),
		Tracer:          noop.NewTracerProvider().Tracer("test"),
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if mutate != nil {
		mutate(cfg)
	}

	svc, err := New(cfg)
	s.Require().NoError(err)
	return svc
}

func strPtr(v string) *string {
	return &v
}

func puuidFor(account models.Account) string {
	return "puuid-" + account.Name
}

func gold(division models.Division, lp int) *models.RankedStanding {
	return &models.RankedStanding{
		Queue:        models.QueueRankedSolo,
		Tier:         models.TierGold,
		Division:     division,
		LeaguePoints: lp,
	}
}

func (s *ServiceTestSuite) seedState(account models.Account, state *models.AccountState) {
	s.Require().NoError(s.repo.SaveState(s.ctx, &account_state.SaveStateInput{Account: account, State: state}))
}

func (s *ServiceTestSuite) loadState(account models.Account) *models.AccountState {
	state, err := s.repo.LoadState(s.ctx, &account_state.LoadStateInput{Account: account})
	s.Require().NoError(err)
	return state
}

func (s *ServiceTestSuite) expectPlayer(account models.Account) *gomock.Call {
	return s.mockRiot.EXPECT().
		ResolvePlayerID(gomock.Any(), &riot.ResolvePlayerIDInput{Account: account}).
		Return(puuidFor(account), nil)
}

func (s *ServiceTestSuite) expectMatchIDs(account models.Account, ids ...string) *gomock.Call {
	return s.mockRiot.EXPECT().
		RecentMatchIDs(gomock.Any(), &riot.RecentMatchIDsInput{PlayerID: puuidFor(account), Count: 1}).
		Return(ids, nil)
}

func (s *ServiceTestSuite) expectMatch(account models.Account, match *models.MatchSummary) *gomock.Call {
	return s.mockRiot.EXPECT().
		MatchDetails(gomock.Any(), &riot.MatchDetailsInput{MatchID: match.MatchID, PlayerID: puuidFor(account)}).
		Return(match, nil)
}

func (s *ServiceTestSuite) expectStandings(account models.Account, standings ...*models.RankedStanding) *gomock.Call {
	return s.mockRiot.EXPECT().
		RankedStandings(gomock.Any(), &riot.RankedStandingsInput{PlayerID: puuidFor(account)}).
		Return(standings, nil)
}

// capturePublish records every summary publish
func (s *ServiceTestSuite) capturePublish() *[]*models.Notification {
	var mu sync.Mutex
	published := []*models.Notification{}
	s.mockSummary.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *summary.PublishInput) (*summary.PublishOutput, error) {
			mu.Lock()
			defer mu.Unlock()
			s.Equal(rankedChannel, input.ChannelID)
			published = append(published, input.Notification)
			return &summary.PublishOutput{Action: summary.ActionSent, MessageID: "summary-1"}, nil
		}).
		AnyTimes()
	return &published
}

func ahriWin() *models.MatchSummary {
	return &models.MatchSummary{
		MatchID:  "NEW1",
		QueueID:  420,
		Win:      true,
		Champion: "Ahri",
		Kills:    10,
		Deaths:   2,
		Assists:  5,
		Duration: 1830 * time.Second,
		Farm:     180,
	}
}

func (s *ServiceTestSuite) TestNewMatchIsNotifiedAndRecorded() {
	s.seedState(s.foo, &models.AccountState{
		LastMatchID: strPtr("OLD1"),
		Standings:   map[models.QueueType]*models.RankedStanding{models.QueueRankedSolo: gold(models.DivisionIV, 50)},
	})

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "NEW1")
	s.expectMatch(s.foo, ahriWin())
	s.expectStandings(s.foo, gold(models.DivisionIV, 50))
	s.capturePublish()

	var sent *models.Notification
	s.mockNotifier.EXPECT().
		SendNotification(gomock.Any(), matchChannel, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n *models.Notification) (string, error) {
			sent = n
			return "msg-1", nil
		})

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(output.Accounts, 1)
	s.Equal("NEW1", output.Accounts[0].MatchNotified)
	s.True(output.Accounts[0].StateSaved)
	s.NotEmpty(output.CycleID)

	s.Require().NotNil(sent)
	rendered := sent.Render()
	for _, want := range []string{"Ranked Solo", "Victory", "Ahri", "10/2/5", "30m 30s"} {
		s.Contains(rendered, want)
	}

	state := s.loadState(s.foo)
	s.Require().NotNil(state.LastMatchID)
	s.Equal("NEW1", *state.LastMatchID)
}

func (s *ServiceTestSuite) TestSeenMatchIsNotRenotifiedAndPlayerIDIsCached() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})

	s.expectPlayer(s.foo).Times(1)
	s.expectMatchIDs(s.foo, "NEW1").Times(2)
	s.expectMatch(s.foo, ahriWin()).Times(1)
	s.expectStandings(s.foo).Times(2)
	s.capturePublish()
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-1", nil).Times(1)

	svc := s.newService(nil)

	_, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)

	output, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].MatchNotified)
	s.False(output.Accounts[0].StateSaved)
}

func (s *ServiceTestSuite) TestRestartDoesNotReplaySeenMatch() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})

	s.expectPlayer(s.foo).Times(2)
	s.expectMatchIDs(s.foo, "NEW1").Times(2)
	s.expectMatch(s.foo, ahriWin()).Times(1)
	s.expectStandings(s.foo).Times(2)
	s.capturePublish()
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-1", nil).Times(1)

	_, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)

	// a fresh process sharing the same store
	restarted := s.newService(nil)
	output, err := restarted.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].MatchNotified)
}

func (s *ServiceTestSuite) TestColdStartNotifiesByDefault() {
	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "NEW1")
	s.expectMatch(s.foo, ahriWin())
	s.expectStandings(s.foo)
	s.capturePublish()
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-1", nil)

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Equal("NEW1", output.Accounts[0].MatchNotified)
}

func (s *ServiceTestSuite) TestColdStartSuppressed() {
	svc := s.newService(func(cfg *Config) {
		cfg.Tracker = tracker.New(&tracker.Config{ColdStartNotifies: false})
	})

	s.expectPlayer(s.foo)
	s.capturePublish()
	s.expectStandings(s.foo).Times(3)

	gomock.InOrder(
		s.expectMatchIDs(s.foo, "FIRST"),
		s.expectMatchIDs(s.foo, "FIRST"),
		s.expectMatchIDs(s.foo, "SECOND"),
	)
	second := ahriWin()
	second.MatchID = "SECOND"
	s.expectMatch(s.foo, second)
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-1", nil).Times(1)

	output, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].MatchNotified)

	state := s.loadState(s.foo)
	s.Nil(state.LastMatchID)
	s.Require().NotNil(state.SuppressedMatchID)
	s.Equal("FIRST", *state.SuppressedMatchID)

	output, err = svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].MatchNotified)

	output, err = svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Equal("SECOND", output.Accounts[0].MatchNotified)
	s.Equal("SECOND", *s.loadState(s.foo).LastMatchID)
}

func (s *ServiceTestSuite) TestRankedOnlyScopeSkipsOtherModes() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})
	svc := s.newService(func(cfg *Config) {
		cfg.MatchScope = ScopeRankedOnly
	})

	aram := ahriWin()
	aram.QueueID = 450

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "NEW1").Times(2)
	s.expectMatch(s.foo, aram).Times(1)
	s.expectStandings(s.foo).Times(2)
	s.capturePublish()

	_, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)

	state := s.loadState(s.foo)
	s.Equal("OLD1", *state.LastMatchID)
	s.Equal("NEW1", *state.SuppressedMatchID)

	// the skipped match is not fetched again
	_, err = svc.RunCycle(s.ctx)
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestFailedSendLeavesMatchForNextCycle() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "NEW1").Times(2)
	s.expectMatch(s.foo, ahriWin()).Times(2)
	s.expectStandings(s.foo).Times(2)
	s.capturePublish()

	gomock.InOrder(
		s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("", errors.New("discord down")),
		s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-1", nil),
	)

	svc := s.newService(nil)

	output, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].MatchNotified)
	s.Len(output.Accounts[0].Errors, 1)
	s.Equal("OLD1", *s.loadState(s.foo).LastMatchID)

	output, err = svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Equal("NEW1", output.Accounts[0].MatchNotified)
	s.Equal("NEW1", *s.loadState(s.foo).LastMatchID)
}

func (s *ServiceTestSuite) TestOneAccountFailureDoesNotAbortOthers() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})
	s.seedState(s.bar, &models.AccountState{LastMatchID: strPtr("OLD2")})

	s.expectPlayer(s.foo)
	s.mockRiot.EXPECT().
		RecentMatchIDs(gomock.Any(), &riot.RecentMatchIDsInput{PlayerID: puuidFor(s.foo), Count: 1}).
		Return(nil, fmt.Errorf("failed to get match IDs: %w", riot.ErrTransient))
	s.expectStandings(s.foo, gold(models.DivisionII, 10))

	barMatch := ahriWin()
	barMatch.MatchID = "NEW2"
	s.expectPlayer(s.bar)
	s.expectMatchIDs(s.bar, "NEW2")
	s.expectMatch(s.bar, barMatch)
	s.expectStandings(s.bar)
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-2", nil)
	published := s.capturePublish()

	svc := s.newService(func(cfg *Config) {
		cfg.Accounts = []models.Account{s.foo, s.bar}
	})

	output, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Len(output.Accounts[0].Errors, 1)
	s.ErrorIs(output.Accounts[0].Errors[0], riot.ErrTransient)
	s.Equal("NEW2", output.Accounts[1].MatchNotified)

	s.Require().Len(*published, 1)
	solo, ok := (*published)[0].Field("Solo/Duo Queue")
	s.Require().True(ok)
	s.Equal("Foo#NA1: **GOLD II 10LP**\nBar#NA1: Unranked", solo.Value)
}

func (s *ServiceTestSuite) TestSummaryKeepsStableTieOrder() {
	for _, account := range []models.Account{s.foo, s.bar} {
		s.seedState(account, &models.AccountState{LastMatchID: strPtr("SAME")})
		s.expectPlayer(account)
		s.expectMatchIDs(account, "SAME")
		s.expectStandings(account, gold(models.DivisionIV, 50))
	}
	published := s.capturePublish()

	svc := s.newService(func(cfg *Config) {
		cfg.Accounts = []models.Account{s.foo, s.bar}
		cfg.Concurrency = 2
	})

	_, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(*published, 1)
	solo, ok := (*published)[0].Field("Solo/Duo Queue")
	s.Require().True(ok)
	s.Equal("Foo#NA1: **GOLD IV 50LP**\nBar#NA1: **GOLD IV 50LP**", solo.Value)
	s.NotContains(solo.Value, "Unranked")
}

func (s *ServiceTestSuite) TestStandingsFailureUsesPersistedStandings() {
	s.seedState(s.foo, &models.AccountState{
		LastMatchID: strPtr("SAME"),
		Standings:   map[models.QueueType]*models.RankedStanding{models.QueueRankedSolo: gold(models.DivisionI, 99)},
	})

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "SAME")
	s.mockRiot.EXPECT().
		RankedStandings(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("failed: %w", riot.ErrTransient))
	published := s.capturePublish()

	_, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(*published, 1)
	solo, _ := (*published)[0].Field("Solo/Duo Queue")
	s.Equal("Foo#NA1: **GOLD I 99LP**", solo.Value)
}

func (s *ServiceTestSuite) TestStandingsFailureWithoutHistorySkipsSummary() {
	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo)
	s.mockRiot.EXPECT().
		RankedStandings(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("failed: %w", riot.ErrTransient))
	// no Publish expectation: gomock fails the test if the summary is published

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Nil(output.Summary)
	s.False(output.Accounts[0].StandingsKnown)
}

func (s *ServiceTestSuite) TestUnknownRiotIDShowsAsUnranked() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("SAME")})

	s.expectPlayer(s.foo).Times(1)
	s.expectMatchIDs(s.foo, "SAME").Times(3)
	s.expectStandings(s.foo, gold(models.DivisionIII, 20)).Times(3)
	s.mockRiot.EXPECT().
		ResolvePlayerID(gomock.Any(), &riot.ResolvePlayerIDInput{Account: s.bar}).
		Return("", fmt.Errorf("failed to resolve: %w", riot.ErrNotFound)).
		Times(3)
	published := s.capturePublish()

	svc := s.newService(func(cfg *Config) {
		cfg.Accounts = []models.Account{s.foo, s.bar}
	})

	for i := 0; i < 3; i++ {
		output, err := svc.RunCycle(s.ctx)
		s.Require().NoError(err)
		s.Require().NotNil(output.Summary)
		s.True(output.Accounts[1].StandingsKnown)
		s.ErrorIs(output.Accounts[1].Errors[0], riot.ErrNotFound)
	}

	s.Require().Len(*published, 3)
	solo, ok := (*published)[2].Field("Solo/Duo Queue")
	s.Require().True(ok)
	s.Equal("Foo#NA1: **GOLD III 20LP**\nBar#NA1: Unranked", solo.Value)
}

func (s *ServiceTestSuite) TestStandingsNotFoundWithoutHistoryShowsUnranked() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("SAME")})

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "SAME")
	s.mockRiot.EXPECT().
		RankedStandings(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("failed: %w", riot.ErrNotFound))
	published := s.capturePublish()

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.NotNil(output.Summary)

	s.Require().Len(*published, 1)
	solo, _ := (*published)[0].Field("Solo/Duo Queue")
	s.Equal("Foo#NA1: Unranked", solo.Value)
}

func (s *ServiceTestSuite) TestStalledCallTimesOutAndCycleContinues() {
	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})
	s.seedState(s.bar, &models.AccountState{LastMatchID: strPtr("OLD2")})

	s.expectPlayer(s.foo)
	s.mockRiot.EXPECT().
		RecentMatchIDs(gomock.Any(), &riot.RecentMatchIDsInput{PlayerID: puuidFor(s.foo), Count: 1}).
		DoAndReturn(func(ctx context.Context, _ *riot.RecentMatchIDsInput) ([]string, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	s.expectStandings(s.foo, gold(models.DivisionII, 10))

	barMatch := ahriWin()
	barMatch.MatchID = "NEW2"
	s.expectPlayer(s.bar)
	s.expectMatchIDs(s.bar, "NEW2")
	s.expectMatch(s.bar, barMatch)
	s.expectStandings(s.bar)
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-2", nil)
	s.capturePublish()

	svc := s.newService(func(cfg *Config) {
		cfg.Accounts = []models.Account{s.foo, s.bar}
		cfg.CallTimeout = 20 * time.Millisecond
	})

	output, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(output.Accounts[0].Errors, 1)
	s.ErrorIs(output.Accounts[0].Errors[0], context.DeadlineExceeded)
	s.Empty(output.Accounts[0].MatchNotified)
	s.Equal("NEW2", output.Accounts[1].MatchNotified)

	foo := s.loadState(s.foo)
	s.Require().NotNil(foo.LastMatchID)
	s.Equal("OLD1", *foo.LastMatchID)
}

func (s *ServiceTestSuite) TestShutdownMidCycleFinishesRunningAccount() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.seedState(s.foo, &models.AccountState{LastMatchID: strPtr("OLD1")})
	s.seedState(s.bar, &models.AccountState{LastMatchID: strPtr("OLD2")})

	s.expectPlayer(s.foo)
	s.mockRiot.EXPECT().
		RecentMatchIDs(gomock.Any(), &riot.RecentMatchIDsInput{PlayerID: puuidFor(s.foo), Count: 1}).
		DoAndReturn(func(callCtx context.Context, _ *riot.RecentMatchIDsInput) ([]string, error) {
			// shutdown arrives while Foo is in flight
			cancel()
			s.NoError(callCtx.Err())
			return []string{"NEW1"}, nil
		})
	s.expectMatch(s.foo, ahriWin())
	s.expectStandings(s.foo, gold(models.DivisionIV, 50))
	s.mockNotifier.EXPECT().SendNotification(gomock.Any(), matchChannel, gomock.Any()).Return("msg-1", nil)
	// Bar never starts and no summary is published for a partial cycle

	svc := s.newService(func(cfg *Config) {
		cfg.Accounts = []models.Account{s.foo, s.bar}
	})

	output, err := svc.RunCycle(ctx)
	s.Require().NoError(err)

	s.False(output.Accounts[0].Skipped)
	s.Equal("NEW1", output.Accounts[0].MatchNotified)
	s.True(output.Accounts[0].StateSaved)
	s.True(output.Accounts[1].Skipped)
	s.Nil(output.Summary)

	foo := s.loadState(s.foo)
	s.Require().NotNil(foo.LastMatchID)
	s.Equal("NEW1", *foo.LastMatchID)

	bar := s.loadState(s.bar)
	s.Require().NotNil(bar.LastMatchID)
	s.Equal("OLD2", *bar.LastMatchID)
}

func (s *ServiceTestSuite) TestPromotionIsNotified() {
	s.seedState(s.foo, &models.AccountState{
		LastMatchID: strPtr("SAME"),
		Standings:   map[models.QueueType]*models.RankedStanding{models.QueueRankedSolo: gold(models.DivisionII, 40)},
	})

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "SAME")
	s.expectStandings(s.foo, gold(models.DivisionI, 10))
	s.capturePublish()

	var sent *models.Notification
	s.mockNotifier.EXPECT().
		SendNotification(gomock.Any(), rankedChannel, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n *models.Notification) (string, error) {
			sent = n
			return "msg-1", nil
		})

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Equal([]ranking.ChangeKind{ranking.ChangePromoted}, output.Accounts[0].StandingChanges)
	s.Require().NotNil(sent)
	s.Equal("Foo#NA1 promoted", sent.Title)

	stored, ok := s.loadState(s.foo).Standing(models.QueueRankedSolo)
	s.Require().True(ok)
	s.Equal(models.DivisionI, stored.Division)
	s.Equal(10, stored.LeaguePoints)
}

func (s *ServiceTestSuite) TestPointsChangeIsSilentByDefault() {
	s.seedState(s.foo, &models.AccountState{
		LastMatchID: strPtr("SAME"),
		Standings:   map[models.QueueType]*models.RankedStanding{models.QueueRankedSolo: gold(models.DivisionII, 40)},
	})

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo, "SAME")
	s.expectStandings(s.foo, gold(models.DivisionII, 58))
	s.capturePublish()

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].StandingChanges)
	s.True(output.Accounts[0].StateSaved)

	stored, _ := s.loadState(s.foo).Standing(models.QueueRankedSolo)
	s.Equal(58, stored.LeaguePoints)
}

func (s *ServiceTestSuite) TestFirstObservedQueueIsBaseline() {
	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo)
	s.expectStandings(s.foo, gold(models.DivisionIV, 0))
	s.capturePublish()

	output, err := s.newService(nil).RunCycle(s.ctx)
	s.Require().NoError(err)
	s.Empty(output.Accounts[0].StandingChanges)

	state := s.loadState(s.foo)
	_, observedFlex := state.Standing(models.QueueRankedFlex)
	s.True(observedFlex)
	solo, _ := state.Standing(models.QueueRankedSolo)
	s.Equal(models.TierGold, solo.Tier)
}

func (s *ServiceTestSuite) TestFatalErrorStopsCycle() {
	s.mockRiot.EXPECT().
		ResolvePlayerID(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("failed to resolve: %w", riot.ErrFatal))

	svc := s.newService(nil)

	_, err := svc.RunCycle(s.ctx)
	s.Require().Error(err)
	s.True(riot.IsFatal(err))
	s.True(riot.IsFatal(svc.Healthy()))
}

func (s *ServiceTestSuite) TestRunReturnsFatal() {
	s.mockRiot.EXPECT().
		ResolvePlayerID(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("failed to resolve: %w", riot.ErrFatal))

	err := s.newService(nil).Run(s.ctx)
	s.ErrorIs(err, riot.ErrFatal)
}

func (s *ServiceTestSuite) TestCancelledCycleSkipsAccounts() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	output, err := s.newService(nil).RunCycle(ctx)
	s.Require().NoError(err)
	s.True(output.Accounts[0].Skipped)
	s.Nil(output.Summary)
}

func (s *ServiceTestSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo).AnyTimes()
	s.expectStandings(s.foo).AnyTimes()

	var cycles int
	s.mockSummary.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *summary.PublishInput) (*summary.PublishOutput, error) {
			cycles++
			if cycles == 2 {
				cancel()
			}
			return &summary.PublishOutput{Action: summary.ActionNone}, nil
		}).
		MinTimes(2)

	svc := s.newService(func(cfg *Config) {
		cfg.PollInterval = 10 * time.Millisecond
	})

	s.NoError(svc.Run(ctx))
	s.GreaterOrEqual(cycles, 2)
}

func (s *ServiceTestSuite) TestHealthy() {
	svc := s.newService(nil)
	s.ErrorIs(svc.Healthy(), ErrNoCycleCompleted)

	s.expectPlayer(s.foo)
	s.expectMatchIDs(s.foo)
	s.expectStandings(s.foo)
	s.capturePublish()

	_, err := svc.RunCycle(s.ctx)
	s.Require().NoError(err)
	s.NoError(svc.Healthy())
}

func (s *ServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNoAccounts)

	_, err = New(&Config{
		Accounts:        []models.Account{s.foo},
		RiotClient:      s.mockRiot,
		Repository:      s.repo,
		Messaging:       s.messaging,
		Summary:         s.mockSummary,
		Notifier:        s.mockNotifier,
		RankedChannelID: rankedChannel,
		MatchScope:      "aram-only",
	})
	s.ErrorIs(err, ErrInvalidScope)

	_, err = New(&Config{
		Accounts:   []models.Account{s.foo},
		RiotClient: s.mockRiot,
		Repository: s.repo,
		Messaging:  s.messaging,
		Summary:    s.mockSummary,
		Notifier:   s.mockNotifier,
	})
	s.ErrorIs(err, ErrNoChannel)
}
