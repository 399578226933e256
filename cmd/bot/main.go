package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rankwatch/internal/clients/riot"
	"github.com/KirkDiggler/rankwatch/internal/config"
	"github.com/KirkDiggler/rankwatch/internal/handlers/discord"
	"github.com/KirkDiggler/rankwatch/internal/handlers/ops"
	"github.com/KirkDiggler/rankwatch/internal/metrics"
	"github.com/KirkDiggler/rankwatch/internal/repositories/account_state"
	"github.com/KirkDiggler/rankwatch/internal/services/messaging"
	"github.com/KirkDiggler/rankwatch/internal/services/poller"
	"github.com/KirkDiggler/rankwatch/internal/services/summary"
	"github.com/KirkDiggler/rankwatch/internal/tracker"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file (defaults to $RANKWATCH_CONFIG)",
	}

	app := &cli.App{
		Name:   "rankwatch",
		Usage:  "League of Legends match and ranked standings notifier for Discord",
		Flags:  []cli.Flag{configFlag},
		Action: func(c *cli.Context) error { return run(c, false) },
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "poll on an interval until interrupted",
				Action: func(c *cli.Context) error { return run(c, false) },
			},
			{
				Name:   "poll-once",
				Usage:  "run a single poll cycle and exit",
				Action: func(c *cli.Context) error { return run(c, true) },
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("rankwatch stopped with error", "error", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func run(c *cli.Context, once bool) error {
	// Load configuration
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)
	logger := slog.Default()

	accounts, err := cfg.ParseAccounts()
	if err != nil {
		return err
	}

	slog.Info("starting rankwatch", "accounts", len(accounts), "poll_interval", cfg.PollInterval)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	stateRepo, err := account_state.NewRedis(&account_state.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	riotClient, err := riot.New(&riot.Config{
		APIKey:            cfg.RiotAPIKey,
		RegionalBaseURL:   riot.BaseURL(cfg.RiotRegionalHost),
		PlatformBaseURL:   riot.BaseURL(cfg.RiotPlatformHost),
		RequestsPerSecond: cfg.RiotRequestsPerSecond,
	})
	if err != nil {
		return err
	}

	metricsManager := metrics.NewManager()

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.DiscordApplicationID,
		GuildID:       cfg.DiscordGuildID,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		NotifyStandingChanges: cfg.NotifyStandingChanges,
		NotifyPointsChanges:   cfg.NotifyPointsChanges,
	})
	if err != nil {
		return err
	}

	summarySvc, err := summary.New(&summary.Config{
		Messenger:    bot.Messenger(),
		Policy:       summary.UpdatePolicy(cfg.SummaryUpdatePolicy),
		HistoryLimit: cfg.HistoryLimit,
		Title:        messaging.SummaryTitle,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	pollSvc, err := poller.New(&poller.Config{
		Accounts:        accounts,
		RiotClient:      riotClient,
		Repository:      stateRepo,
		Messaging:       messagingSvc,
		Summary:         summarySvc,
		Notifier:        bot.Messenger(),
		Tracker:         tracker.New(&tracker.Config{ColdStartNotifies: cfg.ColdStartNotifies}),
		MatchChannelID:  cfg.MatchChannelID,
		RankedChannelID: cfg.RankedChannelID,
		MatchScope:      poller.MatchScope(cfg.MatchScope),
		PollInterval:    cfg.PollInterval,
		CallTimeout:     cfg.CallTimeout,
		Concurrency:     cfg.Concurrency,
		Metrics:         metricsManager,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	if once {
		return pollOnce(ctx, bot, pollSvc)
	}

	if err := bot.Start(summarySvc, cfg.RankedChannelID); err != nil {
		return err
	}
	defer func() {
		if err := bot.Stop(); err != nil {
			slog.Error("error stopping bot", "error", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		server, err := startOpsServer(cfg.MetricsAddr, metricsManager, pollSvc.Healthy)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("error stopping ops server", "error", err)
			}
		}()
	}

	slog.Info("rankwatch is running, press Ctrl+C to stop")

	if err := pollSvc.Run(ctx); err != nil {
		return err
	}

	slog.Info("shutting down")
	return nil
}

// pollOnce connects without registering commands, runs one cycle and reports it
func pollOnce(ctx context.Context, bot *discord.Bot, pollSvc poller.Service) error {
	if err := bot.Start(nil, ""); err != nil {
		return err
	}
	defer func() {
		if err := bot.Stop(); err != nil {
			slog.Error("error stopping bot", "error", err)
		}
	}()

	output, err := pollSvc.RunCycle(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range output.Accounts {
		if len(result.Errors) > 0 {
			failed++
		}
	}
	action := "skipped"
	if output.Summary != nil {
		action = string(output.Summary.Action)
	}
	slog.Info("poll cycle finished", "cycle_id", output.CycleID, "accounts", len(output.Accounts), "failed", failed, "summary", action)

	return nil
}

func startOpsServer(addr string, m *metrics.Manager, health ops.HealthFunc) (*http.Server, error) {
	router, err := ops.NewRouter(&ops.Config{
		Gatherer: m.Registry(),
		Health:   health,
	})
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("ops server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ops server failed", "error", err)
		}
	}()

	return server, nil
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
