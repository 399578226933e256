// Package config loads process configuration from defaults, an optional YAML
// file and RANKWATCH_ environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

// Policy values accepted in configuration
const (
	SummaryPolicyEditInPlace  = "edit-in-place"
	SummaryPolicyAlwaysResend = "always-resend"

	MatchScopeAllModes   = "all-modes"
	MatchScopeRankedOnly = "ranked-only"
)

// Config contains process configuration
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error
	LogLevel string `koanf:"log_level"`

	DiscordToken         string `koanf:"discord_token"`
	DiscordApplicationID string `koanf:"discord_application_id"`

	// DiscordGuildID registers slash commands on one guild when set
	DiscordGuildID string `koanf:"discord_guild_id"`

	// MatchChannelID receives match notifications, defaults to RankedChannelID
	MatchChannelID string `koanf:"match_channel_id"`

	// RankedChannelID holds the summary message and standing changes
	RankedChannelID string `koanf:"ranked_channel_id"`

	RiotAPIKey string `koanf:"riot_api_key"`

	// RiotRegionalHost routes account and match calls, e.g. americas
	RiotRegionalHost string `koanf:"riot_regional_host"`

	// RiotPlatformHost routes league calls, e.g. na1
	RiotPlatformHost string `koanf:"riot_platform_host"`

	RiotRequestsPerSecond int `koanf:"riot_requests_per_second"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// Accounts are Riot IDs in Name#Tag form
	Accounts []string `koanf:"accounts"`

	PollInterval time.Duration `koanf:"poll_interval"`
	CallTimeout  time.Duration `koanf:"call_timeout"`

	// Concurrency bounds how many accounts are polled at once
	Concurrency int `koanf:"concurrency"`

	HistoryLimit int `koanf:"history_limit"`

	SummaryUpdatePolicy string `koanf:"summary_update_policy"`
	MatchScope          string `koanf:"match_scope"`

	ColdStartNotifies     bool `koanf:"cold_start_notifies"`
	NotifyStandingChanges bool `koanf:"notify_standing_changes"`
	NotifyPointsChanges   bool `koanf:"notify_points_changes"`

	// MetricsAddr serves /metrics and /healthz; empty disables the listener
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config populated with defaults
func New() *Config {
	return &Config{
		LogLevel:              "info",
		RiotRegionalHost:      "americas",
		RiotPlatformHost:      "na1",
		RiotRequestsPerSecond: 15,
		RedisAddr:             "localhost:6379",
		PollInterval:          60 * time.Second,
		CallTimeout:           10 * time.Second,
		Concurrency:           1,
		HistoryLimit:          50,
		SummaryUpdatePolicy:   SummaryPolicyEditInPlace,
		MatchScope:            MatchScopeAllModes,
		ColdStartNotifies:     true,
		NotifyStandingChanges: true,
		NotifyPointsChanges:   false,
		MetricsAddr:           ":9090",
	}
}

// ParseAccounts parses the configured Riot IDs, rejecting duplicates
func (c *Config) ParseAccounts() ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(c.Accounts))
	seen := make(map[string]bool, len(c.Accounts))
	for _, raw := range c.Accounts {
		account, err := models.ParseAccount(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if seen[account.RiotID()] {
			return nil, fmt.Errorf("%w: duplicate account %s", ErrInvalidConfig, account.RiotID())
		}
		seen[account.RiotID()] = true
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Validate checks required fields and enumerations
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	required := []struct {
		key   string
		value string
	}{
		{"discord_token", c.DiscordToken},
		{"ranked_channel_id", c.RankedChannelID},
		{"riot_api_key", c.RiotAPIKey},
		{"riot_regional_host", c.RiotRegionalHost},
		{"riot_platform_host", c.RiotPlatformHost},
		{"redis_addr", c.RedisAddr},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, r.key)
		}
	}

	if len(c.Accounts) == 0 {
		return fmt.Errorf("%w: at least one account is required", ErrInvalidConfig)
	}
	if _, err := c.ParseAccounts(); err != nil {
		return err
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidConfig)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("%w: call_timeout must be positive", ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > 100 {
		return fmt.Errorf("%w: history_limit must be between 1 and 100", ErrInvalidConfig)
	}
	if c.RiotRequestsPerSecond < 1 {
		return fmt.Errorf("%w: riot_requests_per_second must be at least 1", ErrInvalidConfig)
	}

	switch c.SummaryUpdatePolicy {
	case SummaryPolicyEditInPlace, SummaryPolicyAlwaysResend:
	default:
		return fmt.Errorf("%w: unknown summary_update_policy %q", ErrInvalidConfig, c.SummaryUpdatePolicy)
	}

	switch c.MatchScope {
	case MatchScopeAllModes, MatchScopeRankedOnly:
	default:
		return fmt.Errorf("%w: unknown match_scope %q", ErrInvalidConfig, c.MatchScope)
	}

	return nil
}
