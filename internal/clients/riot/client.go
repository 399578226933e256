// Package riot is a small client for the Riot account, match and league APIs.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/rankwatch/internal/models"
	"go.uber.org/ratelimit"
)

const (
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerSecond = 15
	maxMatchCount            = 100
	maxErrorBody             = 512
)

// BaseURL returns the API base URL for a routing value such as "americas" or "na1"
func BaseURL(routing string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", routing)
}

// Config holds configuration for the Riot client
type Config struct {
	// APIKey is sent in the X-Riot-Token header
	APIKey string

	// RegionalBaseURL serves account and match endpoints
	RegionalBaseURL string

	// PlatformBaseURL serves league endpoints
	PlatformBaseURL string

	// RequestsPerSecond paces outbound calls
	RequestsPerSecond int

	// HTTPClient is optional
	HTTPClient *http.Client
}

type client struct {
	apiKey      string
	regionalURL string
	platformURL string
	httpClient  *http.Client
	limiter     ratelimit.Limiter
}

// New creates a new Riot API client
func New(cfg *Config) (*client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key cannot be empty")
	}
	if cfg.RegionalBaseURL == "" || cfg.PlatformBaseURL == "" {
		return nil, errors.New("regional and platform base URLs are required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	return &client{
		apiKey:      cfg.APIKey,
		regionalURL: strings.TrimRight(cfg.RegionalBaseURL, "/"),
		platformURL: strings.TrimRight(cfg.PlatformBaseURL, "/"),
		httpClient:  httpClient,
		limiter:     ratelimit.New(rps),
	}, nil
}

// ResolvePlayerID looks up the PUUID for a Riot ID
func (c *client) ResolvePlayerID(ctx context.Context, input *ResolvePlayerIDInput) (string, error) {
	if input == nil || !input.Account.IsValid() {
		return "", errors.New("input and account cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalURL, url.PathEscape(input.Account.Name), url.PathEscape(input.Account.Tag))

	var acct account
	if err := c.get(ctx, endpoint, &acct); err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", input.Account.RiotID(), err)
	}
	if acct.PUUID == "" {
		return "", fmt.Errorf("failed to resolve %s: %w", input.Account.RiotID(), ErrNotFound)
	}

	return acct.PUUID, nil
}

// RecentMatchIDs lists the player's most recent match ids
func (c *client) RecentMatchIDs(ctx context.Context, input *RecentMatchIDsInput) ([]string, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	count := input.Count
	if count <= 0 {
		count = 1
	}
	if count > maxMatchCount {
		count = maxMatchCount
	}

	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d",
		c.regionalURL, url.PathEscape(input.PlayerID), count)

	var ids []string
	if err := c.get(ctx, endpoint, &ids); err != nil {
		return nil, fmt.Errorf("failed to get match IDs: %w", err)
	}

	return ids, nil
}

// MatchDetails fetches a match and summarises it for one participant
func (c *client) MatchDetails(ctx context.Context, input *MatchDetailsInput) (*models.MatchSummary, error) {
	if input == nil || input.MatchID == "" || input.PlayerID == "" {
		return nil, errors.New("input, match ID and player ID cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL, url.PathEscape(input.MatchID))

	var m match
	if err := c.get(ctx, endpoint, &m); err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", input.MatchID, err)
	}

	var p *participant
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == input.PlayerID {
			p = &m.Info.Participants[i]
			break
		}
	}
	if p == nil {
		return nil, fmt.Errorf("player not in match %s: %w", input.MatchID, ErrNotFound)
	}

	summary := &models.MatchSummary{
		MatchID:  input.MatchID,
		QueueID:  m.Info.QueueID,
		Win:      p.Win,
		Champion: p.ChampionName,
		Kills:    p.Kills,
		Deaths:   p.Deaths,
		Assists:  p.Assists,
		Farm:     p.TotalMinionsKilled,
	}

	// gameDuration is reported in milliseconds when gameEndTimestamp is absent
	if m.Info.GameEndTimestamp > 0 {
		summary.Duration = time.Duration(m.Info.GameDuration) * time.Second
		summary.EndedAt = time.UnixMilli(m.Info.GameEndTimestamp).UTC()
	} else {
		summary.Duration = time.Duration(m.Info.GameDuration) * time.Millisecond
	}

	return summary, nil
}

// RankedStandings fetches the player's league entries
func (c *client) RankedStandings(ctx context.Context, input *RankedStandingsInput) ([]*models.RankedStanding, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformURL, url.PathEscape(input.PlayerID))

	var entries []leagueEntry
	if err := c.get(ctx, endpoint, &entries); err != nil {
		return nil, fmt.Errorf("failed to get league entries: %w", err)
	}

	standings := make([]*models.RankedStanding, 0, len(entries))
	for _, e := range entries {
		standings = append(standings, &models.RankedStanding{
			Queue:        models.QueueType(e.QueueType),
			Tier:         models.Tier(strings.ToUpper(e.Tier)),
			Division:     models.Division(strings.ToUpper(e.Rank)),
			LeaguePoints: e.LeaguePoints,
			Wins:         e.Wins,
			Losses:       e.Losses,
		})
	}

	return standings, nil
}

// get performs a paced GET request and decodes the JSON response
func (c *client) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrFatal, err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.limiter.Take()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: gave up waiting for rate limiter: %v", ErrTransient, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrTransient, err)
	}

	return nil
}
