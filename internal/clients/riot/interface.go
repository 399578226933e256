package riot

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/rankwatch/internal/clients/riot Client

import (
	"context"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

// Client is the statistics provider as seen by the poller. Every method may
// fail with an error wrapping ErrNotFound, ErrTransient or ErrFatal.
type Client interface {
	// ResolvePlayerID returns the PUUID for a Riot ID
	ResolvePlayerID(ctx context.Context, input *ResolvePlayerIDInput) (string, error)

	// RecentMatchIDs returns match ids, most recent first
	RecentMatchIDs(ctx context.Context, input *RecentMatchIDsInput) ([]string, error)

	// MatchDetails returns the player's summary of one match
	MatchDetails(ctx context.Context, input *MatchDetailsInput) (*models.MatchSummary, error)

	// RankedStandings returns one entry per queue the player has placed in
	RankedStandings(ctx context.Context, input *RankedStandingsInput) ([]*models.RankedStanding, error)
}
