package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rankwatch/internal/services/messaging Service

import (
	"context"

	"github.com/KirkDiggler/rankwatch/internal/ranking"
)

// Service turns match results and standings into channel notifications
type Service interface {
	// ComposeMatch builds the notification for a newly finished match
	ComposeMatch(ctx context.Context, input *ComposeMatchInput) (*ComposeMatchOutput, error)

	// ComposeStandings builds the ranked leaderboard summary
	ComposeStandings(ctx context.Context, input *ComposeStandingsInput) (*ComposeStandingsOutput, error)

	// ComposeStandingChange builds the notification for a promotion, demotion or placement
	ComposeStandingChange(ctx context.Context, input *ComposeStandingChangeInput) (*ComposeStandingChangeOutput, error)

	// ShouldNotifyStandingChange reports whether a change of this kind is surfaced
	ShouldNotifyStandingChange(kind ranking.ChangeKind) bool
}
