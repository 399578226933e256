package account_state

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rankwatch/internal/repositories/account_state Repository

import (
	"context"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

// Repository defines the interface for per-account notification state
type Repository interface {
	// LoadState returns the persisted state, or an empty state when none exists
	LoadState(ctx context.Context, input *LoadStateInput) (*models.AccountState, error)

	// SaveState persists the state for an account, replacing what was there
	SaveState(ctx context.Context, input *SaveStateInput) error
}
