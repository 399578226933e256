package account_state

import "github.com/KirkDiggler/rankwatch/internal/models"

// LoadStateInput contains parameters for loading an account's state
type LoadStateInput struct {
	Account models.Account
}

// SaveStateInput contains parameters for saving an account's state
type SaveStateInput struct {
	Account models.Account
	State   *models.AccountState
}
