// Package tracker decides whether an account's most recent match should be surfaced.
package tracker

import (
	"github.com/KirkDiggler/rankwatch/internal/models"
)

// Decision is the outcome of evaluating a candidate match
type Decision string

const (
	// DecisionIgnore means the candidate was already handled
	DecisionIgnore Decision = "ignore"

	// DecisionNotify means the candidate is new and should be surfaced
	DecisionNotify Decision = "notify"

	// DecisionSuppressColdStart means the candidate is the first match ever seen
	// for the account and cold start notifications are disabled
	DecisionSuppressColdStart Decision = "suppress_cold_start"
)

// IsNew reports whether candidate differs from the previously notified match.
// An absent previous id makes every candidate new.
func IsNew(previous *string, candidate string) bool {
	return previous == nil || *previous != candidate
}

// Config holds configuration for the tracker
type Config struct {
	// ColdStartNotifies surfaces the first match seen for an account
	ColdStartNotifies bool
}

// Tracker applies the notification policy on top of IsNew
type Tracker struct {
	coldStartNotifies bool
}

// New creates a new tracker
func New(cfg *Config) *Tracker {
	t := &Tracker{coldStartNotifies: true}
	if cfg != nil {
		t.coldStartNotifies = cfg.ColdStartNotifies
	}
	return t
}

// Decide evaluates candidate against the persisted state
func (t *Tracker) Decide(state *models.AccountState, candidate string) Decision {
	if candidate == "" {
		return DecisionIgnore
	}
	if state == nil {
		state = models.NewAccountState()
	}

	if !IsNew(state.LastMatchID, candidate) {
		return DecisionIgnore
	}

	// seen before and deliberately skipped
	if state.SuppressedMatchID != nil && *state.SuppressedMatchID == candidate {
		return DecisionIgnore
	}

	if state.IsColdStart() && !t.coldStartNotifies {
		return DecisionSuppressColdStart
	}

	return DecisionNotify
}
