package models

import (
	"time"
)

// AccountState is the persisted notification state for one account
type AccountState struct {
	// LastMatchID is the last match surfaced in a notification
	LastMatchID *string `json:"last_match_id"`

	// SuppressedMatchID is the most recent match that was seen but deliberately
	// not surfaced (cold start or out of scope)
	SuppressedMatchID *string `json:"suppressed_match_id"`

	// Standings holds the last known standing per queue. A present key with a nil
	// value means the account was observed unranked in that queue.
	Standings map[QueueType]*RankedStanding `json:"standings"`

	// UpdatedAt is when the state was last saved
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccountState returns an empty state
func NewAccountState() *AccountState {
	return &AccountState{
		Standings: make(map[QueueType]*RankedStanding),
	}
}

// IsColdStart reports whether no match has ever been recorded for the account
func (s *AccountState) IsColdStart() bool {
	return s.LastMatchID == nil && s.SuppressedMatchID == nil
}

// Standing returns the stored standing for a queue and whether the queue was ever observed
func (s *AccountState) Standing(queue QueueType) (*RankedStanding, bool) {
	if s.Standings == nil {
		return nil, false
	}
	standing, ok := s.Standings[queue]
	return standing, ok
}

// HasStandings reports whether any queue was ever observed
func (s *AccountState) HasStandings() bool {
	return len(s.Standings) > 0
}

// Clone returns a deep copy
func (s *AccountState) Clone() *AccountState {
	if s == nil {
		return nil
	}

	c := &AccountState{
		LastMatchID:       cloneString(s.LastMatchID),
		SuppressedMatchID: cloneString(s.SuppressedMatchID),
		Standings:         make(map[QueueType]*RankedStanding, len(s.Standings)),
		UpdatedAt:         s.UpdatedAt,
	}
	for queue, standing := range s.Standings {
		c.Standings[queue] = standing.Clone()
	}
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
