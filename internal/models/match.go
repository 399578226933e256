package models

import (
	"fmt"
	"time"
)

// MatchSummary is one player's view of a completed match
type MatchSummary struct {
	// MatchID is the provider's opaque match identifier
	MatchID string

	// QueueID is the numeric queue code reported by the provider
	QueueID int

	// Win is true when the player's team won
	Win bool

	// Champion is the champion the player used
	Champion string

	Kills   int
	Deaths  int
	Assists int

	// Duration is the game length
	Duration time.Duration

	// Farm is the player's minion kill count
	Farm int

	// EndedAt is when the match finished, zero when unknown
	EndedAt time.Time
}

var queueNames = map[int]string{
	400:  "Normal Draft",
	420:  "Ranked Solo",
	430:  "Normal Blind",
	440:  "Ranked Flex",
	450:  "ARAM",
	490:  "Quickplay",
	900:  "URF",
	1700: "Arena",
}

// QueueName maps the numeric queue code to a display label, "Unknown" when unmapped
func (m *MatchSummary) QueueName() string {
	if name, ok := queueNames[m.QueueID]; ok {
		return name
	}
	return "Unknown"
}

// IsRanked reports whether the match was played in a ranked queue
func (m *MatchSummary) IsRanked() bool {
	return m.QueueID == 420 || m.QueueID == 440
}

// KDA renders kills/deaths/assists
func (m *MatchSummary) KDA() string {
	return fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists)
}
