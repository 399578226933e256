package models

import (
	"fmt"
	"strings"
)

// Tier is the coarse ranked classification
type Tier string

const (
	TierChallenger  Tier = "CHALLENGER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierMaster      Tier = "MASTER"
	TierDiamond     Tier = "DIAMOND"
	TierEmerald     Tier = "EMERALD"
	TierPlatinum    Tier = "PLATINUM"
	TierGold        Tier = "GOLD"
	TierSilver      Tier = "SILVER"
	TierBronze      Tier = "BRONZE"
	TierIron        Tier = "IRON"
)

// IsApex reports whether the tier has no divisions
func (t Tier) IsApex() bool {
	return t == TierChallenger || t == TierGrandmaster || t == TierMaster
}

// Division is the fine ranked classification inside a tier
type Division string

const (
	DivisionI   Division = "I"
	DivisionII  Division = "II"
	DivisionIII Division = "III"
	DivisionIV  Division = "IV"
	DivisionV   Division = "V"
)

// QueueType is a ranked queue as labelled by the league API
type QueueType string

const (
	// QueueRankedSolo is solo/duo ranked
	QueueRankedSolo QueueType = "RANKED_SOLO_5x5"

	// QueueRankedFlex is flex ranked
	QueueRankedFlex QueueType = "RANKED_FLEX_SR"
)

// RankedQueues is the allow-list of queues that feed the standings summary, in display order
var RankedQueues = []QueueType{QueueRankedSolo, QueueRankedFlex}

// DisplayName is the label used in summaries
func (q QueueType) DisplayName() string {
	switch q {
	case QueueRankedSolo:
		return "Solo/Duo Queue"
	case QueueRankedFlex:
		return "Flex Queue"
	default:
		return string(q)
	}
}

// IsRanked reports whether the queue is in the allow-list
func (q QueueType) IsRanked() bool {
	for _, ranked := range RankedQueues {
		if q == ranked {
			return true
		}
	}
	return false
}

// RankedStanding is a player's placement in one queue
type RankedStanding struct {
	// Queue is the queue this standing belongs to
	Queue QueueType `json:"queue"`

	// Tier is the coarse rank
	Tier Tier `json:"tier"`

	// Division is empty for apex tiers
	Division Division `json:"division,omitempty"`

	// LeaguePoints is the score inside the division
	LeaguePoints int `json:"leaguePoints"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Label renders the standing as "GOLD II 40LP", omitting the division for apex tiers
func (r *RankedStanding) Label() string {
	if r == nil {
		return "Unranked"
	}

	parts := []string{string(r.Tier)}
	if r.Division != "" && !r.Tier.IsApex() {
		parts = append(parts, string(r.Division))
	}
	parts = append(parts, fmt.Sprintf("%dLP", r.LeaguePoints))

	return strings.Join(parts, " ")
}

// Clone returns a copy, nil-safe
func (r *RankedStanding) Clone() *RankedStanding {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
