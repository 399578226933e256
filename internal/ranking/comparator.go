package ranking

import (
	"github.com/KirkDiggler/rankwatch/internal/models"
)

// ChangeKind classifies the difference between two standings
type ChangeKind string

const (
	ChangeNone           ChangeKind = "no_change"
	ChangePromoted       ChangeKind = "promoted"
	ChangeDemoted        ChangeKind = "demoted"
	ChangePointsChanged  ChangeKind = "points_changed"
	ChangeBecameRanked   ChangeKind = "became_ranked"
	ChangeBecameUnranked ChangeKind = "became_unranked"
)

// Equal compares tier, division and league points only
func Equal(a, b *models.RankedStanding) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Tier == b.Tier && a.Division == b.Division && a.LeaguePoints == b.LeaguePoints
}

// CompareStandings classifies the move from previous to current
func CompareStandings(previous, current *models.RankedStanding) ChangeKind {
	switch {
	case Equal(previous, current):
		return ChangeNone
	case previous == nil:
		return ChangeBecameRanked
	case current == nil:
		return ChangeBecameUnranked
	}

	// same tier and division: only the points moved. Unrecognized tiers share a rank.
	if tierRank(previous.Tier) == tierRank(current.Tier) && divisionRank(previous) == divisionRank(current) {
		return ChangePointsChanged
	}

	if tierRank(current.Tier) < tierRank(previous.Tier) ||
		(tierRank(current.Tier) == tierRank(previous.Tier) && divisionRank(current) < divisionRank(previous)) {
		return ChangePromoted
	}
	return ChangeDemoted
}
