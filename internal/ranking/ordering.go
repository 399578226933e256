// Package ranking orders ranked standings and classifies changes between them.
package ranking

import (
	"sort"

	"github.com/KirkDiggler/rankwatch/internal/models"
)

var tierOrder = map[models.Tier]int{
	models.TierChallenger:  0,
	models.TierGrandmaster: 1,
	models.TierMaster:      2,
	models.TierDiamond:     3,
	models.TierEmerald:     4,
	models.TierPlatinum:    5,
	models.TierGold:        6,
	models.TierSilver:      7,
	models.TierBronze:      8,
	models.TierIron:        9,
}

// unknown tiers sort after IRON but before unranked
const unknownTierRank = 10

var divisionOrder = map[models.Division]int{
	models.DivisionI:   0,
	models.DivisionII:  1,
	models.DivisionIII: 2,
	models.DivisionIV:  3,
	models.DivisionV:   4,
}

func tierRank(t models.Tier) int {
	if rank, ok := tierOrder[t]; ok {
		return rank
	}
	return unknownTierRank
}

// apex tiers and missing divisions compare as I
func divisionRank(r *models.RankedStanding) int {
	if r.Tier.IsApex() {
		return 0
	}
	if rank, ok := divisionOrder[r.Division]; ok {
		return rank
	}
	return 0
}

// Compare returns a negative number when a sorts before b (a is the better
// standing), positive when after, and zero when they are equivalent.
// A nil standing is unranked and sorts after every ranked one.
func Compare(a, b *models.RankedStanding) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if d := tierRank(a.Tier) - tierRank(b.Tier); d != 0 {
		return d
	}
	if d := divisionRank(a) - divisionRank(b); d != 0 {
		return d
	}
	// more points first
	return b.LeaguePoints - a.LeaguePoints
}

// Less reports whether a sorts strictly before b
func Less(a, b *models.RankedStanding) bool {
	return Compare(a, b) < 0
}

// Entry pairs an account with its standing in one queue
type Entry struct {
	Account  models.Account
	Standing *models.RankedStanding
}

// SortEntries sorts in place, best first. Equivalent standings keep their input order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i].Standing, entries[j].Standing)
	})
}
