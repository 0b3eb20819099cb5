package services

import "github.com/hcoles/tourneybank/internal/models"

// ComputePools derives every pool total from the roster and config.
// TotalPaidOut is left zero; it depends on the payout projection and
// is filled in by GrossPaidOut.
//
// TotalPaidIn deliberately counts the full rebuy and add-on pools
// even for players who never set the bought-in flag; individual
// purchases are tracked per player but charged to the room as a
// whole. This mirrors the original accounting exactly.
func ComputePools(players []models.Player, cfg models.TournamentConfig) models.Pools {
	n := float64(len(players))

	var rebuys, addons int
	var paidInFlat float64
	for _, p := range players {
		rebuys += p.RebuyCount
		addons += p.AddonCount
		if p.BoughtIn {
			paidInFlat += cfg.BuyIn + cfg.FoodPerPlayer + cfg.BountyPerPlayer
		}
	}

	pools := models.Pools{
		BuyInPool:  n * cfg.BuyIn,
		FoodPool:   n * cfg.FoodPerPlayer,
		BountyPool: n * cfg.BountyPerPlayer,
		RebuyPool:  float64(rebuys) * cfg.RebuyPerPlayer,
		AddOnPool:  float64(addons) * cfg.AddOnPerPlayer,
	}
	pools.TotalPool = pools.BuyInPool + pools.FoodPool + pools.BountyPool + pools.RebuyPool + pools.AddOnPool
	pools.PrizePool = pools.BuyInPool + pools.RebuyPool + pools.AddOnPool
	pools.TotalPaidIn = paidInFlat + pools.RebuyPool + pools.AddOnPool
	return pools
}

// GrossPaidOut sums the cash disbursed to players marked paid out:
// leaderboard payout, knockout bonus and king's bounty. Buy-in cost
// is not subtracted; this is gross outflow, distinct from net pay.
func GrossPaidOut(players []models.Player, cfg models.TournamentConfig, payouts PayoutResult, knockouts map[int]int) float64 {
	var total float64
	for _, p := range players {
		if !p.PaidOut {
			continue
		}
		total += payouts.Leaderboard[p.ID]
		total += float64(knockouts[p.ID]) * cfg.BountyPerPlayer
		total += KingsBounty(p.ID, cfg, payouts, knockouts)
	}
	return total
}
