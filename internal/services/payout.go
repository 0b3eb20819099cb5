package services

import "github.com/hcoles/tourneybank/internal/models"

// PayoutResult holds every derived payout value for the current
// state. It is a pure projection; nothing in it is authoritative.
type PayoutResult struct {
	// Positions lists each paid placement with its amount and, once
	// resolvable, its occupant.
	Positions []models.PositionPayout
	// Leaderboard maps player id to leaderboard payout for players
	// whose placement currently maps to a scored position.
	Leaderboard map[int]float64
	// Eligible is the set of players with a resolved scored position.
	Eligible map[int]bool
	// WinnerID is set when a position-1 payout exists and the winner
	// is determined.
	WinnerID *int
}

// CalculatePayouts derives the weighted payouts for the prize pool.
// A zero total weight pays no positions.
func CalculatePayouts(weights []int, prizePool float64, order []int, numPlayers int) PayoutResult {
	result := PayoutResult{
		Leaderboard: make(map[int]float64),
		Eligible:    make(map[int]bool),
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return result
	}

	for i, w := range weights {
		position := i + 1
		amount := float64(w) / float64(totalWeight) * prizePool
		pp := models.PositionPayout{Position: position, Amount: amount}
		if id, ok := PlayerAtPosition(order, numPlayers, position); ok {
			pid := id
			pp.PlayerID = &pid
			result.Leaderboard[id] = amount
			result.Eligible[id] = true
			if position == 1 {
				winner := id
				result.WinnerID = &winner
			}
		}
		result.Positions = append(result.Positions, pp)
	}

	return result
}

// KnockoutCounts counts eliminations credited to each player.
func KnockoutCounts(players []models.Player) map[int]int {
	counts := make(map[int]int)
	for _, p := range players {
		if p.Eliminated && p.EliminatedBy != nil {
			counts[*p.EliminatedBy]++
		}
	}
	return counts
}

// BuyInCost is the player's full cost of play: flat fees plus their
// own rebuy and add-on purchases, regardless of the bought-in flag.
func BuyInCost(p models.Player, cfg models.TournamentConfig) float64 {
	return cfg.BuyIn + cfg.FoodPerPlayer + cfg.BountyPerPlayer +
		float64(p.AddonCount)*cfg.AddOnPerPlayer +
		float64(p.RebuyCount)*cfg.RebuyPerPlayer
}

// KingsBounty is the winner's own bounty, kept because nobody
// eliminated them. It is only disbursed while the bounty chain is in
// use: with no eliminations credited to anyone, the bounty pool never
// moves and payouts settle on the leaderboard amounts alone.
func KingsBounty(playerID int, cfg models.TournamentConfig, payouts PayoutResult, knockouts map[int]int) float64 {
	if len(knockouts) == 0 {
		return 0
	}
	if payouts.WinnerID == nil || *payouts.WinnerID != playerID {
		return 0
	}
	return cfg.BountyPerPlayer
}

// PlayerBreakdown assembles the per-player payout preview: the
// leaderboard payout, knockout bonus, king's bounty, cost of play and
// the resulting net.
func PlayerBreakdown(p models.Player, cfg models.TournamentConfig, payouts PayoutResult, knockouts map[int]int) models.PayoutBreakdown {
	b := models.PayoutBreakdown{
		LeaderboardPayout: payouts.Leaderboard[p.ID],
		KnockoutBonus:     float64(knockouts[p.ID]) * cfg.BountyPerPlayer,
		KingsBounty:       KingsBounty(p.ID, cfg, payouts, knockouts),
		BuyInCost:         BuyInCost(p, cfg),
	}
	b.NetPay = b.LeaderboardPayout + b.KnockoutBonus + b.KingsBounty - b.BuyInCost
	return b
}
