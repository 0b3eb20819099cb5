package services_test

import (
	"math"
	"testing"

	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/internal/services"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculatePayouts_WeightedSplit(t *testing.T) {
	result := services.CalculatePayouts([]int{3, 2, 1}, 120, nil, 6)

	if len(result.Positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(result.Positions))
	}
	wantAmounts := []float64{60, 40, 20}
	for i, want := range wantAmounts {
		pp := result.Positions[i]
		if pp.Position != i+1 {
			t.Errorf("expected position %d, got %d", i+1, pp.Position)
		}
		if !almostEqual(pp.Amount, want) {
			t.Errorf("position %d: expected amount %.2f, got %.2f", i+1, want, pp.Amount)
		}
		if pp.PlayerID != nil {
			t.Errorf("position %d: expected no occupant while running", i+1)
		}
	}
}

func TestCalculatePayouts_AmountsSumToPrizePool(t *testing.T) {
	weights := []int{7, 5, 3, 2, 1}
	prizePool := 1234.56

	result := services.CalculatePayouts(weights, prizePool, nil, 10)

	var sum float64
	for _, pp := range result.Positions {
		sum += pp.Amount
	}
	if math.Abs(sum-prizePool) > 1e-6 {
		t.Errorf("expected payouts to sum to %.2f, got %.6f", prizePool, sum)
	}
}

func TestCalculatePayouts_ZeroTotalWeightPaysNothing(t *testing.T) {
	result := services.CalculatePayouts(nil, 500, nil, 6)

	if len(result.Positions) != 0 {
		t.Errorf("expected no positions for empty weights, got %d", len(result.Positions))
	}
	if result.WinnerID != nil {
		t.Error("expected no winner for empty weights")
	}
}

func TestCalculatePayouts_ResolvesOccupants(t *testing.T) {
	// 3 players, everyone out: 3 first, then 1, then 2.
	order := []int{3, 1, 2}
	result := services.CalculatePayouts([]int{3, 2, 1}, 60, order, 3)

	wantPlayers := []int{2, 1, 3}
	for i, pp := range result.Positions {
		if pp.PlayerID == nil {
			t.Fatalf("position %d: expected occupant", pp.Position)
		}
		if *pp.PlayerID != wantPlayers[i] {
			t.Errorf("position %d: expected player %d, got %d", pp.Position, wantPlayers[i], *pp.PlayerID)
		}
	}
	if result.WinnerID == nil || *result.WinnerID != 2 {
		t.Errorf("expected winner 2, got %v", result.WinnerID)
	}
	if !almostEqual(result.Leaderboard[2], 30) {
		t.Errorf("expected leaderboard payout 30 for winner, got %.2f", result.Leaderboard[2])
	}
	for _, id := range wantPlayers {
		if !result.Eligible[id] {
			t.Errorf("expected player %d eligible", id)
		}
	}
}

func TestCalculatePayouts_SoleActivePlayerIsWinner(t *testing.T) {
	// 4 players, three out: player 1 holds first without being in the order.
	order := []int{2, 3, 4}
	result := services.CalculatePayouts([]int{3, 2, 1}, 100, order, 4)

	if result.WinnerID == nil || *result.WinnerID != 1 {
		t.Fatalf("expected winner 1, got %v", result.WinnerID)
	}
	if result.Positions[0].PlayerID == nil || *result.Positions[0].PlayerID != 1 {
		t.Error("expected position 1 occupied by player 1")
	}
}

func TestKnockoutCounts(t *testing.T) {
	by1 := 1
	players := []models.Player{
		{ID: 1},
		{ID: 2, Eliminated: true, EliminatedBy: &by1},
		{ID: 3, Eliminated: true, EliminatedBy: &by1},
		{ID: 4, Eliminated: true}, // nobody credited
	}

	counts := services.KnockoutCounts(players)

	if counts[1] != 2 {
		t.Errorf("expected 2 knockouts for player 1, got %d", counts[1])
	}
	if len(counts) != 1 {
		t.Errorf("expected exactly one credited player, got %d", len(counts))
	}
}

func TestKnockoutCounts_IgnoresActivePlayersCredit(t *testing.T) {
	by2 := 2
	players := []models.Player{
		{ID: 1, EliminatedBy: &by2}, // not eliminated, credit must not count
		{ID: 2},
	}
	counts := services.KnockoutCounts(players)
	if counts[2] != 0 {
		t.Errorf("expected no knockouts, got %d", counts[2])
	}
}

func TestBuyInCost_IncludesPurchases(t *testing.T) {
	cfg := models.TournamentConfig{
		BuyIn:           20,
		FoodPerPlayer:   5,
		BountyPerPlayer: 2,
		RebuyPerPlayer:  10,
		AddOnPerPlayer:  15,
	}
	p := models.Player{ID: 1, RebuyCount: 2, AddonCount: 1}

	got := services.BuyInCost(p, cfg)
	want := 20.0 + 5 + 2 + 2*10 + 1*15
	if !almostEqual(got, want) {
		t.Errorf("expected cost %.2f, got %.2f", want, got)
	}
}

func TestPlayerBreakdown_WinnerGetsKingsBounty(t *testing.T) {
	cfg := models.TournamentConfig{
		BuyIn:           20,
		BountyPerPlayer: 2,
		PayoutWeights:   []int{3, 2, 1},
	}
	players := []models.Player{
		{ID: 1},
		{ID: 2, Eliminated: true, EliminatedBy: intPtr(1)},
		{ID: 3, Eliminated: true, EliminatedBy: intPtr(1)},
	}
	order := []int{2, 3}
	knockouts := services.KnockoutCounts(players)
	payouts := services.CalculatePayouts(cfg.PayoutWeights, 60, order, 3)

	b := services.PlayerBreakdown(players[0], cfg, payouts, knockouts)

	if !almostEqual(b.LeaderboardPayout, 30) {
		t.Errorf("expected leaderboard payout 30, got %.2f", b.LeaderboardPayout)
	}
	if !almostEqual(b.KnockoutBonus, 4) {
		t.Errorf("expected knockout bonus 4, got %.2f", b.KnockoutBonus)
	}
	if !almostEqual(b.KingsBounty, 2) {
		t.Errorf("expected kings bounty 2, got %.2f", b.KingsBounty)
	}
	if !almostEqual(b.BuyInCost, 22) {
		t.Errorf("expected buy-in cost 22, got %.2f", b.BuyInCost)
	}
	wantNet := 30.0 + 4 + 2 - 22
	if !almostEqual(b.NetPay, wantNet) {
		t.Errorf("expected net pay %.2f, got %.2f", wantNet, b.NetPay)
	}
}

func TestPlayerBreakdown_NoEliminatorsTracked_NoKingsBounty(t *testing.T) {
	cfg := models.TournamentConfig{BuyIn: 20, BountyPerPlayer: 2, PayoutWeights: []int{3, 2, 1}}
	players := []models.Player{
		{ID: 1},
		{ID: 2, Eliminated: true},
		{ID: 3, Eliminated: true},
	}
	order := []int{3, 2}
	knockouts := services.KnockoutCounts(players)
	payouts := services.CalculatePayouts(cfg.PayoutWeights, 60, order, 3)

	b := services.PlayerBreakdown(players[0], cfg, payouts, knockouts)

	// Nobody claimed any bounty, so the winner does not keep their
	// own either; only the leaderboard amount pays.
	if b.KingsBounty != 0 {
		t.Errorf("expected no kings bounty without a tracked eliminator, got %.2f", b.KingsBounty)
	}
	if !almostEqual(b.LeaderboardPayout, 30) {
		t.Errorf("expected leaderboard payout 30, got %.2f", b.LeaderboardPayout)
	}
}

func TestPlayerBreakdown_NonWinnerNoBounty(t *testing.T) {
	cfg := models.TournamentConfig{BuyIn: 20, BountyPerPlayer: 2, PayoutWeights: []int{3, 2, 1}}
	order := []int{2, 3}
	payouts := services.CalculatePayouts(cfg.PayoutWeights, 60, order, 3)

	p := models.Player{ID: 3, Eliminated: true}
	b := services.PlayerBreakdown(p, cfg, payouts, nil)

	if b.KingsBounty != 0 {
		t.Errorf("expected no kings bounty for runner-up, got %.2f", b.KingsBounty)
	}
	// Player 3 went out second of three, placement 2: 2/6 of 60.
	if !almostEqual(b.LeaderboardPayout, 20) {
		t.Errorf("expected leaderboard payout 20, got %.2f", b.LeaderboardPayout)
	}
}

func intPtr(v int) *int { return &v }
