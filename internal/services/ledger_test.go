package services_test

import (
	"math"
	"testing"

	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/internal/services"
)

func TestComputePools_BasicTotals(t *testing.T) {
	cfg := models.TournamentConfig{
		BuyIn:           20,
		FoodPerPlayer:   5,
		BountyPerPlayer: 2,
		RebuyPerPlayer:  10,
		AddOnPerPlayer:  15,
	}
	players := []models.Player{
		{ID: 1, BoughtIn: true, RebuyCount: 1},
		{ID: 2, BoughtIn: true, AddonCount: 2},
		{ID: 3},
	}

	pools := services.ComputePools(players, cfg)

	if pools.BuyInPool != 60 {
		t.Errorf("expected buy-in pool 60, got %.2f", pools.BuyInPool)
	}
	if pools.FoodPool != 15 {
		t.Errorf("expected food pool 15, got %.2f", pools.FoodPool)
	}
	if pools.BountyPool != 6 {
		t.Errorf("expected bounty pool 6, got %.2f", pools.BountyPool)
	}
	if pools.RebuyPool != 10 {
		t.Errorf("expected rebuy pool 10, got %.2f", pools.RebuyPool)
	}
	if pools.AddOnPool != 30 {
		t.Errorf("expected add-on pool 30, got %.2f", pools.AddOnPool)
	}
	if pools.TotalPool != 121 {
		t.Errorf("expected total pool 121, got %.2f", pools.TotalPool)
	}
	// Prize pool excludes food and bounty.
	if pools.PrizePool != 100 {
		t.Errorf("expected prize pool 100, got %.2f", pools.PrizePool)
	}
}

func TestComputePools_PaidInCountsFlatFeesPerBuyIn(t *testing.T) {
	cfg := models.TournamentConfig{
		BuyIn:           20,
		FoodPerPlayer:   5,
		BountyPerPlayer: 2,
		RebuyPerPlayer:  10,
	}
	// Only player 1 bought in; player 2's rebuy still charges the room.
	players := []models.Player{
		{ID: 1, BoughtIn: true},
		{ID: 2, RebuyCount: 1},
		{ID: 3},
	}

	pools := services.ComputePools(players, cfg)

	want := (20.0 + 5 + 2) + 10
	if math.Abs(pools.TotalPaidIn-want) > 1e-9 {
		t.Errorf("expected total paid in %.2f, got %.2f", want, pools.TotalPaidIn)
	}
}

func TestComputePools_FullyBoughtInMatchesTotalPool(t *testing.T) {
	cfg := models.TournamentConfig{
		BuyIn:           20,
		FoodPerPlayer:   5,
		BountyPerPlayer: 2,
		RebuyPerPlayer:  10,
		AddOnPerPlayer:  15,
	}
	players := []models.Player{
		{ID: 1, BoughtIn: true, RebuyCount: 2},
		{ID: 2, BoughtIn: true},
		{ID: 3, BoughtIn: true, AddonCount: 1},
	}

	pools := services.ComputePools(players, cfg)

	if math.Abs(pools.TotalPaidIn-pools.TotalPool) > 1e-9 {
		t.Errorf("expected total paid in %.2f to equal total pool %.2f",
			pools.TotalPaidIn, pools.TotalPool)
	}
}

func TestComputePools_LeavesTotalPaidOutZero(t *testing.T) {
	players := []models.Player{{ID: 1, PaidOut: true}}
	pools := services.ComputePools(players, models.TournamentConfig{BuyIn: 20})
	if pools.TotalPaidOut != 0 {
		t.Errorf("expected zero total paid out from ComputePools, got %.2f", pools.TotalPaidOut)
	}
}

func TestGrossPaidOut_SumsDisbursedCash(t *testing.T) {
	cfg := models.TournamentConfig{
		BuyIn:           20,
		BountyPerPlayer: 2,
		PayoutWeights:   []int{3, 2, 1},
	}
	// 3 players, all out, winner is player 1 with two knockouts.
	players := []models.Player{
		{ID: 1, Eliminated: true, PaidOut: true},
		{ID: 2, Eliminated: true, EliminatedBy: intPtr(1), PaidOut: true},
		{ID: 3, Eliminated: true, EliminatedBy: intPtr(1)},
	}
	order := []int{3, 2, 1}
	knockouts := services.KnockoutCounts(players)
	payouts := services.CalculatePayouts(cfg.PayoutWeights, 60, order, 3)

	got := services.GrossPaidOut(players, cfg, payouts, knockouts)

	// Player 1: 30 leaderboard + 4 knockouts + 2 kings bounty.
	// Player 2: 20 leaderboard. Player 3 is not paid out.
	want := 30.0 + 4 + 2 + 20
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected gross paid out %.2f, got %.2f", want, got)
	}
}

func TestGrossPaidOut_NobodyPaidOut(t *testing.T) {
	players := []models.Player{{ID: 1}, {ID: 2}}
	got := services.GrossPaidOut(players, models.TournamentConfig{}, services.PayoutResult{}, nil)
	if got != 0 {
		t.Errorf("expected zero gross paid out, got %.2f", got)
	}
}
