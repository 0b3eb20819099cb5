package models

import "fmt"

// MaxPurchases caps per-player rebuy and add-on counts.
const MaxPurchases = 20

// Player represents one seat at the tournament. IDs are contiguous
// 1..N; when the player count shrinks, ids beyond the new N are
// dropped, and new ids are appended with a default name.
type Player struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	BoughtIn     bool   `json:"bought_in"`
	Eliminated   bool   `json:"eliminated"`
	PaidOut      bool   `json:"paid_out"`
	RebuyCount   int    `json:"rebuy_count"`
	AddonCount   int    `json:"addon_count"`
	EliminatedBy *int   `json:"eliminated_by,omitempty"` // nil unless Eliminated
}

// DefaultName returns the seat's default display name.
func DefaultName(id int) string {
	return fmt.Sprintf("Player %d", id)
}

// TournamentConfig holds the monetary configuration and payout
// weights. All amounts are per player and non-negative.
type TournamentConfig struct {
	BuyIn           float64 `json:"buy_in"`
	FoodPerPlayer   float64 `json:"food_per_player"`
	BountyPerPlayer float64 `json:"bounty_per_player"`
	RebuyPerPlayer  float64 `json:"rebuy_per_player"`
	AddOnPerPlayer  float64 `json:"add_on_per_player"`
	// PayoutWeights[0] is the weight for 1st place; the list length is
	// the number of paid placements.
	PayoutWeights []int `json:"payout_weights"`
}

// ActionKind enumerates the stageable player actions.
type ActionKind string

const (
	ActionOut     ActionKind = "out"
	ActionBuyIn   ActionKind = "buy_in"
	ActionPaidOut ActionKind = "paid_out"
	ActionRebuy   ActionKind = "rebuy"
	ActionAddon   ActionKind = "addon"
)

// Valid reports whether k is one of the defined action kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionOut, ActionBuyIn, ActionPaidOut, ActionRebuy, ActionAddon:
		return true
	}
	return false
}

// PayoutBreakdown is the per-player payout preview computed when a
// paid-out action is staged.
type PayoutBreakdown struct {
	LeaderboardPayout float64 `json:"leaderboard_payout"`
	KnockoutBonus     float64 `json:"knockout_bonus"`
	KingsBounty       float64 `json:"kings_bounty"`
	BuyInCost         float64 `json:"buy_in_cost"`
	NetPay            float64 `json:"net_pay"`
}

// PendingAction is a staged, not yet confirmed state transition. At
// most one exists at a time; a new request replaces it silently.
type PendingAction struct {
	TargetPlayerID int        `json:"target_player_id"`
	Kind           ActionKind `json:"kind"`
	// Apply is the direction of the toggle: true applies the action,
	// false reverses it.
	Apply bool `json:"apply"`

	// Buy-in preview.
	Cost float64 `json:"cost,omitempty"`

	// Paid-out preview.
	Breakdown *PayoutBreakdown `json:"breakdown,omitempty"`

	// Rebuy/add-on preview; TargetCount is applied on confirm unless
	// overridden with an absolute count.
	BaseCount   int `json:"base_count,omitempty"`
	TargetCount int `json:"target_count,omitempty"`

	// Elimination credit selection.
	SelectablePlayerIDs []int `json:"selectable_player_ids,omitempty"`
	SelectedPlayerID    *int  `json:"selected_player_id,omitempty"`
	AllowUnassigned     bool  `json:"allow_unassigned,omitempty"`
}

// ActionOverride carries the optional confirm-time overrides.
// EliminatorSet distinguishes "override to nobody" (true with a nil
// Eliminator) from "no override supplied" (false).
type ActionOverride struct {
	Count         *int
	EliminatorSet bool
	Eliminator    *int
}

// Pools holds every monetary aggregate derived from the roster.
type Pools struct {
	BuyInPool    float64 `json:"buy_in_pool"`
	FoodPool     float64 `json:"food_pool"`
	BountyPool   float64 `json:"bounty_pool"`
	RebuyPool    float64 `json:"rebuy_pool"`
	AddOnPool    float64 `json:"add_on_pool"`
	TotalPool    float64 `json:"total_pool"`
	PrizePool    float64 `json:"prize_pool"`
	TotalPaidIn  float64 `json:"total_paid_in"`
	TotalPaidOut float64 `json:"total_paid_out"`
}

// PositionPayout is one paid placement in the snapshot.
type PositionPayout struct {
	Position int     `json:"position"`
	PlayerID *int    `json:"player_id,omitempty"` // nil while unresolved
	Amount   float64 `json:"amount"`
}

// PlayerView is a player row in display order with derived fields.
type PlayerView struct {
	Player
	Placement      *int `json:"placement,omitempty"`
	Knockouts      int  `json:"knockouts"`
	PayoutEligible bool `json:"payout_eligible"`
}

// Snapshot is the read-only projection handed to observers. It is
// rebuilt from scratch after every confirmed mutation.
type Snapshot struct {
	Players         []PlayerView     `json:"players"`
	Pools           Pools            `json:"pools"`
	Payouts         []PositionPayout `json:"payouts"`
	Pending         *PendingAction   `json:"pending,omitempty"`
	Config          TournamentConfig `json:"config"`
	Locked          bool             `json:"locked"`
	ShowResetDialog bool             `json:"show_reset_dialog"`
}

// WSMessage represents a WebSocket message.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
