package handlers

// PlayerNameRequest represents a request to rename a player
type PlayerNameRequest struct {
	Name string `json:"name"`
}

// PlayerCountRequest represents a request to change the player count
type PlayerCountRequest struct {
	Count int `json:"count"`
}

// PurchaseCountRequest sets an absolute rebuy or add-on count
type PurchaseCountRequest struct {
	Count int `json:"count"`
}

// StageActionRequest opens the confirm dialog for a player action
type StageActionRequest struct {
	Kind string `json:"kind"`
}

// ConfirmActionRequest carries the optional confirm-time overrides.
// AssignEliminator distinguishes an explicit eliminator choice
// (including null for "nobody") from no override at all.
type ConfirmActionRequest struct {
	Count            *int `json:"count,omitempty"`
	EliminatorID     *int `json:"eliminator_id,omitempty"`
	AssignEliminator bool `json:"assign_eliminator,omitempty"`
}

// AmountsRequest updates the five monetary amounts
type AmountsRequest struct {
	BuyIn           float64 `json:"buy_in"`
	FoodPerPlayer   float64 `json:"food_per_player"`
	BountyPerPlayer float64 `json:"bounty_per_player"`
	RebuyPerPlayer  float64 `json:"rebuy_per_player"`
	AddOnPerPlayer  float64 `json:"add_on_per_player"`
}

// WeightsRequest replaces the payout weights
type WeightsRequest struct {
	Weights []int `json:"weights"`
}
