package services

import "github.com/hcoles/tourneybank/internal/models"

// Elimination order helpers. The order is an append-only sequence of
// distinct player ids, earliest elimination first; a player id appears
// in it iff that player is eliminated. All functions are pure and
// return fresh slices, never mutating their input.

// RecordElimination removes id from the order if present, then
// appends it. Re-toggling an already eliminated player therefore
// moves them to the most-recently-eliminated position.
func RecordElimination(order []int, id int) []int {
	out := RecordReentry(order, id)
	return append(out, id)
}

// RecordReentry removes id from the order if present.
func RecordReentry(order []int, id int) []int {
	out := make([]int, 0, len(order))
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// PlacementOf returns the player's finishing placement, derived as
// numPlayers minus the index in the order and clamped to at least 1.
// A player absent from the order has no placement yet.
func PlacementOf(order []int, numPlayers, id int) (int, bool) {
	for i, v := range order {
		if v == id {
			placement := numPlayers - i
			if placement < 1 {
				placement = 1
			}
			return placement, true
		}
	}
	return 0, false
}

// WinnerOf resolves the player who maps to placement 1. When everyone
// is eliminated the winner is the last entry of the order; when
// exactly one player is still active that player is the winner; with
// more than one active player the winner is undetermined.
func WinnerOf(order []int, numPlayers int) (int, bool) {
	if numPlayers <= 0 {
		return 0, false
	}
	if len(order) >= numPlayers {
		return order[len(order)-1], true
	}
	if numPlayers-len(order) == 1 {
		eliminated := make(map[int]bool, len(order))
		for _, v := range order {
			eliminated[v] = true
		}
		for id := 1; id <= numPlayers; id++ {
			if !eliminated[id] {
				return id, true
			}
		}
	}
	return 0, false
}

// PlayerAtPosition resolves the occupant of a finishing position.
// Position 1 follows WinnerOf; higher positions resolve from the back
// of the elimination order and are only knowable once enough
// eliminations have occurred to fix them unambiguously.
func PlayerAtPosition(order []int, numPlayers, position int) (int, bool) {
	if position == 1 {
		return WinnerOf(order, numPlayers)
	}
	if position < 1 {
		return 0, false
	}
	index := numPlayers - position
	if index < 0 || index >= len(order) {
		return 0, false
	}
	return order[index], true
}

// DisplayOrder returns the roster sorted for display: active players
// first in id order, then eliminated players most recently eliminated
// first. The same ordering populates eliminator-candidate lists so the
// two can never diverge.
func DisplayOrder(players []models.Player, order []int) []models.Player {
	sorted := make([]models.Player, 0, len(players))
	for _, p := range players {
		if !p.Eliminated {
			sorted = append(sorted, p)
		}
	}
	byID := make(map[int]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for i := len(order) - 1; i >= 0; i-- {
		if p, ok := byID[order[i]]; ok && p.Eliminated {
			sorted = append(sorted, p)
		}
	}
	// Eliminated players missing from the order should not exist, but
	// keep them visible rather than dropping seats from the grid.
	inOrder := make(map[int]bool, len(order))
	for _, id := range order {
		inOrder[id] = true
	}
	for _, p := range players {
		if p.Eliminated && !inOrder[p.ID] {
			sorted = append(sorted, p)
		}
	}
	return sorted
}
