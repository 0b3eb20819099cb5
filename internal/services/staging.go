package services

import "github.com/hcoles/tourneybank/internal/models"

// The staging machine has two states: Idle (no pending action) and
// Staged (exactly one). StageAction computes a proposal or reports a
// no-op by returning nil; ApplyAction commits a confirmed proposal.
// Both are pure so the two-phase protocol can be replayed freely.

// StageAction computes the proposal for toggling the given action on
// the target player. The toggle direction is derived from the
// player's current state. Returns nil when the request is a defined
// no-op: eliminating the sole remaining active player, or purchasing
// with the feature's per-unit amount set to zero.
func StageAction(players []models.Player, order []int, cfg models.TournamentConfig, playerID int, kind models.ActionKind) *models.PendingAction {
	target, ok := findPlayer(players, playerID)
	if !ok {
		return nil
	}

	switch kind {
	case models.ActionOut:
		return stageOut(players, order, target)

	case models.ActionBuyIn:
		pending := &models.PendingAction{
			TargetPlayerID: target.ID,
			Kind:           kind,
			Apply:          !target.BoughtIn,
		}
		if pending.Apply {
			pending.Cost = BuyInCost(target, cfg)
		}
		return pending

	case models.ActionPaidOut:
		pending := &models.PendingAction{
			TargetPlayerID: target.ID,
			Kind:           kind,
			Apply:          !target.PaidOut,
		}
		breakdown := models.PayoutBreakdown{}
		if pending.Apply {
			knockouts := KnockoutCounts(players)
			pools := ComputePools(players, cfg)
			payouts := CalculatePayouts(cfg.PayoutWeights, pools.PrizePool, order, len(players))
			breakdown = PlayerBreakdown(target, cfg, payouts, knockouts)
		}
		pending.Breakdown = &breakdown
		return pending

	case models.ActionRebuy:
		if cfg.RebuyPerPlayer == 0 {
			return nil
		}
		return stagePurchase(target, kind, target.RebuyCount)

	case models.ActionAddon:
		if cfg.AddOnPerPlayer == 0 {
			return nil
		}
		return stagePurchase(target, kind, target.AddonCount)
	}
	return nil
}

func stageOut(players []models.Player, order []int, target models.Player) *models.PendingAction {
	apply := !target.Eliminated
	if apply {
		active := 0
		for _, p := range players {
			if !p.Eliminated {
				active++
			}
		}
		// The last man standing cannot be eliminated.
		if active <= 1 {
			return nil
		}
	}

	pending := &models.PendingAction{
		TargetPlayerID: target.ID,
		Kind:           models.ActionOut,
		Apply:          apply,
	}
	if !apply {
		return pending
	}

	for _, p := range DisplayOrder(players, order) {
		if p.ID != target.ID {
			pending.SelectablePlayerIDs = append(pending.SelectablePlayerIDs, p.ID)
		}
	}
	pending.AllowUnassigned = true

	// Preselect the existing eliminator when still offered, otherwise
	// the first real candidate.
	if target.EliminatedBy != nil && containsInt(pending.SelectablePlayerIDs, *target.EliminatedBy) {
		by := *target.EliminatedBy
		pending.SelectedPlayerID = &by
	} else if len(pending.SelectablePlayerIDs) > 0 {
		first := pending.SelectablePlayerIDs[0]
		pending.SelectedPlayerID = &first
	}
	return pending
}

func stagePurchase(target models.Player, kind models.ActionKind, base int) *models.PendingAction {
	targetCount := base + 1
	if targetCount > models.MaxPurchases {
		targetCount = models.MaxPurchases
	}
	return &models.PendingAction{
		TargetPlayerID: target.ID,
		Kind:           kind,
		Apply:          true,
		BaseCount:      base,
		TargetCount:    targetCount,
	}
}

// ApplyAction commits a staged proposal against the roster and order,
// honoring confirm-time overrides. Returns the updated roster and
// elimination order; inputs are not mutated.
func ApplyAction(players []models.Player, order []int, pending *models.PendingAction, override *models.ActionOverride) ([]models.Player, []int) {
	updated := make([]models.Player, len(players))
	copy(updated, players)

	idx := -1
	for i, p := range updated {
		if p.ID == pending.TargetPlayerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return updated, order
	}

	switch pending.Kind {
	case models.ActionOut:
		if pending.Apply {
			chosen := pending.SelectedPlayerID
			if override != nil && override.EliminatorSet {
				chosen = override.Eliminator
			}
			updated[idx].Eliminated = true
			updated[idx].EliminatedBy = copyIntPtr(chosen)
			order = RecordElimination(order, pending.TargetPlayerID)
		} else {
			updated[idx].Eliminated = false
			updated[idx].EliminatedBy = nil
			order = RecordReentry(order, pending.TargetPlayerID)
		}

	case models.ActionBuyIn:
		updated[idx].BoughtIn = pending.Apply

	case models.ActionPaidOut:
		updated[idx].PaidOut = pending.Apply

	case models.ActionRebuy:
		updated[idx].RebuyCount = resolveCount(pending, override)

	case models.ActionAddon:
		updated[idx].AddonCount = resolveCount(pending, override)
	}

	return updated, order
}

// resolveCount picks the confirmed absolute count: the override when
// supplied, otherwise the staged target, clamped to the valid range.
func resolveCount(pending *models.PendingAction, override *models.ActionOverride) int {
	count := pending.TargetCount
	if override != nil && override.Count != nil {
		count = *override.Count
	}
	if count < 0 {
		count = 0
	}
	if count > models.MaxPurchases {
		count = models.MaxPurchases
	}
	return count
}

func findPlayer(players []models.Player, id int) (models.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
