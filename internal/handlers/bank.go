package handlers

import (
	"net/http"

	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/internal/services"
)

// dispatchAndRespond runs an intent and, on success, returns the
// fresh snapshot so the caller can render without a second round trip.
func (h *Handlers) dispatchAndRespond(w http.ResponseWriter, r *http.Request, intent services.Intent) {
	if err := h.Bank.Dispatch(r.Context(), intent); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Bank.Snapshot(r.Context()))
}

// handleGetBank returns the current ledger snapshot
func (h *Handlers) handleGetBank(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Bank.Snapshot(r.Context()))
}

// handleSetPlayerName renames a player
func (h *Handlers) handleSetPlayerName(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req PlayerNameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.PlayerNameChanged{PlayerID: id, Name: req.Name})
}

// handleToggleBuyIn stages a buy-in toggle for confirmation
func (h *Handlers) handleToggleBuyIn(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.BuyInToggled{PlayerID: id})
}

// handleToggleOut stages an elimination toggle for confirmation
func (h *Handlers) handleToggleOut(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.OutToggled{PlayerID: id})
}

// handleTogglePaidOut stages a paid-out toggle for confirmation
func (h *Handlers) handleTogglePaidOut(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.PaidOutToggled{PlayerID: id})
}

// handleStageAction opens the confirm dialog for any action kind
func (h *Handlers) handleStageAction(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req StageActionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	kind := models.ActionKind(req.Kind)
	if !kind.Valid() {
		respondError(w, BadRequest("Invalid action kind: "+req.Kind))
		return
	}
	h.dispatchAndRespond(w, r, services.ShowPlayerActionDialog{PlayerID: id, Kind: kind})
}

// handleConfirmAction confirms the staged action, with optional
// overrides in the body; an empty body is a plain confirm.
func (h *Handlers) handleConfirmAction(w http.ResponseWriter, r *http.Request) {
	var req ConfirmActionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}

	if req.Count == nil && !req.AssignEliminator {
		h.dispatchAndRespond(w, r, services.ConfirmPlayerAction{})
		return
	}
	h.dispatchAndRespond(w, r, services.ConfirmPlayerActionWithOverride{
		Override: models.ActionOverride{
			Count:         req.Count,
			EliminatorSet: req.AssignEliminator,
			Eliminator:    req.EliminatorID,
		},
	})
}

// handleCancelAction discards the staged action
func (h *Handlers) handleCancelAction(w http.ResponseWriter, r *http.Request) {
	h.dispatchAndRespond(w, r, services.CancelPlayerAction{})
}

// handleSetPlayerCount changes the number of seats
func (h *Handlers) handleSetPlayerCount(w http.ResponseWriter, r *http.Request) {
	var req PlayerCountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.PlayerCountChanged{Count: req.Count})
}

// handleSetRebuys sets a player's absolute rebuy count
func (h *Handlers) handleSetRebuys(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req PurchaseCountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.PlayerRebuyChanged{PlayerID: id, Count: req.Count})
}

// handleSetAddons sets a player's absolute add-on count
func (h *Handlers) handleSetAddons(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req PurchaseCountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.PlayerAddonChanged{PlayerID: id, Count: req.Count})
}

// handleShowResetDialog / handleHideResetDialog / handleConfirmReset
// drive the guarded reset flow.
func (h *Handlers) handleShowResetDialog(w http.ResponseWriter, r *http.Request) {
	h.dispatchAndRespond(w, r, services.ShowResetDialog{})
}

func (h *Handlers) handleHideResetDialog(w http.ResponseWriter, r *http.Request) {
	h.dispatchAndRespond(w, r, services.HideResetDialog{})
}

func (h *Handlers) handleConfirmReset(w http.ResponseWriter, r *http.Request) {
	h.dispatchAndRespond(w, r, services.ConfirmReset{})
}

// handleGetConfig returns the tournament configuration
func (h *Handlers) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := h.Config.Tournament(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	count, err := h.Config.PlayerCount(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	baseURL, _ := h.Config.GetBaseURL(ctx)
	respondOK(w, ConfigResponse{
		Config:      cfg,
		PlayerCount: count,
		Locked:      h.Config.IsLocked(ctx),
		BaseURL:     baseURL,
	})
}

// handleSetAmounts updates the monetary amounts and re-syncs the bank
func (h *Handlers) handleSetAmounts(w http.ResponseWriter, r *http.Request) {
	var req AmountsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	cfg := models.TournamentConfig{
		BuyIn:           req.BuyIn,
		FoodPerPlayer:   req.FoodPerPlayer,
		BountyPerPlayer: req.BountyPerPlayer,
		RebuyPerPlayer:  req.RebuyPerPlayer,
		AddOnPerPlayer:  req.AddOnPerPlayer,
	}
	if err := h.Config.UpdateAmounts(r.Context(), cfg); err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.ConfigChanged{})
}

// handleSetWeights replaces the payout weights
func (h *Handlers) handleSetWeights(w http.ResponseWriter, r *http.Request) {
	var req WeightsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	h.dispatchAndRespond(w, r, services.UpdateWeights{Weights: req.Weights})
}

// handleTableQR returns a QR code PNG pointing at the live ledger
func (h *Handlers) handleTableQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Config.JoinQR(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
