package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket (live snapshots)
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Ledger snapshot
	r.Get("/api/bank", h.handleGetBank)

	// Player intents
	r.Put("/api/players/count", h.handleSetPlayerCount)
	r.Put("/api/players/{id}/name", h.handleSetPlayerName)
	r.Post("/api/players/{id}/buy-in", h.handleToggleBuyIn)
	r.Post("/api/players/{id}/out", h.handleToggleOut)
	r.Post("/api/players/{id}/paid-out", h.handleTogglePaidOut)
	r.Post("/api/players/{id}/actions", h.handleStageAction)
	r.Put("/api/players/{id}/rebuys", h.handleSetRebuys)
	r.Put("/api/players/{id}/addons", h.handleSetAddons)

	// Staged action lifecycle
	r.Post("/api/action/confirm", h.handleConfirmAction)
	r.Post("/api/action/cancel", h.handleCancelAction)

	// Reset flow
	r.Post("/api/reset-dialog/show", h.handleShowResetDialog)
	r.Post("/api/reset-dialog/hide", h.handleHideResetDialog)
	r.Post("/api/reset", h.handleConfirmReset)

	// Tournament config
	r.Get("/api/config", h.handleGetConfig)
	r.Put("/api/config/amounts", h.handleSetAmounts)
	r.Put("/api/config/weights", h.handleSetWeights)

	// Table-join QR code
	r.Get("/api/table-qr", h.handleTableQR)

	return r
}
