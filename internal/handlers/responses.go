package handlers

import "github.com/hcoles/tourneybank/internal/models"

// ConfigResponse is the response for the tournament config endpoint
type ConfigResponse struct {
	Config      models.TournamentConfig `json:"config"`
	PlayerCount int                     `json:"player_count"`
	Locked      bool                    `json:"locked"`
	BaseURL     string                  `json:"base_url,omitempty"`
}
