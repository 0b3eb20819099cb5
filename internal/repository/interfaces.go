package repository

import (
	"context"

	"github.com/hcoles/tourneybank/internal/models"
)

// PlayerRepository defines player state persistence. Reads fill in
// documented defaults for seats that were never written: name
// "Player {id}", false flags, zero counts, unset eliminator.
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id int) (models.Player, error)
	ListPlayers(ctx context.Context, count int) ([]models.Player, error)
	SavePlayer(ctx context.Context, p models.Player) error
	SavePlayers(ctx context.Context, players []models.Player) error
	DeletePlayersAbove(ctx context.Context, count int) error
}

// EliminationRepository persists the chronological elimination order.
// The order is stored sanitized: positive, distinct player ids.
type EliminationRepository interface {
	GetEliminationOrder(ctx context.Context) ([]int, error)
	SaveEliminationOrder(ctx context.Context, order []int) error
}

// SettingsRepository defines key-value settings persistence.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// ResetRepository backs the reset flow.
type ResetRepository interface {
	IsInDefaultState(ctx context.Context, playerCount int) (bool, error)
	ResetAll(ctx context.Context) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	PlayerRepository
	EliminationRepository
	SettingsRepository
	ResetRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
