package services

import (
	"context"

	"github.com/hcoles/tourneybank/internal/models"
)

// BankServicer defines the interface for the bank ledger controller
type BankServicer interface {
	Dispatch(ctx context.Context, intent Intent) error
	Snapshot(ctx context.Context) models.Snapshot
	SetBroadcaster(b Broadcaster)
}

// ConfigServicer defines the interface for tournament configuration
type ConfigServicer interface {
	Tournament(ctx context.Context) (models.TournamentConfig, error)
	UpdateAmounts(ctx context.Context, cfg models.TournamentConfig) error
	PayoutWeights(ctx context.Context) ([]int, error)
	SetPayoutWeights(ctx context.Context, weights []int) error
	PlayerCount(ctx context.Context) (int, error)
	SetPlayerCount(ctx context.Context, count int) error
	IsLocked(ctx context.Context) bool
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	JoinQR(ctx context.Context) ([]byte, error)
}

// Ensure concrete types implement interfaces
var (
	_ BankServicer   = (*BankService)(nil)
	_ ConfigServicer = (*ConfigService)(nil)
)
