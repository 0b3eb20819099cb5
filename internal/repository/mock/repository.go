package mock

import (
	"context"

	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for
// testing. This provides a flexible way to test error paths without
// complex database manipulation.
//
// Usage:
//
//	realStore := testutil.NewTestStore(t)
//	mockStore := mock.NewRepository(realStore)
//	mockStore.SavePlayerError = errors.New("disk full")
//	svc, err := services.NewBankService(ctx, log, mockStore, cfgSvc)
type Repository struct {
	repository.FullRepository

	GetPlayerError            error
	ListPlayersError          error
	SavePlayerError           error
	SavePlayersError          error
	DeletePlayersAboveError   error
	GetEliminationOrderError  error
	SaveEliminationOrderError error
	GetSettingError           error
	SetSettingError           error
	IsInDefaultStateError     error
	ResetAllError             error
}

// NewRepository creates a mock wrapping the given repository.
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) GetPlayer(ctx context.Context, id int) (models.Player, error) {
	if m.GetPlayerError != nil {
		return models.Player{}, m.GetPlayerError
	}
	return m.FullRepository.GetPlayer(ctx, id)
}

func (m *Repository) ListPlayers(ctx context.Context, count int) ([]models.Player, error) {
	if m.ListPlayersError != nil {
		return nil, m.ListPlayersError
	}
	return m.FullRepository.ListPlayers(ctx, count)
}

func (m *Repository) SavePlayer(ctx context.Context, p models.Player) error {
	if m.SavePlayerError != nil {
		return m.SavePlayerError
	}
	return m.FullRepository.SavePlayer(ctx, p)
}

func (m *Repository) SavePlayers(ctx context.Context, players []models.Player) error {
	if m.SavePlayersError != nil {
		return m.SavePlayersError
	}
	return m.FullRepository.SavePlayers(ctx, players)
}

func (m *Repository) DeletePlayersAbove(ctx context.Context, count int) error {
	if m.DeletePlayersAboveError != nil {
		return m.DeletePlayersAboveError
	}
	return m.FullRepository.DeletePlayersAbove(ctx, count)
}

func (m *Repository) GetEliminationOrder(ctx context.Context) ([]int, error) {
	if m.GetEliminationOrderError != nil {
		return nil, m.GetEliminationOrderError
	}
	return m.FullRepository.GetEliminationOrder(ctx)
}

func (m *Repository) SaveEliminationOrder(ctx context.Context, order []int) error {
	if m.SaveEliminationOrderError != nil {
		return m.SaveEliminationOrderError
	}
	return m.FullRepository.SaveEliminationOrder(ctx, order)
}

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

func (m *Repository) IsInDefaultState(ctx context.Context, playerCount int) (bool, error) {
	if m.IsInDefaultStateError != nil {
		return false, m.IsInDefaultStateError
	}
	return m.FullRepository.IsInDefaultState(ctx, playerCount)
}

func (m *Repository) ResetAll(ctx context.Context) error {
	if m.ResetAllError != nil {
		return m.ResetAllError
	}
	return m.FullRepository.ResetAll(ctx)
}
