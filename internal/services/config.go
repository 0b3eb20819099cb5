package services

import (
	"context"
	"encoding/json"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/hcoles/tourneybank/internal/logger"
	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/internal/repository"
	"github.com/hcoles/tourneybank/pkg/schedule"
)

// Settings keys used by the config service.
const (
	keyBuyIn         = "buy_in"
	keyFoodPerPlayer = "food_per_player"
	keyBountyPer     = "bounty_per_player"
	keyRebuyPer      = "rebuy_per_player"
	keyAddOnPer      = "add_on_per_player"
	keyPayoutWeights = "payout_weights"
	keyPlayerCount   = "player_count"
	keyBaseURL       = "base_url"
)

// Defaults for a fresh database.
const (
	defaultBuyIn       = 20.0
	defaultPlayerCount = 9
)

var defaultWeights = []int{3, 2, 1}

// ConfigService serves the persisted tournament configuration and the
// surfaced schedule lock signal.
type ConfigService struct {
	log   logger.Logger
	repo  repository.SettingsRepository
	sched schedule.Client
}

// NewConfigService creates a new ConfigService
func NewConfigService(log logger.Logger, repo repository.SettingsRepository, sched schedule.Client) *ConfigService {
	return &ConfigService{log: log, repo: repo, sched: sched}
}

// Tournament returns the current tournament configuration, applying
// defaults for keys that were never written.
func (s *ConfigService) Tournament(ctx context.Context) (models.TournamentConfig, error) {
	cfg := models.TournamentConfig{}
	var err error

	if cfg.BuyIn, err = s.amount(ctx, keyBuyIn, defaultBuyIn); err != nil {
		return cfg, err
	}
	if cfg.FoodPerPlayer, err = s.amount(ctx, keyFoodPerPlayer, 0); err != nil {
		return cfg, err
	}
	if cfg.BountyPerPlayer, err = s.amount(ctx, keyBountyPer, 0); err != nil {
		return cfg, err
	}
	if cfg.RebuyPerPlayer, err = s.amount(ctx, keyRebuyPer, 0); err != nil {
		return cfg, err
	}
	if cfg.AddOnPerPlayer, err = s.amount(ctx, keyAddOnPer, 0); err != nil {
		return cfg, err
	}
	if cfg.PayoutWeights, err = s.PayoutWeights(ctx); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UpdateAmounts persists the five monetary amounts. Negative values
// are clamped to zero.
func (s *ConfigService) UpdateAmounts(ctx context.Context, cfg models.TournamentConfig) error {
	amounts := map[string]float64{
		keyBuyIn:         cfg.BuyIn,
		keyFoodPerPlayer: cfg.FoodPerPlayer,
		keyBountyPer:     cfg.BountyPerPlayer,
		keyRebuyPer:      cfg.RebuyPerPlayer,
		keyAddOnPer:      cfg.AddOnPerPlayer,
	}
	for key, v := range amounts {
		if v < 0 {
			v = 0
		}
		if err := s.repo.SetSetting(ctx, key, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
			return err
		}
	}
	s.log.Info("Tournament amounts updated",
		"buy_in", cfg.BuyIn, "food", cfg.FoodPerPlayer, "bounty", cfg.BountyPerPlayer,
		"rebuy", cfg.RebuyPerPlayer, "add_on", cfg.AddOnPerPlayer)
	return nil
}

// PayoutWeights returns the configured payout weights.
func (s *ConfigService) PayoutWeights(ctx context.Context) ([]int, error) {
	raw, err := s.repo.GetSetting(ctx, keyPayoutWeights)
	if err == repository.ErrNotFound {
		return append([]int(nil), defaultWeights...), nil
	}
	if err != nil {
		return nil, err
	}
	var weights []int
	if err := json.Unmarshal([]byte(raw), &weights); err != nil {
		s.log.Warn("Discarding unparseable payout weights", "raw", raw, "error", err)
		return append([]int(nil), defaultWeights...), nil
	}
	return weights, nil
}

// SetPayoutWeights persists the payout weights. Weights must be
// positive; an empty list is allowed and means no position pays.
func (s *ConfigService) SetPayoutWeights(ctx context.Context, weights []int) error {
	for _, w := range weights {
		if w <= 0 {
			return ErrInvalidWeights
		}
	}
	raw, err := json.Marshal(weights)
	if err != nil {
		return err
	}
	return s.repo.SetSetting(ctx, keyPayoutWeights, string(raw))
}

// PlayerCount returns the persisted player count.
func (s *ConfigService) PlayerCount(ctx context.Context) (int, error) {
	raw, err := s.repo.GetSetting(ctx, keyPlayerCount)
	if err == repository.ErrNotFound {
		return defaultPlayerCount, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultPlayerCount, nil
	}
	return n, nil
}

// SetPlayerCount persists the player count.
func (s *ConfigService) SetPlayerCount(ctx context.Context, count int) error {
	return s.repo.SetSetting(ctx, keyPlayerCount, strconv.Itoa(count))
}

// IsLocked surfaces the blind-schedule lock signal. The engine never
// interprets it; a schedule client failure reads as unlocked.
func (s *ConfigService) IsLocked(ctx context.Context) bool {
	if s.sched == nil {
		return false
	}
	locked, err := s.sched.IsLocked(ctx)
	if err != nil {
		s.log.Warn("Schedule lock check failed", "error", err)
		return false
	}
	return locked
}

// GetBaseURL returns the advertised base URL for the table QR code.
func (s *ConfigService) GetBaseURL(ctx context.Context) (string, error) {
	url, err := s.repo.GetSetting(ctx, keyBaseURL)
	if err == repository.ErrNotFound {
		return "", nil
	}
	return url, err
}

// SetBaseURL stores the advertised base URL.
func (s *ConfigService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, keyBaseURL, url)
}

// JoinQR renders a QR code PNG pointing players at the live ledger.
func (s *ConfigService) JoinQR(ctx context.Context) ([]byte, error) {
	url, err := s.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, ErrBaseURLNotSet
	}
	return qrcode.Encode(url, qrcode.Medium, 256)
}

func (s *ConfigService) amount(ctx context.Context, key string, fallback float64) (float64, error) {
	raw, err := s.repo.GetSetting(ctx, key)
	if err == repository.ErrNotFound {
		return fallback, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return fallback, nil
	}
	return v, nil
}
