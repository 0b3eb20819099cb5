package services

import (
	"context"
	"strings"
	"sync"

	"github.com/hcoles/tourneybank/internal/logger"
	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/internal/repository"
)

// Player count bounds accepted by PlayerCountChanged.
const (
	MinPlayers = 2
	MaxPlayers = 100
)

// Broadcaster pushes a fresh snapshot to connected observers.
type Broadcaster interface {
	BroadcastSnapshot(snap models.Snapshot)
}

// Intent is a user-level request dispatched to the bank controller.
// Dispatch is the only mutation entry point; observers read snapshots.
type Intent interface{ isIntent() }

type PlayerNameChanged struct {
	PlayerID int
	Name     string
}

type BuyInToggled struct{ PlayerID int }

type OutToggled struct{ PlayerID int }

type PaidOutToggled struct{ PlayerID int }

type PlayerCountChanged struct{ Count int }

type PlayerRebuyChanged struct {
	PlayerID int
	Count    int
}

type PlayerAddonChanged struct {
	PlayerID int
	Count    int
}

type ShowPlayerActionDialog struct {
	PlayerID int
	Kind     models.ActionKind
}

type ConfirmPlayerAction struct{}

type ConfirmPlayerActionWithOverride struct{ Override models.ActionOverride }

type CancelPlayerAction struct{}

type ShowResetDialog struct{}

type HideResetDialog struct{}

type ConfirmReset struct{}

type UpdateWeights struct{ Weights []int }

// ConfigChanged tells the controller the external tournament config
// was edited and must be re-read.
type ConfigChanged struct{}

func (PlayerNameChanged) isIntent()               {}
func (BuyInToggled) isIntent()                    {}
func (OutToggled) isIntent()                      {}
func (PaidOutToggled) isIntent()                  {}
func (PlayerCountChanged) isIntent()              {}
func (PlayerRebuyChanged) isIntent()              {}
func (PlayerAddonChanged) isIntent()              {}
func (ShowPlayerActionDialog) isIntent()          {}
func (ConfirmPlayerAction) isIntent()             {}
func (ConfirmPlayerActionWithOverride) isIntent() {}
func (CancelPlayerAction) isIntent()              {}
func (ShowResetDialog) isIntent()                 {}
func (HideResetDialog) isIntent()                 {}
func (ConfirmReset) isIntent()                    {}
func (UpdateWeights) isIntent()                   {}
func (ConfigChanged) isIntent()                   {}

// BankServiceRepository defines the repository methods needed by BankService
type BankServiceRepository interface {
	repository.PlayerRepository
	repository.EliminationRepository
	repository.ResetRepository
}

// BankService owns the authoritative tournament state: the roster,
// the elimination order and the staged action. All mutations flow
// through Dispatch and are serialized; everything derived (pools,
// payouts, placements) is recomputed from scratch per snapshot.
type BankService struct {
	log    logger.Logger
	repo   BankServiceRepository
	config ConfigServicer

	mu          sync.Mutex
	players     []models.Player
	order       []int
	pending     *models.PendingAction
	showReset   bool
	cfg         models.TournamentConfig
	broadcaster Broadcaster
}

// NewBankService creates a BankService and loads persisted state.
func NewBankService(ctx context.Context, log logger.Logger, repo BankServiceRepository, config ConfigServicer) (*BankService, error) {
	count, err := config.PlayerCount(ctx)
	if err != nil {
		return nil, err
	}
	players, err := repo.ListPlayers(ctx, count)
	if err != nil {
		return nil, err
	}
	order, err := repo.GetEliminationOrder(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Tournament(ctx)
	if err != nil {
		return nil, err
	}

	s := &BankService{
		log:     log,
		repo:    repo,
		config:  config,
		players: players,
		cfg:     cfg,
	}
	s.order = s.reconcileOrder(players, order)
	return s, nil
}

// reconcileOrder restores the order/flag invariant after loading
// possibly inconsistent persisted state: ids outside the roster or
// referencing active players are dropped, and eliminated players
// missing from the order are appended in id order.
func (s *BankService) reconcileOrder(players []models.Player, order []int) []int {
	eliminated := make(map[int]bool, len(players))
	for _, p := range players {
		if p.Eliminated {
			eliminated[p.ID] = true
		}
	}

	var out []int
	inOrder := make(map[int]bool)
	for _, id := range order {
		if eliminated[id] && !inOrder[id] {
			inOrder[id] = true
			out = append(out, id)
		}
	}
	for _, p := range players {
		if p.Eliminated && !inOrder[p.ID] {
			out = append(out, p.ID)
		}
	}
	return out
}

// SetBroadcaster wires the observer hub. May be nil.
func (s *BankService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// Snapshot returns the current read-only projection.
func (s *BankService) Snapshot(ctx context.Context) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildSnapshotLocked(ctx)
}

// Dispatch processes one intent to completion. Intents that resolve
// to a defined no-op (staging rejections) return nil without a state
// change; malformed requests return an error.
func (s *BankService) Dispatch(ctx context.Context, intent Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch it := intent.(type) {
	case PlayerNameChanged:
		err = s.playerNameChanged(ctx, it)
	case BuyInToggled:
		err = s.stageAction(ctx, it.PlayerID, models.ActionBuyIn)
	case OutToggled:
		err = s.stageAction(ctx, it.PlayerID, models.ActionOut)
	case PaidOutToggled:
		err = s.stageAction(ctx, it.PlayerID, models.ActionPaidOut)
	case ShowPlayerActionDialog:
		err = s.stageAction(ctx, it.PlayerID, it.Kind)
	case ConfirmPlayerAction:
		err = s.confirmAction(ctx, nil)
	case ConfirmPlayerActionWithOverride:
		override := it.Override
		err = s.confirmAction(ctx, &override)
	case CancelPlayerAction:
		s.pending = nil
	case PlayerCountChanged:
		err = s.playerCountChanged(ctx, it.Count)
	case PlayerRebuyChanged:
		err = s.purchaseChanged(ctx, it.PlayerID, it.Count, models.ActionRebuy)
	case PlayerAddonChanged:
		err = s.purchaseChanged(ctx, it.PlayerID, it.Count, models.ActionAddon)
	case ShowResetDialog:
		s.showResetDialog(ctx)
	case HideResetDialog:
		s.showReset = false
	case ConfirmReset:
		err = s.confirmReset(ctx)
	case UpdateWeights:
		err = s.updateWeights(ctx, it.Weights)
	case ConfigChanged:
		err = s.configChanged(ctx)
	default:
		return &UnknownIntentError{Intent: intent}
	}

	if err != nil {
		return err
	}
	s.notifyLocked(ctx)
	return nil
}

func (s *BankService) playerNameChanged(ctx context.Context, it PlayerNameChanged) error {
	idx := s.indexOf(it.PlayerID)
	if idx < 0 {
		return &UnknownPlayerError{PlayerID: it.PlayerID}
	}
	name := strings.TrimSpace(it.Name)
	if name == "" {
		name = models.DefaultName(it.PlayerID)
	}
	s.players[idx].Name = name
	s.persistPlayer(ctx, s.players[idx])
	return nil
}

// stageAction turns a request intent into a staged proposal. A no-op
// proposal leaves the machine Idle by policy, not by error.
func (s *BankService) stageAction(ctx context.Context, playerID int, kind models.ActionKind) error {
	if s.indexOf(playerID) < 0 {
		return &UnknownPlayerError{PlayerID: playerID}
	}
	if !kind.Valid() {
		return &UnknownIntentError{Intent: kind}
	}
	if pending := StageAction(s.players, s.order, s.cfg, playerID, kind); pending != nil {
		s.pending = pending
	} else if s.pending == nil {
		s.log.Debug("Staging rejected", "player_id", playerID, "kind", kind)
	}
	return nil
}

func (s *BankService) confirmAction(ctx context.Context, override *models.ActionOverride) error {
	if s.pending == nil {
		return ErrNoActionStaged
	}
	pending := s.pending
	s.pending = nil

	s.players, s.order = ApplyAction(s.players, s.order, pending, override)

	if idx := s.indexOf(pending.TargetPlayerID); idx >= 0 {
		s.persistPlayer(ctx, s.players[idx])
	}
	if pending.Kind == models.ActionOut {
		s.persistOrder(ctx)
	}
	s.log.Info("Action confirmed",
		"player_id", pending.TargetPlayerID, "kind", pending.Kind, "apply", pending.Apply)
	return nil
}

func (s *BankService) playerCountChanged(ctx context.Context, count int) error {
	if count < MinPlayers || count > MaxPlayers {
		return ErrInvalidPlayerCount
	}
	if count == len(s.players) {
		return nil
	}

	players := make([]models.Player, 0, count)
	for id := 1; id <= count; id++ {
		if id <= len(s.players) {
			players = append(players, s.players[id-1])
		} else {
			players = append(players, models.Player{ID: id, Name: models.DefaultName(id)})
		}
	}
	// Drop eliminator references to seats that no longer exist.
	for i := range players {
		if players[i].EliminatedBy != nil && *players[i].EliminatedBy > count {
			players[i].EliminatedBy = nil
		}
	}

	var order []int
	for _, id := range s.order {
		if id <= count {
			order = append(order, id)
		}
	}

	s.players = players
	s.order = order
	// A staged proposal may reference a dropped seat; discard it.
	s.pending = nil

	if err := s.config.SetPlayerCount(ctx, count); err != nil {
		s.log.Error("Failed to persist player count", "error", err)
	}
	if err := s.repo.DeletePlayersAbove(ctx, count); err != nil {
		s.log.Error("Failed to trim player rows", "error", err)
	}
	s.persistPlayers(ctx)
	s.persistOrder(ctx)
	s.log.Info("Player count changed", "count", count)
	return nil
}

func (s *BankService) purchaseChanged(ctx context.Context, playerID, count int, kind models.ActionKind) error {
	idx := s.indexOf(playerID)
	if idx < 0 {
		return &UnknownPlayerError{PlayerID: playerID}
	}
	// Feature disabled: no purchases to edit.
	if kind == models.ActionRebuy && s.cfg.RebuyPerPlayer == 0 {
		return nil
	}
	if kind == models.ActionAddon && s.cfg.AddOnPerPlayer == 0 {
		return nil
	}

	if count < 0 {
		count = 0
	}
	if count > models.MaxPurchases {
		count = models.MaxPurchases
	}
	if kind == models.ActionRebuy {
		s.players[idx].RebuyCount = count
	} else {
		s.players[idx].AddonCount = count
	}
	s.persistPlayer(ctx, s.players[idx])
	return nil
}

// showResetDialog opens the reset confirmation. When every player is
// still at defaults and no eliminations exist there is nothing to
// reset, so the request is ignored. A failed check opens the dialog
// anyway.
func (s *BankService) showResetDialog(ctx context.Context) {
	pristine, err := s.repo.IsInDefaultState(ctx, len(s.players))
	if err != nil {
		s.log.Warn("Failed to check default state", "error", err)
		pristine = false
	}
	if pristine {
		s.log.Debug("Reset dialog suppressed, bank already at defaults")
		return
	}
	s.showReset = true
}

func (s *BankService) confirmReset(ctx context.Context) error {
	if err := s.repo.ResetAll(ctx); err != nil {
		return err
	}
	count := len(s.players)
	players := make([]models.Player, 0, count)
	for id := 1; id <= count; id++ {
		players = append(players, models.Player{ID: id, Name: models.DefaultName(id)})
	}
	s.players = players
	s.order = nil
	s.pending = nil
	s.showReset = false
	s.log.Info("Tournament bank reset", "players", count)
	return nil
}

func (s *BankService) updateWeights(ctx context.Context, weights []int) error {
	if err := s.config.SetPayoutWeights(ctx, weights); err != nil {
		return err
	}
	return s.configChanged(ctx)
}

// configChanged re-reads the external tournament config. Disabling
// rebuys or add-ons (per-unit amount dropping to zero) wipes the
// corresponding purchase counts across the roster.
func (s *BankService) configChanged(ctx context.Context) error {
	cfg, err := s.config.Tournament(ctx)
	if err != nil {
		return err
	}

	wipeRebuys := cfg.RebuyPerPlayer == 0 && s.cfg.RebuyPerPlayer != 0
	wipeAddons := cfg.AddOnPerPlayer == 0 && s.cfg.AddOnPerPlayer != 0
	s.cfg = cfg

	if !wipeRebuys && !wipeAddons {
		return nil
	}
	for i := range s.players {
		if wipeRebuys {
			s.players[i].RebuyCount = 0
		}
		if wipeAddons {
			s.players[i].AddonCount = 0
		}
	}
	s.persistPlayers(ctx)
	s.log.Info("Purchase counts wiped on feature disable",
		"rebuys", wipeRebuys, "addons", wipeAddons)
	return nil
}

// ==================== Snapshot Assembly ====================

func (s *BankService) buildSnapshotLocked(ctx context.Context) models.Snapshot {
	knockouts := KnockoutCounts(s.players)
	pools := ComputePools(s.players, s.cfg)
	payouts := CalculatePayouts(s.cfg.PayoutWeights, pools.PrizePool, s.order, len(s.players))
	pools.TotalPaidOut = GrossPaidOut(s.players, s.cfg, payouts, knockouts)

	winner, winnerKnown := WinnerOf(s.order, len(s.players))

	views := make([]models.PlayerView, 0, len(s.players))
	for _, p := range DisplayOrder(s.players, s.order) {
		view := models.PlayerView{
			Player:         p,
			Knockouts:      knockouts[p.ID],
			PayoutEligible: payouts.Eligible[p.ID],
		}
		if placement, ok := PlacementOf(s.order, len(s.players), p.ID); ok {
			placed := placement
			view.Placement = &placed
		} else if winnerKnown && winner == p.ID {
			// The sole remaining active player shows as 1st even
			// though no placement is stored for them.
			first := 1
			view.Placement = &first
		}
		views = append(views, view)
	}

	cfg := s.cfg
	cfg.PayoutWeights = append([]int(nil), s.cfg.PayoutWeights...)

	return models.Snapshot{
		Players:         views,
		Pools:           pools,
		Payouts:         payouts.Positions,
		Pending:         s.pending,
		Config:          cfg,
		Locked:          s.config.IsLocked(ctx),
		ShowResetDialog: s.showReset,
	}
}

func (s *BankService) notifyLocked(ctx context.Context) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastSnapshot(s.buildSnapshotLocked(ctx))
}

// ==================== Persistence ====================

// Persistence is a synchronous side effect of a confirmed mutation;
// failures are logged and never fail the dispatch, since the in-memory
// snapshot stays authoritative for the session.

func (s *BankService) persistPlayer(ctx context.Context, p models.Player) {
	if err := s.repo.SavePlayer(ctx, p); err != nil {
		s.log.Error("Failed to persist player", "player_id", p.ID, "error", err)
	}
}

func (s *BankService) persistPlayers(ctx context.Context) {
	if err := s.repo.SavePlayers(ctx, s.players); err != nil {
		s.log.Error("Failed to persist players", "error", err)
	}
}

func (s *BankService) persistOrder(ctx context.Context) {
	if err := s.repo.SaveEliminationOrder(ctx, s.order); err != nil {
		s.log.Error("Failed to persist elimination order", "error", err)
	}
}

func (s *BankService) indexOf(playerID int) int {
	for i, p := range s.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
