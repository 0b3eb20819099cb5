package repository

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hcoles/tourneybank/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY,
			name TEXT,
			bought_in BOOLEAN NOT NULL DEFAULT 0,
			eliminated BOOLEAN NOT NULL DEFAULT 0,
			paid_out BOOLEAN NOT NULL DEFAULT 0,
			rebuy_count INTEGER NOT NULL DEFAULT 0,
			addon_count INTEGER NOT NULL DEFAULT 0,
			eliminated_by INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS eliminations (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eliminations_player ON eliminations(player_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Player Methods ====================

// GetPlayer retrieves a player by id, applying defaults when the seat
// was never written.
func (r *Repository) GetPlayer(ctx context.Context, id int) (models.Player, error) {
	var p models.Player
	var name sql.NullString
	var eliminatedBy sql.NullInt64

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, bought_in, eliminated, paid_out, rebuy_count, addon_count, eliminated_by
		FROM players WHERE id = ?
	`, id).Scan(&p.ID, &name, &p.BoughtIn, &p.Eliminated, &p.PaidOut, &p.RebuyCount, &p.AddonCount, &eliminatedBy)
	if err == sql.ErrNoRows {
		return defaultPlayer(id), nil
	}
	if err != nil {
		return models.Player{}, err
	}

	if name.Valid && name.String != "" {
		p.Name = name.String
	} else {
		p.Name = models.DefaultName(id)
	}
	// An eliminator reference only makes sense for an eliminated player.
	if eliminatedBy.Valid && p.Eliminated && eliminatedBy.Int64 > 0 {
		by := int(eliminatedBy.Int64)
		p.EliminatedBy = &by
	}
	return p, nil
}

// ListPlayers returns the roster for seats 1..count, filling gaps
// with defaults and dropping eliminator references outside the range.
func (r *Repository) ListPlayers(ctx context.Context, count int) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, bought_in, eliminated, paid_out, rebuy_count, addon_count, eliminated_by
		FROM players WHERE id BETWEEN 1 AND ? ORDER BY id
	`, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int]models.Player, count)
	for rows.Next() {
		var p models.Player
		var name sql.NullString
		var eliminatedBy sql.NullInt64
		if err := rows.Scan(&p.ID, &name, &p.BoughtIn, &p.Eliminated, &p.PaidOut, &p.RebuyCount, &p.AddonCount, &eliminatedBy); err != nil {
			return nil, err
		}
		if name.Valid && name.String != "" {
			p.Name = name.String
		} else {
			p.Name = models.DefaultName(p.ID)
		}
		if eliminatedBy.Valid && p.Eliminated {
			by := int(eliminatedBy.Int64)
			if by >= 1 && by <= count {
				p.EliminatedBy = &by
			}
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	players := make([]models.Player, 0, count)
	for id := 1; id <= count; id++ {
		if p, ok := byID[id]; ok {
			players = append(players, p)
		} else {
			players = append(players, defaultPlayer(id))
		}
	}
	return players, nil
}

// SavePlayer upserts a full player row.
func (r *Repository) SavePlayer(ctx context.Context, p models.Player) error {
	var eliminatedBy sql.NullInt64
	if p.EliminatedBy != nil && p.Eliminated {
		eliminatedBy = sql.NullInt64{Int64: int64(*p.EliminatedBy), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (id, name, bought_in, eliminated, paid_out, rebuy_count, addon_count, eliminated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			bought_in = excluded.bought_in,
			eliminated = excluded.eliminated,
			paid_out = excluded.paid_out,
			rebuy_count = excluded.rebuy_count,
			addon_count = excluded.addon_count,
			eliminated_by = excluded.eliminated_by
	`, p.ID, p.Name, p.BoughtIn, p.Eliminated, p.PaidOut, p.RebuyCount, p.AddonCount, eliminatedBy)
	return err
}

// SavePlayers upserts a batch of player rows.
func (r *Repository) SavePlayers(ctx context.Context, players []models.Player) error {
	for _, p := range players {
		if err := r.SavePlayer(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// DeletePlayersAbove removes seats beyond the current player count.
func (r *Repository) DeletePlayersAbove(ctx context.Context, count int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id > ?`, count)
	return err
}

func defaultPlayer(id int) models.Player {
	return models.Player{ID: id, Name: models.DefaultName(id)}
}

// ==================== Elimination Order Methods ====================

// GetEliminationOrder returns the persisted elimination order,
// earliest elimination first. Non-positive or duplicate ids are
// dropped rather than surfaced as errors.
func (r *Repository) GetEliminationOrder(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT player_id FROM eliminations ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []int
	seen := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	return order, rows.Err()
}

// SaveEliminationOrder replaces the persisted order with a sanitized
// copy of the given sequence.
func (r *Repository) SaveEliminationOrder(ctx context.Context, order []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM eliminations`); err != nil {
		return err
	}

	seen := make(map[int]bool)
	for _, id := range order {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		if _, err := tx.ExecContext(ctx, `INSERT INTO eliminations (player_id) VALUES (?)`, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value by key
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting stores a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// ==================== Reset Methods ====================

// IsInDefaultState reports whether every seat within 1..playerCount
// holds only default values and the elimination order is empty.
func (r *Repository) IsInDefaultState(ctx context.Context, playerCount int) (bool, error) {
	var eliminations int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eliminations`).Scan(&eliminations); err != nil {
		return false, err
	}
	if eliminations > 0 {
		return false, nil
	}

	players, err := r.ListPlayers(ctx, playerCount)
	if err != nil {
		return false, err
	}
	for _, p := range players {
		if p != defaultPlayer(p.ID) {
			return false, nil
		}
	}
	return true, nil
}

// ResetAll restores every player field to defaults and clears the
// elimination order. Settings are left untouched.
func (r *Repository) ResetAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM eliminations`)
	return err
}
