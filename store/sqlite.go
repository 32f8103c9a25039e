package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amjadhq/commission/identity"
	"github.com/amjadhq/commission/models"
)

// SQLite is a single-node SQL backend with the full store semantics.
// It backs two modes: the explicit sqlite backend (small deployments,
// tests) and the degraded local fallback (see Local).
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file and ensures the
// schema. Pass ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	// The pragma goes in the DSN, not the schema: PRAGMA is
	// per-connection, and only the DSN reaches every connection the
	// pool hands out. The vote cascade depends on it.
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	// Single connection sidesteps sqlite write contention; the store
	// is single-process anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Ready() bool { return true }

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) GetReactions(ctx context.Context, targetID string) (models.ReactionSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT emoji, user_id FROM reactions
		WHERE target_id = ?
		ORDER BY created_at, user_id
	`, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	set := models.ReactionSet{}
	for rows.Next() {
		var emoji, userID string
		if err := rows.Scan(&emoji, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		set[emoji] = append(set[emoji], userID)
	}
	return set, rows.Err()
}

func (s *SQLite) ToggleReaction(ctx context.Context, targetID, emoji, userID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM reactions
		WHERE target_id = ? AND emoji = ? AND user_id = ?
	`, targetID, emoji, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete reaction: %w", err)
	}

	removed, _ := res.RowsAffected()
	added := removed == 0
	if added {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reactions (target_id, emoji, user_id, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (target_id, emoji, user_id) DO NOTHING
		`, targetID, emoji, userID, time.Now().UnixMilli())
		if err != nil {
			return false, fmt.Errorf("failed to insert reaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit reaction toggle: %w", err)
	}
	return added, nil
}

func (s *SQLite) GetTakes(ctx context.Context) ([]models.Take, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, body, author_id, created_at FROM takes
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, models.MaxTakes)
	if err != nil {
		return nil, fmt.Errorf("failed to query takes: %w", err)
	}
	defer rows.Close()

	takes := []models.Take{}
	for rows.Next() {
		var t models.Take
		var createdMs int64
		if err := rows.Scan(&t.ID, &t.Text, &t.AuthorID, &createdMs); err != nil {
			return nil, fmt.Errorf("failed to scan take: %w", err)
		}
		t.CreatedAt = time.UnixMilli(createdMs)
		takes = append(takes, t)
	}
	return takes, rows.Err()
}

func (s *SQLite) AddTake(ctx context.Context, text, authorID string) (models.Take, error) {
	id, err := identity.GenerateID(12)
	if err != nil {
		return models.Take{}, err
	}

	now := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Take{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO takes (id, body, author_id, created_at)
		VALUES (?, ?, ?, ?)
	`, id, text, authorID, now.UnixMilli())
	if err != nil {
		return models.Take{}, fmt.Errorf("failed to insert take: %w", err)
	}

	// Trim to the newest MaxTakes; votes on trimmed takes cascade.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM takes WHERE id NOT IN (
			SELECT id FROM takes ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, models.MaxTakes)
	if err != nil {
		return models.Take{}, fmt.Errorf("failed to trim takes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Take{}, fmt.Errorf("failed to commit take: %w", err)
	}
	return models.Take{ID: id, Text: text, AuthorID: authorID, CreatedAt: now}, nil
}

func (s *SQLite) DeleteTake(ctx context.Context, takeID string) error {
	// Votes cascade via FK; deleting an absent take is a no-op.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM takes WHERE id = ?`, takeID); err != nil {
		return fmt.Errorf("failed to delete take: %w", err)
	}
	return nil
}

func (s *SQLite) GetVotes(ctx context.Context, takeID string) (models.VoteSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT side, user_id FROM votes
		WHERE take_id = ?
		ORDER BY created_at, user_id
	`, takeID)
	if err != nil {
		return models.VoteSet{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := models.NewVoteSet()
	for rows.Next() {
		var side, userID string
		if err := rows.Scan(&side, &userID); err != nil {
			return models.VoteSet{}, fmt.Errorf("failed to scan vote: %w", err)
		}
		switch side {
		case models.SideAgree:
			votes.Agree = append(votes.Agree, userID)
		case models.SideDisagree:
			votes.Disagree = append(votes.Disagree, userID)
		}
	}
	return votes, rows.Err()
}

func (s *SQLite) CastVote(ctx context.Context, takeID, side, userID string) error {
	// sqlite serializes writers, so the read-then-write pair below is
	// atomic per user-take pair within the transaction.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A vote must reference a live take; the handler maps this to 404.
	var one int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM takes WHERE id = ?
	`, takeID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check take: %w", err)
	}

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT side FROM votes WHERE take_id = ? AND user_id = ?
	`, takeID, userID).Scan(&existing)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (take_id, side, user_id, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (take_id, user_id) DO NOTHING
		`, takeID, side, userID, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query existing vote: %w", err)
	case existing == side:
		_, err = tx.ExecContext(ctx, `
			DELETE FROM votes WHERE take_id = ? AND user_id = ?
		`, takeID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove vote: %w", err)
		}
	default:
		_, err = tx.ExecContext(ctx, `
			DELETE FROM votes WHERE take_id = ? AND user_id = ?
		`, takeID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove vote: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (take_id, side, user_id, created_at)
			VALUES (?, ?, ?, ?)
		`, takeID, side, userID, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to switch vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (s *SQLite) SaveRanking(ctx context.Context, userID string, order []string) error {
	teams, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rankings (user_id, teams, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET teams = excluded.teams, updated_at = excluded.updated_at
	`, userID, teams, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}

func (s *SQLite) GetRanking(ctx context.Context, userID string) ([]string, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT teams FROM rankings WHERE user_id = ?
	`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}

	var order []string
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("failed to decode ranking: %w", err)
	}
	return order, nil
}

func (s *SQLite) GetAllRankings(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, teams FROM rankings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	all := make(map[string][]string)
	for rows.Next() {
		var userID string
		var raw []byte
		if err := rows.Scan(&userID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		var order []string
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, fmt.Errorf("failed to decode ranking for %s: %w", userID, err)
		}
		all[userID] = order
	}
	return all, rows.Err()
}

// Identity returns the device's persisted roster name, or ErrNotFound.
func (s *SQLite) Identity(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM device_identity WHERE id = 1`).Scan(&name)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query identity: %w", err)
	}
	return name, nil
}

// SetIdentity persists the chosen name, replacing any previous choice.
func (s *SQLite) SetIdentity(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO device_identity (id, name) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name
	`, name)
	if err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS takes (
    id TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    author_id TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_takes_created_at ON takes(created_at DESC);

CREATE TABLE IF NOT EXISTS votes (
    take_id TEXT NOT NULL REFERENCES takes(id) ON DELETE CASCADE,
    side TEXT NOT NULL CHECK (side IN ('agree', 'disagree')),
    user_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (take_id, user_id)
);

CREATE TABLE IF NOT EXISTS reactions (
    target_id TEXT NOT NULL,
    emoji TEXT NOT NULL,
    user_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (target_id, emoji, user_id)
);

CREATE INDEX IF NOT EXISTS idx_reactions_target ON reactions(target_id);

CREATE TABLE IF NOT EXISTS rankings (
    user_id TEXT PRIMARY KEY,
    teams TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS device_identity (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL
);
`
