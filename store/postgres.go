package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/amjadhq/commission/identity"
	"github.com/amjadhq/commission/models"
)

// Postgres is the relational backend. Uniqueness invariants live in the
// schema (one reaction per target/emoji/user, one vote per take/user)
// and take deletion cascades to votes via foreign key.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects, verifies the connection, and ensures the schema.
func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (s *Postgres) Ready() bool { return true }

func (s *Postgres) Close() error { return s.db.Close() }

func (s *Postgres) GetReactions(ctx context.Context, targetID string) (models.ReactionSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT emoji, user_id FROM reactions
		WHERE target_id = $1
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

func (s *Postgres) ToggleReaction(ctx context.Context, targetID, emoji, userID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM reactions
		WHERE target_id = $1 AND emoji = $2 AND user_id = $3
	`, targetID, emoji, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete reaction: %w", err)
	}

	removed, _ := res.RowsAffected()
	added := removed == 0
	if added {
		// ON CONFLICT covers the race where a concurrent session adds
		// the same reaction between our delete and insert; either way
		// the row exists afterwards.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reactions (target_id, emoji, user_id, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (target_id, emoji, user_id) DO NOTHING
		`, targetID, emoji, userID, time.Now())
		if err != nil {
			return false, fmt.Errorf("failed to insert reaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit reaction toggle: %w", err)
	}
	return added, nil
}

func (s *Postgres) GetTakes(ctx context.Context) ([]models.Take, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, body, author_id, created_at FROM takes
		ORDER BY created_at DESC
		LIMIT $1
	`, models.MaxTakes)
	if err != nil {
		return nil, fmt.Errorf("failed to query takes: %w", err)
	}
	defer rows.Close()

	return scanTakes(rows)
}

func (s *Postgres) AddTake(ctx context.Context, text, authorID string) (models.Take, error) {
	id, err := identity.GenerateID(12)
	if err != nil {
		return models.Take{}, err
	}

	take := models.Take{ID: id, Text: text, AuthorID: authorID, CreatedAt: time.Now()}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO takes (id, body, author_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, take.ID, take.Text, take.AuthorID, take.CreatedAt)
	if err != nil {
		return models.Take{}, fmt.Errorf("failed to insert take: %w", err)
	}
	return take, nil
}

func (s *Postgres) DeleteTake(ctx context.Context, takeID string) error {
	// Votes cascade via FK; deleting an absent take is a no-op.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM takes WHERE id = $1`, takeID); err != nil {
		return fmt.Errorf("failed to delete take: %w", err)
	}
	return nil
}

func (s *Postgres) GetVotes(ctx context.Context, takeID string) (models.VoteSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT side, user_id FROM votes
		WHERE take_id = $1
		ORDER BY created_at, user_id
	`, takeID)
	if err != nil {
		return models.VoteSet{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (s *Postgres) CastVote(ctx context.Context, takeID, side, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A vote must reference a live take; the handler maps this to 404.
	// The FK would reject the insert anyway, but as a 500, not a 404.
	var one int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM takes WHERE id = $1
	`, takeID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check take: %w", err)
	}

	// Row lock serializes same-user-same-take toggles; votes from
	// different users never contend.
	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT side FROM votes
		WHERE take_id = $1 AND user_id = $2
		FOR UPDATE
	`, takeID, userID).Scan(&existing)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (take_id, side, user_id, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (take_id, user_id) DO NOTHING
		`, takeID, side, userID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query existing vote: %w", err)
	case existing == side:
		// Same side again: toggle off.
		_, err = tx.ExecContext(ctx, `
			DELETE FROM votes WHERE take_id = $1 AND user_id = $2
		`, takeID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove vote: %w", err)
		}
	default:
		// Switch sides: replace, never update in place.
		_, err = tx.ExecContext(ctx, `
			DELETE FROM votes WHERE take_id = $1 AND user_id = $2
		`, takeID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove vote: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (take_id, side, user_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, takeID, side, userID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to switch vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (s *Postgres) SaveRanking(ctx context.Context, userID string, order []string) error {
	teams, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rankings (user_id, teams, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET teams = $2, updated_at = $3
	`, userID, teams, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}

func (s *Postgres) GetRanking(ctx context.Context, userID string) ([]string, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT teams FROM rankings WHERE user_id = $1
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

func (s *Postgres) GetAllRankings(ctx context.Context) (map[string][]string, error) {
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

func scanTakes(rows *sql.Rows) ([]models.Take, error) {
	takes := []models.Take{}
	for rows.Next() {
		var t models.Take
		if err := rows.Scan(&t.ID, &t.Text, &t.AuthorID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan take: %w", err)
		}
		takes = append(takes, t)
	}
	return takes, rows.Err()
}

func scanVotes(rows *sql.Rows) (models.VoteSet, error) {
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

const pgSchema = `
-- Takes
CREATE TABLE IF NOT EXISTS takes (
    id TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    author_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_takes_created_at ON takes(created_at DESC);

-- Votes: at most one per (take, user); removed with their take
CREATE TABLE IF NOT EXISTS votes (
    take_id TEXT NOT NULL REFERENCES takes(id) ON DELETE CASCADE,
    side TEXT NOT NULL CHECK (side IN ('agree', 'disagree')),
    user_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (take_id, user_id)
);

-- Reactions: at most one per (target, emoji, user)
CREATE TABLE IF NOT EXISTS reactions (
    target_id TEXT NOT NULL,
    emoji TEXT NOT NULL,
    user_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (target_id, emoji, user_id)
);

CREATE INDEX IF NOT EXISTS idx_reactions_target ON reactions(target_id);

-- Rankings: one row per user, full overwrite on save
CREATE TABLE IF NOT EXISTS rankings (
    user_id TEXT PRIMARY KEY,
    teams JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
