package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amjadhq/commission/cliparse"
	"github.com/amjadhq/commission/models"
)

// ErrNotFound is returned by lookups for rows that do not exist.
var ErrNotFound = errors.New("not found")

// Store is the uniform persistence contract over the configured backend.
// Exactly one implementation is selected at startup and never swapped.
//
// Every operation is independently idempotent: retrying a failed call
// never double-applies an effect beyond the documented toggle semantics.
// When Ready reports false (local fallback), reactions and votes are
// no-ops returning empty values; takes and rankings still persist
// locally. That asymmetry is deliberate: takes are too precious to
// lose, reactions are not.
type Store interface {
	// Ready reports whether a remote shared backend is active.
	Ready() bool

	// GetReactions groups all reactions on a target by emoji, user
	// lists in insertion order.
	GetReactions(ctx context.Context, targetID string) (models.ReactionSet, error)

	// ToggleReaction flips the (target, emoji, user) reaction. Returns
	// true when the reaction was added, false when removed.
	ToggleReaction(ctx context.Context, targetID, emoji, userID string) (bool, error)

	// GetTakes returns up to models.MaxTakes takes, newest first.
	GetTakes(ctx context.Context) ([]models.Take, error)

	// AddTake stores a new take and returns it with ID and timestamp set.
	AddTake(ctx context.Context, text, authorID string) (models.Take, error)

	// DeleteTake removes a take and every vote referencing it. Deleting
	// an absent take is a no-op.
	DeleteTake(ctx context.Context, takeID string) error

	// GetVotes returns the tally for a take. Both sides are non-nil.
	GetVotes(ctx context.Context, takeID string) (models.VoteSet, error)

	// CastVote applies the three-way toggle for (take, user): no prior
	// vote inserts side, the same side removes it, the other side
	// switches. At most one vote per user per take exists afterwards.
	CastVote(ctx context.Context, takeID, side, userID string) error

	// SaveRanking fully replaces the user's 32-team order.
	SaveRanking(ctx context.Context, userID string, order []string) error

	// GetRanking returns the user's order, or ErrNotFound.
	GetRanking(ctx context.Context, userID string) ([]string, error)

	// GetAllRankings maps every user with a submission to their order.
	GetAllRankings(ctx context.Context) (map[string][]string, error)

	Close() error
}

// DeviceIdentity is implemented by stores that can persist the device's
// chosen roster name (the local fallback). Remote backends do not: the
// identity lives with the browser profile, not the shared store.
type DeviceIdentity interface {
	Identity(ctx context.Context) (string, error)
	SetIdentity(ctx context.Context, name string) error
}

// Open selects and initializes the backend named by the configuration.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.Backend {
	case cliparse.BackendPostgres:
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres backend: %w", err)
		}
		slog.Info("store ready", "backend", cfg.Backend)
		return s, nil
	case cliparse.BackendDynamo:
		s, err := OpenDynamo(ctx, cfg.DynamoTablePrefix)
		if err != nil {
			return nil, fmt.Errorf("open dynamo backend: %w", err)
		}
		slog.Info("store ready", "backend", cfg.Backend)
		return s, nil
	case cliparse.BackendSQLite:
		s, err := OpenSQLite(cfg.LocalDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		slog.Info("store ready", "backend", cfg.Backend, "path", cfg.LocalDBPath)
		return s, nil
	case cliparse.BackendLocal:
		s, err := OpenLocal(cfg.LocalDBPath)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		slog.Warn("no remote backend configured, running local-only; reactions and votes are disabled")
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
