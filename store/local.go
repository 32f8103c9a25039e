package store

import (
	"context"

	"github.com/amjadhq/commission/models"
)

// Local is the per-device fallback used when no remote backend is
// configured. It persists takes, rankings and the chosen identity in a
// sqlite file, while the shared social state degrades: reactions and
// votes are no-ops returning empty values. Losing reactions without a
// backend is acceptable; losing takes is not.
type Local struct {
	*SQLite
}

// OpenLocal opens the fallback store at path.
func OpenLocal(path string) (*Local, error) {
	s, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return &Local{SQLite: s}, nil
}

func (s *Local) Ready() bool { return false }

func (s *Local) GetReactions(ctx context.Context, targetID string) (models.ReactionSet, error) {
	return models.ReactionSet{}, nil
}

func (s *Local) ToggleReaction(ctx context.Context, targetID, emoji, userID string) (bool, error) {
	return false, nil
}

func (s *Local) GetVotes(ctx context.Context, takeID string) (models.VoteSet, error) {
	return models.NewVoteSet(), nil
}

func (s *Local) CastVote(ctx context.Context, takeID, side, userID string) error {
	return nil
}
