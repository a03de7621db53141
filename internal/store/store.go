package store

import (
	"context"

	"github.com/releasedtoday/gameday/internal/model"
)

// Store exposes persistence operations required by services. The only state
// this service owns in the user store is the pair of vote-ledger fields;
// registration and authentication are handled by an external system sharing
// the same table.
type Store interface {
	Users() Users
	Ledger() Ledger
}

// Users is the minimal user plumbing the service needs.
type Users interface {
	Create(ctx context.Context, username string) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
}

// Ledger enforces at most one vote per user per calendar day.
type Ledger interface {
	// TryVote atomically advances the user's lastVoteDate to today and
	// records gameID. It returns false without mutation when the user has
	// already voted today, model.ErrNotFound when the user does not exist.
	// The check-then-set must be serialized per user: two concurrent votes
	// by one user must not both observe "not yet voted today".
	TryVote(ctx context.Context, userID, gameID int64, today string) (bool, error)
}
