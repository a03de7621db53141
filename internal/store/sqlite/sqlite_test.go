package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasedtoday/gameday/internal/model"
	"github.com/releasedtoday/gameday/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return st
}

func TestUsers_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u, err := st.Users().Create(ctx, "alice")
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	got, err := st.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.LastVoteDate)
	assert.Nil(t, got.VotedGameID)
}

func TestUsers_GetUnknownIsNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Users().Get(context.Background(), 9999)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestLedger_TryVoteOncePerDay(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u, err := st.Users().Create(ctx, "bob")
	require.NoError(t, err)

	ok, err := st.Ledger().TryVote(ctx, u.ID, 42, "2024-02-29")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Ledger().TryVote(ctx, u.ID, 43, "2024-02-29")
	require.NoError(t, err)
	assert.False(t, ok, "second vote on the same day must be rejected")

	got, err := st.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastVoteDate)
	assert.Equal(t, "2024-02-29", *got.LastVoteDate)
	require.NotNil(t, got.VotedGameID)
	assert.Equal(t, int64(42), *got.VotedGameID, "rejected vote must not overwrite the recorded game")
}

func TestLedger_NewDayAllowsVotingAgain(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u, err := st.Users().Create(ctx, "carol")
	require.NoError(t, err)

	ok, err := st.Ledger().TryVote(ctx, u.ID, 1, "2024-03-01")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Ledger().TryVote(ctx, u.ID, 2, "2024-03-02")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := st.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", *got.LastVoteDate)
	assert.Equal(t, int64(2), *got.VotedGameID)
}

func TestLedger_UnknownUserIsNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Ledger().TryVote(context.Background(), 12345, 1, "2024-03-01")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestLedger_ConcurrentVotesBySameUserYieldOneSuccess(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u, err := st.Users().Create(ctx, "dave")
	require.NoError(t, err)

	const n = 10
	var successes atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(gameID int64) {
			defer wg.Done()
			ok, err := st.Ledger().TryVote(ctx, u.ID, gameID, "2024-03-01")
			if err == nil && ok {
				successes.Add(1)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load())
}
