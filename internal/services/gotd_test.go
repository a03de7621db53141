package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasedtoday/gameday/internal/model"
)

func rating(v float64) *float64 { return &v }

func TestSelectGameOfTheDay_ByVotes(t *testing.T) {
	games := []model.Game{
		{ID: 1, Votes: 0, Rating: rating(80)},
		{ID: 2, Votes: 0, Rating: rating(95)},
		{ID: 3, Votes: 2, Rating: rating(10)},
	}

	gotd, ok := SelectGameOfTheDay(games)

	require.True(t, ok)
	assert.Equal(t, int64(3), gotd.ID)
	assert.Equal(t, model.ReasonByVotes, gotd.Reason)
}

func TestSelectGameOfTheDay_ByRatingWhenNoVotes(t *testing.T) {
	games := []model.Game{
		{ID: 1, Votes: 0, Rating: rating(80)},
		{ID: 2, Votes: 0, Rating: rating(95)},
	}

	gotd, ok := SelectGameOfTheDay(games)

	require.True(t, ok)
	assert.Equal(t, int64(2), gotd.ID)
	assert.Equal(t, model.ReasonByRating, gotd.Reason)
}

func TestSelectGameOfTheDay_EmptySet(t *testing.T) {
	_, ok := SelectGameOfTheDay(nil)
	assert.False(t, ok)
}

func TestSelectGameOfTheDay_VoteTieKeepsFirstOccurrence(t *testing.T) {
	games := []model.Game{
		{ID: 1, Votes: 3},
		{ID: 2, Votes: 3},
	}

	gotd, ok := SelectGameOfTheDay(games)

	require.True(t, ok)
	assert.Equal(t, int64(1), gotd.ID)
}

func TestSelectGameOfTheDay_AbsentRatingTreatedAsZero(t *testing.T) {
	games := []model.Game{
		{ID: 1},
		{ID: 2, Rating: rating(0.5)},
	}

	gotd, ok := SelectGameOfTheDay(games)

	require.True(t, ok)
	assert.Equal(t, int64(2), gotd.ID)
	assert.Equal(t, model.ReasonByRating, gotd.Reason)
}
