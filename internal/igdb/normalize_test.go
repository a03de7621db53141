package igdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasedtoday/gameday/internal/model"
)

func unixDate(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}

func ratingPtr(v float64) *float64 { return &v }

func TestNormalize_KeepsEarliestMatchingRelease(t *testing.T) {
	raw := []model.Game{
		{
			ID:   1,
			Name: "Matching",
			ReleaseDates: []model.ReleaseDate{
				{Date: unixDate(1983, time.December, 1)},
				{Date: unixDate(1983, time.November, 21)},
			},
		},
		{
			ID:   2,
			Name: "EarliestElsewhere",
			ReleaseDates: []model.ReleaseDate{
				{Date: unixDate(1983, time.December, 1)},
				{Date: unixDate(1984, time.November, 21)},
			},
		},
	}

	out := Normalize(raw, 11, 21)

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
	require.Len(t, out[0].ReleaseDates, 1)
	assert.Equal(t, unixDate(1983, time.November, 21), out[0].ReleaseDates[0].Date)
}

func TestNormalize_SortsByRatingDescendingAbsentAsZero(t *testing.T) {
	rd := []model.ReleaseDate{{Date: unixDate(1995, time.June, 5)}}
	raw := []model.Game{
		{ID: 1, Name: "unrated", ReleaseDates: rd},
		{ID: 2, Name: "mid", Rating: ratingPtr(55), ReleaseDates: rd},
		{ID: 3, Name: "top", Rating: ratingPtr(91.5), ReleaseDates: rd},
	}

	out := Normalize(raw, 6, 5)

	require.Len(t, out, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{out[0].ID, out[1].ID, out[2].ID})
}

func TestNormalize_StableForEqualRatings(t *testing.T) {
	rd := []model.ReleaseDate{{Date: unixDate(2001, time.March, 3)}}
	raw := []model.Game{
		{ID: 10, Rating: ratingPtr(80), ReleaseDates: rd},
		{ID: 11, Rating: ratingPtr(80), ReleaseDates: rd},
		{ID: 12, Rating: ratingPtr(80), ReleaseDates: rd},
	}

	out := Normalize(raw, 3, 3)

	require.Len(t, out, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{out[0].ID, out[1].ID, out[2].ID})
}

func TestNormalize_DropsGamesWithoutReleaseDates(t *testing.T) {
	out := Normalize([]model.Game{{ID: 1, Name: "no dates"}}, 1, 1)
	assert.Empty(t, out)
}

func TestNormalize_IgnoresDatelessReleaseRecords(t *testing.T) {
	// A TBD release decodes to Date 0 (1970-01-01); it must neither match a
	// January 1 target nor win the earliest-release reduce.
	raw := []model.Game{
		{ID: 1, Name: "tbd only", ReleaseDates: []model.ReleaseDate{{Date: 0}}},
		{
			ID:   2,
			Name: "tbd plus real",
			ReleaseDates: []model.ReleaseDate{
				{Date: 0},
				{Date: unixDate(2003, time.January, 1)},
			},
		},
	}

	out := Normalize(raw, 1, 1)

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
	require.Len(t, out[0].ReleaseDates, 1)
	assert.Equal(t, unixDate(2003, time.January, 1), out[0].ReleaseDates[0].Date)
}

func TestNormalize_DeduplicatesRepeatedGames(t *testing.T) {
	rd := []model.ReleaseDate{{Date: unixDate(1999, time.September, 9)}}
	raw := []model.Game{
		{ID: 7, ReleaseDates: rd},
		{ID: 7, ReleaseDates: rd},
	}

	out := Normalize(raw, 9, 9)
	require.Len(t, out, 1)
}

func TestNormalize_Deterministic(t *testing.T) {
	rd := []model.ReleaseDate{
		{Date: unixDate(1990, time.July, 14)},
		{Date: unixDate(1991, time.January, 2)},
	}
	raw := []model.Game{
		{ID: 1, Rating: ratingPtr(70), ReleaseDates: rd},
		{ID: 2, ReleaseDates: rd},
		{ID: 3, Rating: ratingPtr(85), ReleaseDates: rd},
	}

	first := Normalize(raw, 7, 14)
	second := Normalize(raw, 7, 14)
	assert.Equal(t, first, second)
}
