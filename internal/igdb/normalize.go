package igdb

import (
	"sort"
	"time"

	"github.com/releasedtoday/gameday/internal/model"
)

// Normalize reduces raw fan-out records to canonical game records for the
// target month/day. Per game it keeps only the earliest release date, drops
// the game when that date does not fall on the target day (the per-year
// window also matches later releases of games first released elsewhere in
// the year), and sorts the survivors descending by rating, absent ratings
// counting as 0. The sort is stable so equal ratings keep input order; the
// whole transform is deterministic for a fixed input.
func Normalize(raw []model.Game, month, day int) []model.Game {
	out := make([]model.Game, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))

	for _, g := range raw {
		if len(g.ReleaseDates) == 0 {
			continue
		}
		if _, dup := seen[g.ID]; dup {
			continue
		}

		// TBD releases carry no date and decode to 0; they must not win
		// the min-reduce (0 is 1970-01-01, a false match for January 1).
		var earliest model.ReleaseDate
		for _, rd := range g.ReleaseDates {
			if rd.Date <= 0 {
				continue
			}
			if earliest.Date == 0 || rd.Date < earliest.Date {
				earliest = rd
			}
		}
		if earliest.Date == 0 {
			continue
		}
		released := time.Unix(earliest.Date, 0).UTC()
		if int(released.Month()) != month || released.Day() != day {
			continue
		}

		seen[g.ID] = struct{}{}
		g.ReleaseDates = []model.ReleaseDate{earliest}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RatingOrZero() > out[j].RatingOrZero()
	})
	return out
}
