// Package dailycache stores normalized daily game sets keyed by calendar
// date. Retention is LRU-bounded and concurrent misses for one date are
// coalesced into a single upstream fan-out.
package dailycache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/releasedtoday/gameday/internal/metrics"
	"github.com/releasedtoday/gameday/internal/model"
)

// Fetcher produces the normalized game set for a date. Implemented by the
// IGDB client.
type Fetcher interface {
	GamesReleasedOn(ctx context.Context, target time.Time) ([]model.Game, error)
}

// entry owns the games for one date. The mutex serializes vote increments
// against each other and against snapshot reads, so no update is lost and no
// snapshot observes a torn write.
type entry struct {
	mu    sync.Mutex
	games []model.Game
}

func (e *entry) snapshot() []model.Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Game, len(e.games))
	copy(out, e.games)
	return out
}

// Cache is the daily cache. One entry per distinct date, bounded by an LRU
// over date keys.
type Cache struct {
	fetcher Fetcher
	entries *lru.Cache[string, *entry]
	group   singleflight.Group
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// New creates a Cache retaining at most capacity distinct dates.
func New(fetcher Fetcher, capacity int, m *metrics.Metrics, log zerolog.Logger) (*Cache, error) {
	entries, err := lru.New[string, *entry](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{fetcher: fetcher, entries: entries, metrics: m, log: log}, nil
}

// GetOrFetch returns the game set for date (formatted model.DateLayout). On
// a miss it drives one fan-out through the fetcher and stores the result;
// concurrent callers for the same uncached date share that single fetch. The
// fetch is detached from the triggering caller's cancellation so a waiter
// with a live context is never failed by the first caller disconnecting;
// the fetcher's own fan-out timeout still bounds it. The returned slice is
// a snapshot the caller owns.
func (c *Cache) GetOrFetch(ctx context.Context, date string) ([]model.Game, error) {
	target, err := time.ParseInLocation(model.DateLayout, date, time.UTC)
	if err != nil {
		return nil, model.ErrValidation
	}

	if e, ok := c.entries.Get(date); ok {
		c.metrics.IncCacheHit()
		return e.snapshot(), nil
	}

	v, err, _ := c.group.Do(date, func() (interface{}, error) {
		// A previous flight may have landed between the Get above and
		// acquiring the flight.
		if e, ok := c.entries.Get(date); ok {
			return e, nil
		}
		c.metrics.IncCacheMiss()
		c.log.Info().Str("date", date).Msg("daily cache miss, starting fan-out")
		games, err := c.fetcher.GamesReleasedOn(context.WithoutCancel(ctx), target)
		if err != nil {
			return nil, err
		}
		e := &entry{games: games}
		c.entries.Add(date, e)
		c.log.Info().Str("date", date).Int("games", len(games)).Msg("daily cache populated")
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry).snapshot(), nil
}

// Peek returns the cached set for date without fetching. The boolean is
// false when the date has not been populated.
func (c *Cache) Peek(date string) ([]model.Game, bool) {
	e, ok := c.entries.Get(date)
	if !ok {
		return nil, false
	}
	return e.snapshot(), true
}

// IncrementVote adds one vote to gameID inside the cached set for date and
// returns the new count. model.ErrNotReady when the date is not cached,
// model.ErrNotFound when the game is not in the set.
func (c *Cache) IncrementVote(date string, gameID int64) (int, error) {
	e, ok := c.entries.Get(date)
	if !ok {
		return 0, model.ErrNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.games {
		if e.games[i].ID == gameID {
			e.games[i].Votes++
			return e.games[i].Votes, nil
		}
	}
	return 0, model.ErrNotFound
}

// Contains reports whether gameID is present in the cached set for date.
func (c *Cache) Contains(date string, gameID int64) (bool, error) {
	e, ok := c.entries.Get(date)
	if !ok {
		return false, model.ErrNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.games {
		if e.games[i].ID == gameID {
			return true, nil
		}
	}
	return false, nil
}
