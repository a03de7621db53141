package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/releasedtoday/gameday/internal/dailycache"
	"github.com/releasedtoday/gameday/internal/metrics"
	"github.com/releasedtoday/gameday/internal/model"
	"github.com/releasedtoday/gameday/internal/store"
)

// DetailFetcher fetches one game's full detail record from the catalog.
// Implemented by the IGDB client.
type DetailFetcher interface {
	GameByID(ctx context.Context, id int64) (*model.Game, error)
}

// GameService handles daily-game lookups, votes, and the game of the day.
type GameService struct {
	cache   *dailycache.Cache
	catalog DetailFetcher
	store   store.Store
	metrics *metrics.Metrics
	log     zerolog.Logger

	// now is injectable so tests can pin "today".
	now func() time.Time
}

func NewGameService(cache *dailycache.Cache, catalog DetailFetcher, st store.Store, m *metrics.Metrics, log zerolog.Logger) *GameService {
	return &GameService{
		cache:   cache,
		catalog: catalog,
		store:   st,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

func (s *GameService) today() string {
	return s.now().UTC().Format(model.DateLayout)
}

// GamesForDate returns the canonical game list for date (default today),
// fetching and caching it when missing.
func (s *GameService) GamesForDate(ctx context.Context, date string) ([]model.Game, error) {
	if date == "" {
		date = s.today()
	}
	return s.cache.GetOrFetch(ctx, date)
}

// DailyGames serves today's cached set. It never triggers a fetch;
// model.ErrNotReady signals that the warm-up has not completed yet.
func (s *GameService) DailyGames() ([]model.Game, error) {
	games, ok := s.cache.Peek(s.today())
	if !ok {
		return nil, model.ErrNotReady
	}
	return games, nil
}

// GameDetails fetches the full record for one game straight from the
// catalog. Not cached.
func (s *GameService) GameDetails(ctx context.Context, id int64) (*model.Game, error) {
	return s.catalog.GameByID(ctx, id)
}

// GameOfTheDay runs the selector over today's cached set.
func (s *GameService) GameOfTheDay() (*model.GameOfTheDay, error) {
	games, ok := s.cache.Peek(s.today())
	if !ok {
		return nil, model.ErrNotReady
	}
	gotd, ok := SelectGameOfTheDay(games)
	if !ok {
		return nil, model.ErrNotFound
	}
	return &gotd, nil
}

// Vote records one vote by userID for gameID on today's set and returns the
// updated vote count. The ledger check-then-set runs only after the game is
// known to be in today's set, so a stale client cannot burn a user's daily
// vote on a missing id.
func (s *GameService) Vote(ctx context.Context, userID, gameID int64) (int, error) {
	today := s.today()

	if _, err := s.cache.GetOrFetch(ctx, today); err != nil {
		return 0, err
	}
	present, err := s.cache.Contains(today, gameID)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, model.ErrNotFound
	}

	ok, err := s.store.Ledger().TryVote(ctx, userID, gameID, today)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, model.ErrAlreadyVoted
	}

	votes, err := s.cache.IncrementVote(today, gameID)
	if errors.Is(err, model.ErrNotReady) {
		// Today's entry was evicted between the presence check and the
		// increment. The ledger row is already committed, so repopulate and
		// count the vote instead of losing it.
		if _, err = s.cache.GetOrFetch(ctx, today); err == nil {
			votes, err = s.cache.IncrementVote(today, gameID)
		}
	}
	if err != nil {
		return 0, err
	}
	s.metrics.IncVoteCast()
	s.log.Info().
		Int64("user_id", userID).
		Int64("game_id", gameID).
		Str("date", today).
		Msg("vote recorded")
	return votes, nil
}

// WarmToday pre-populates today's cache entry. Run at startup so
// /games/daily is ready without a first-caller stall.
func (s *GameService) WarmToday(ctx context.Context) error {
	_, err := s.cache.GetOrFetch(ctx, s.today())
	return err
}
