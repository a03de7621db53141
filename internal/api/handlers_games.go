package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/releasedtoday/gameday/internal/api/respond"
	"github.com/releasedtoday/gameday/internal/auth"
	"github.com/releasedtoday/gameday/internal/igdb"
	"github.com/releasedtoday/gameday/internal/model"
	"github.com/releasedtoday/gameday/internal/services"
)

// GamesHandler exposes the daily-games surface.
type GamesHandler struct {
	svc   *services.GameService
	users auth.UserExtractor
}

func NewGamesHandler(svc *services.GameService, users auth.UserExtractor) *GamesHandler {
	return &GamesHandler{svc: svc, users: users}
}

// ListGames handles GET /games?date=YYYY-MM-DD (default today).
func (h *GamesHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	games, err := h.svc.GamesForDate(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, games)
}

// DailyGames handles GET /games/daily: today's cached set, 503 until the
// warm-up has populated it.
func (h *GamesHandler) DailyGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.DailyGames()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, games)
}

// GameOfTheDay handles GET /games/gotd.
func (h *GamesHandler) GameOfTheDay(w http.ResponseWriter, r *http.Request) {
	gotd, err := h.svc.GameOfTheDay()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, gotd)
}

// GetGame handles GET /games/{id}: full detail record, uncached.
func (h *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	game, err := h.svc.GameDetails(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, game)
}

// Vote handles POST /games/{id}/vote.
func (h *GamesHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, err := h.users.UserID(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	gameID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || gameID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	votes, err := h.svc.Vote(r.Context(), userID, gameID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "vote recorded",
		"gameId":  gameID,
		"votes":   votes,
	})
}

// writeDomainError maps service and upstream errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var reqErr *igdb.RequestError
	var authErr *igdb.AuthError
	switch {
	case errors.Is(err, model.ErrAlreadyVoted):
		respond.WriteError(w, http.StatusBadRequest, "already voted today")
	case errors.Is(err, model.ErrValidation):
		respond.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, model.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, model.ErrNotReady):
		respond.WriteError(w, http.StatusServiceUnavailable, "daily games not ready yet, try again shortly")
	case errors.Is(err, igdb.ErrMaxRetries):
		respond.WriteError(w, http.StatusBadGateway, "catalog unavailable, try again later")
	case errors.As(err, &authErr), errors.As(err, &reqErr):
		respond.WriteError(w, http.StatusBadGateway, "catalog lookup failed")
	default:
		respond.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
