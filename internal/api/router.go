package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/releasedtoday/gameday/internal/metrics"
)

// NewRouter wires all HTTP routes to handlers.
func NewRouter(games *GamesHandler, healthH *HealthHandler, gatherer prometheus.Gatherer, log zerolog.Logger, m *metrics.Metrics) *mux.Router {
	root := mux.NewRouter()
	root.Use(Recover)
	root.Use(RequestLogger(log, m))

	root.HandleFunc("/api/health", healthH.CheckHealth).Methods("GET")
	if gatherer != nil {
		root.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	root.HandleFunc("/games", games.ListGames).Methods("GET")
	root.HandleFunc("/games/daily", games.DailyGames).Methods("GET")
	root.HandleFunc("/games/gotd", games.GameOfTheDay).Methods("GET")
	root.HandleFunc("/games/{id:[0-9]+}", games.GetGame).Methods("GET")
	root.HandleFunc("/games/{id:[0-9]+}/vote", games.Vote).Methods("POST")

	return root
}
