// Package gamedayservice wires configuration, storage, the catalog client,
// and the HTTP surface into a runnable service.
package gamedayservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/releasedtoday/gameday/internal/api"
	"github.com/releasedtoday/gameday/internal/auth"
	"github.com/releasedtoday/gameday/internal/config"
	"github.com/releasedtoday/gameday/internal/dailycache"
	"github.com/releasedtoday/gameday/internal/health"
	"github.com/releasedtoday/gameday/internal/igdb"
	"github.com/releasedtoday/gameday/internal/logger"
	"github.com/releasedtoday/gameday/internal/metrics"
	"github.com/releasedtoday/gameday/internal/services"
	"github.com/releasedtoday/gameday/internal/store/sqlite"
)

// Run starts the gameday HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("gameday-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if err := cfg.RequireCredentials(); err != nil {
		log.Error().Err(err).Msg("Missing upstream credentials")
		return err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("http_port", cfg.HTTPPort).
		Str("igdb_base_url", cfg.IGDBBaseURL).
		Int("start_year", cfg.StartYear).
		Int("cache_capacity", cfg.CacheCapacity).
		Str("sqlite_path", cfg.SQLitePath).
		Msg("Gameday service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	st, err := sqlite.New(ctx, cfg.SQLitePath)
	if err != nil {
		log.Error().Stack().Err(err).Msg("User store unavailable")
		return err
	}

	catalog := igdb.New(igdb.Config{
		BaseURL:       cfg.IGDBBaseURL,
		TokenURL:      cfg.OAuthTokenURL,
		ClientID:      cfg.TwitchClientID,
		ClientSecret:  cfg.TwitchClientSecret,
		StartYear:     cfg.StartYear,
		ThrottleDelay: time.Duration(cfg.FanoutDelayMs) * time.Millisecond,
		FanoutTimeout: time.Duration(cfg.FanoutTimeoutSeconds) * time.Second,
		Policy: igdb.RetryPolicy{
			MaxAttempts:           cfg.MaxRetries,
			RateLimitDefaultDelay: time.Second,
			ServerErrorDelay:      2 * time.Second,
		},
		Metrics: m,
		Logger:  log,
	})

	cache, err := dailycache.New(catalog, cfg.CacheCapacity, m, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create daily cache")
		return err
	}

	svc := services.NewGameService(cache, catalog, st, m, log)

	// Component health checkers and the service aggregator.
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second
	var checkers []health.HealthChecker
	if pinger, ok := st.(health.HealthPinger); ok {
		storeChecker := health.NewPingChecker("store", pinger, log, probeTimeout)
		go storeChecker.Start(ctx, interval)
		checkers = append(checkers, storeChecker)
	}
	catalogChecker := health.NewPingChecker("catalog", catalog, log, probeTimeout)
	go catalogChecker.Start(ctx, interval)
	checkers = append(checkers, catalogChecker)
	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)

	gamesHandler := api.NewGamesHandler(svc, auth.HeaderExtractor{})
	healthHandler := api.NewHealthHandler(svcHealth.IsHealthy)
	router := api.NewRouter(gamesHandler, healthHandler, reg, log, m)

	// Pre-populate today's set so /games/daily is ready without a
	// first-caller stall. Failures are logged, not fatal: the cache fills
	// on the next lookup.
	if cfg.WarmCacheOnStart {
		go func() {
			if err := svc.WarmToday(ctx); err != nil {
				log.Error().Stack().Err(err).Msg("daily cache warm-up failed")
			}
		}()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
