// Package igdb implements the catalog client: credential exchange, a
// retrying request executor, the per-year release-date fan-out, and result
// normalization.
package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/releasedtoday/gameday/internal/metrics"
	"github.com/releasedtoday/gameday/internal/model"
)

// gameFields is the projection requested from the catalog for every query.
const gameFields = "fields id, name, genres.name, platforms.name, cover.url, release_dates.date, summary, rating;"

// Config carries everything needed to construct a Client. Zero values fall
// back to production defaults.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string

	// StartYear is the catalog's practical origin for the fan-out.
	StartYear int
	// ThrottleDelay is the pause between successive year queries.
	ThrottleDelay time.Duration
	// FanoutTimeout caps the total duration of one fan-out. Zero disables.
	FanoutTimeout time.Duration

	Policy  RetryPolicy
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Client talks to the IGDB catalog API.
type Client struct {
	http          *resty.Client
	tokens        *tokenSource
	clientID      string
	policy        RetryPolicy
	startYear     int
	throttle      time.Duration
	fanoutTimeout time.Duration
	metrics       *metrics.Metrics
	log           zerolog.Logger
}

// New constructs a Client from cfg.
func New(cfg Config) *Client {
	if cfg.StartYear == 0 {
		cfg.StartYear = 1980
	}
	if cfg.ThrottleDelay == 0 {
		cfg.ThrottleDelay = 500 * time.Millisecond
	}
	if cfg.Policy.MaxAttempts == 0 {
		cfg.Policy = DefaultRetryPolicy()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "text/plain").
		SetTimeout(30 * time.Second)

	return &Client{
		http:          httpClient,
		tokens:        newTokenSource(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret),
		clientID:      cfg.ClientID,
		policy:        cfg.Policy,
		startYear:     cfg.StartYear,
		throttle:      cfg.ThrottleDelay,
		fanoutTimeout: cfg.FanoutTimeout,
		metrics:       cfg.Metrics,
		log:           cfg.Logger,
	}
}

// GamesReleasedOn returns the normalized set of games whose earliest release
// matches target's month and day, across all catalog years, sorted by rating.
func (c *Client) GamesReleasedOn(ctx context.Context, target time.Time) ([]model.Game, error) {
	month, day := int(target.Month()), target.Day()
	raw, err := c.fetchYearRange(ctx, month, day, target.Year())
	if err != nil {
		return nil, err
	}
	return Normalize(raw, month, day), nil
}

// HealthPing implements health.HealthPinger: it verifies a bearer token can
// be obtained from the identity endpoint. The token source memoizes, so the
// probe only performs a real exchange when no valid token is held.
func (c *Client) HealthPing(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

// GameByID fetches the full detail record for one game. Not cached.
func (c *Client) GameByID(ctx context.Context, id int64) (*model.Game, error) {
	query := fmt.Sprintf("%s where id = %d;", gameFields, id)
	body, err := c.execute(ctx, "/games", query)
	if err != nil {
		return nil, err
	}
	var games []model.Game
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("decode game detail: %w", err)
	}
	if len(games) == 0 {
		return nil, model.ErrNotFound
	}
	return &games[0], nil
}

// fetchYearRange issues one windowed query per year in [startYear, toYear]
// with a throttle delay between requests. Per-year failures are logged and
// excluded from the aggregate; the fan-out fails only when every year failed
// or its overall deadline expired.
func (c *Client) fetchYearRange(ctx context.Context, month, day, toYear int) ([]model.Game, error) {
	if c.fanoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fanoutTimeout)
		defer cancel()
	}

	began := time.Now()
	var all []model.Game
	var lastErr error
	succeeded := 0

	for year := c.startYear; year <= toYear; year++ {
		winStart := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Unix()
		winEnd := winStart + 24*60*60
		query := fmt.Sprintf("%s where release_dates.date >= %d & release_dates.date < %d;", gameFields, winStart, winEnd)

		body, err := c.execute(ctx, "/games", query)
		switch {
		case err != nil:
			var authErr *AuthError
			if errors.As(err, &authErr) {
				// Credential exchange failure is fatal for the whole fan-out.
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: fan-out aborted: %v", ErrMaxRetries, ctx.Err())
			}
			c.metrics.IncFanoutYearError()
			c.log.Warn().Err(err).Int("year", year).Msg("year query failed, excluding from aggregate")
			lastErr = err
		default:
			var games []model.Game
			if err := json.Unmarshal(body, &games); err != nil {
				c.metrics.IncFanoutYearError()
				c.log.Warn().Err(err).Int("year", year).Msg("year query returned malformed payload, excluding")
				lastErr = err
				break
			}
			succeeded++
			all = append(all, games...)
		}

		if year < toYear {
			if err := sleepCtx(ctx, c.throttle); err != nil {
				return nil, fmt.Errorf("%w: fan-out aborted: %v", ErrMaxRetries, err)
			}
		}
	}

	c.metrics.ObserveFanout(time.Since(began))
	if succeeded == 0 && lastErr != nil {
		return nil, fmt.Errorf("all year queries failed: %w", lastErr)
	}
	return all, nil
}

// execute issues one catalog query through the retry policy: 429 sleeps the
// server-directed Retry-After, 5xx and transport failures sleep the fixed
// server-error delay, 401 invalidates the token for a fresh exchange on the
// next attempt, any other non-2xx fails immediately.
func (c *Client) execute(ctx context.Context, resource, query string) ([]byte, error) {
	sb := &statusBackoff{}
	var out []byte
	attempt := 0

	op := func() error {
		attempt++
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Client-ID", c.clientID).
			SetHeader("Authorization", "Bearer "+tok).
			SetBody(query).
			Post(resource)
		if err != nil {
			sb.next = c.policy.ServerErrorDelay
			return err
		}

		status := resp.StatusCode()
		c.metrics.ObserveUpstream(status)
		switch {
		case status == http.StatusTooManyRequests:
			sb.next = retryAfter(resp, c.policy.RateLimitDefaultDelay)
			c.log.Warn().Int("attempt", attempt).Dur("retry_after", sb.next).Msg("rate limited by upstream")
			return errRateLimited
		case status == http.StatusUnauthorized:
			c.tokens.invalidate(tok)
			sb.next = 0
			return errUnauthorized
		case status >= http.StatusInternalServerError:
			sb.next = c.policy.ServerErrorDelay
			c.log.Warn().Int("attempt", attempt).Int("status", status).Msg("upstream server error")
			return fmt.Errorf("%w: status %d", errServerError, status)
		case resp.IsError():
			return backoff.Permanent(&RequestError{Status: status, Body: resp.String()})
		}

		out = resp.Body()
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(sb, uint64(c.policy.MaxAttempts-1)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		var reqErr *RequestError
		var authErr *AuthError
		if errors.As(err, &authErr) || errors.As(err, &reqErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMaxRetries, err)
	}
	return out, nil
}

// sleepCtx is a context-aware pause; it returns early with the context error
// when ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
