package igdb

import (
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy is the executor's backoff policy: a bounded attempt budget and
// a per-status delay table. 429 honors the server-directed Retry-After value
// (falling back to RateLimitDefaultDelay), 5xx and transport failures use a
// fixed ServerErrorDelay, everything else fails immediately.
type RetryPolicy struct {
	MaxAttempts           int
	RateLimitDefaultDelay time.Duration
	ServerErrorDelay      time.Duration
}

// DefaultRetryPolicy returns the production policy: 5 attempts, 1 s default
// rate-limit delay, 2 s server-error delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:           5,
		RateLimitDefaultDelay: time.Second,
		ServerErrorDelay:      2 * time.Second,
	}
}

// statusBackoff adapts the per-status delay chosen by the executor for the
// last response to the backoff.BackOff interface consumed by backoff.Retry.
// There is no cross-call shared state: each executed request gets its own
// instance.
type statusBackoff struct {
	next time.Duration
}

func (b *statusBackoff) NextBackOff() time.Duration { return b.next }
func (b *statusBackoff) Reset()                     {}

// retryAfter reads the Retry-After header (whole seconds) from a 429
// response, falling back to def when absent or malformed.
func retryAfter(resp *resty.Response, def time.Duration) time.Duration {
	v := resp.Header().Get("Retry-After")
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
