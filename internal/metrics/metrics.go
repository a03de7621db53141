// Package metrics provides Prometheus metrics for the gameday service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gameday"

// Metrics holds all Prometheus collectors for the service. A nil *Metrics is
// valid and turns every observation into a no-op, which keeps test wiring
// small.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	fanoutDuration   prometheus.Histogram
	fanoutYearErrors prometheus.Counter
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	votesCast        prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers all collectors with reg and returns the Metrics handle.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		upstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Catalog API requests by HTTP status code.",
		}, []string{"status"}),
		fanoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "fanout_duration_seconds",
			Help:      "Wall time of a full year fan-out for one date.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		fanoutYearErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "fanout_year_errors_total",
			Help:      "Per-year queries excluded from a fan-out after retry exhaustion.",
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Daily cache lookups served without an upstream fetch.",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Daily cache lookups that triggered an upstream fan-out.",
		}),
		votesCast: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "votes",
			Name:      "cast_total",
			Help:      "Successful votes recorded in the ledger.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Inbound HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Inbound HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *Metrics) ObserveUpstream(status int) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveFanout(d time.Duration) {
	if m == nil {
		return
	}
	m.fanoutDuration.Observe(d.Seconds())
}

func (m *Metrics) IncFanoutYearError() {
	if m == nil {
		return
	}
	m.fanoutYearErrors.Inc()
}

func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) IncVoteCast() {
	if m == nil {
		return
	}
	m.votesCast.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
