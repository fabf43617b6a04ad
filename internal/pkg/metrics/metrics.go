// Package metrics defines and registers every custom Prometheus metric of the
// movie catalog API. It is the single source of truth for metric names,
// labels and help strings.
//
// Collectors are registered with the default registry on import and exposed
// by promhttp at GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movie_catalog"

// ── HTTP metrics ─────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: registered route pattern (e.g. "/movies/:id")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests by route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// ── Catalog metrics ──────────────────────────────────────────────────────────

// MovieMutationsTotal counts successful catalog writes.
// Label:
//   - operation: "create", "update", "delete" or "import"
var MovieMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movie_mutations_total",
		Help:      "Total number of successful movie writes, by operation.",
	},
	[]string{"operation"},
)

// CatalogEventsTotal counts catalog event outcomes.
// Label:
//   - result: "published", "failed" or "dropped"
var CatalogEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_events_total",
		Help:      "Total number of catalog events, by delivery result.",
	},
	[]string{"result"},
)

// CatalogEventsQueueDepth tracks events waiting in each dispatcher shard.
// Label:
//   - worker_id: numeric worker index
var CatalogEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_events_queue_depth",
		Help:      "Current number of catalog events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Account metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login outcomes.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "failure" or "conflict"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ProfilesCreatedTotal counts newly created viewing profiles.
var ProfilesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_created_total",
		Help:      "Total number of viewing profiles created.",
	},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - route: registered route pattern
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
	[]string{"route"},
)
