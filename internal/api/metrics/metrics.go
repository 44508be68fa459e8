// Package metrics defines and registers all custom Prometheus metrics of the
// FAQ console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// served by the console at GET /metrics.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "faqconsole"

// ── Navigation metrics ────────────────────────────────────────────────────────

// NavigationDecisionsTotal counts route guard decisions.
// Labels:
//   - route: the target route name (e.g. "Categories")
//   - outcome: "allow" or "redirect"
var NavigationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_decisions_total",
		Help:      "Total number of route guard decisions, by target route and outcome.",
	},
	[]string{"route", "outcome"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts completed backend requests.
// Labels:
//   - method: HTTP method
//   - status: HTTP status code (e.g. "200", "404")
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of completed requests to the FAQ backend.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures backend round trips.
// Label:
//   - method: HTTP method
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the FAQ backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ObserveUpstream records one backend round trip. Its signature matches the
// API client's response hook.
func ObserveUpstream(method, _ string, status int, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	UpstreamRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session transitions.
// Label:
//   - event: "login", "login_failed", "register", "register_failed", "logout"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session transitions, by event.",
	},
	[]string{"event"},
)

// LocaleSwitchesTotal counts applied locale changes.
// Label:
//   - locale: the new locale code
var LocaleSwitchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locale_switches_total",
		Help:      "Total number of applied locale switches, by locale.",
	},
	[]string{"locale"},
)

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportItemsTotal counts FAQs processed by bulk import.
// Label:
//   - result: "created" or "failed"
var ImportItemsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_items_total",
		Help:      "Total number of FAQs processed by bulk import, by result.",
	},
	[]string{"result"},
)

// ── HTTP server metrics ───────────────────────────────────────────────────────

var (
	httpOnce       sync.Once
	httpMiddleware echo.MiddlewareFunc
)

// HTTPMiddleware records request count, latency and sizes of the console
// server under faqconsole_http_*. The collectors are registered on first use
// and shared by every router built afterwards.
func HTTPMiddleware() echo.MiddlewareFunc {
	httpOnce.Do(func() {
		httpMiddleware = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:                 namespace,
			Subsystem:                 "http",
			DoNotUseRequestPathFor404: true,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		})
	})
	return httpMiddleware
}
