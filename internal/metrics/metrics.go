// Package metrics holds the Prometheus collectors for layout persistence and
// the backup API relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes.
const (
	LoadAbsent          = "absent"
	LoadStored          = "stored"
	LoadVersionMismatch = "version_mismatch"
	LoadMalformed       = "malformed"
	LoadError           = "error"
)

var (
	// LayoutSavesTotal counts layout writes by product and result (ok|error).
	LayoutSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_layout_saves_total",
			Help: "Total number of dashboard layout save attempts",
		},
		[]string{"product", "result"},
	)

	// LayoutLoadsTotal counts layout reads by product and outcome.
	LayoutLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_layout_loads_total",
			Help: "Total number of dashboard layout loads by outcome",
		},
		[]string{"product", "outcome"},
	)

	LayoutResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_layout_resets_total",
			Help: "Total number of dashboard layout resets",
		},
		[]string{"product"},
	)

	// WidgetRejectionsTotal counts add/remove requests refused with a notice.
	WidgetRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_widget_rejections_total",
			Help: "Total number of rejected widget mutations",
		},
		[]string{"product", "reason"},
	)

	RelayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_api_relay_requests_total",
			Help: "Total number of requests relayed to the backup API",
		},
		[]string{"method", "status"},
	)

	RelayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backup_api_relay_request_duration_seconds",
			Help:    "Duration of relayed backup API requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	RelayBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_api_relay_breaker_open",
			Help: "1 when the backup API circuit breaker is open, 0 otherwise",
		},
	)
)
