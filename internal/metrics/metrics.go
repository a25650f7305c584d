// Package metrics exposes Prometheus instrumentation for the client core.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// API gateway metrics
var (
	// APIRequestsTotal tracks outgoing API requests by endpoint and outcome.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentryctl_api_requests_total",
			Help: "Total API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	// APIRequestDuration tracks API request latency in seconds.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentryctl_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)
)

// Dashboard aggregation metrics
var (
	// SnapshotReloadsTotal tracks full dashboard reloads by trigger and outcome.
	SnapshotReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentryctl_snapshot_reloads_total",
			Help: "Dashboard snapshot reloads by trigger and status",
		},
		[]string{"trigger", "status"},
	)
)

// Session lifecycle metrics
var (
	// SessionRestoresTotal tracks session restore attempts by outcome.
	SessionRestoresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentryctl_session_restores_total",
			Help: "Session restore attempts by status",
		},
		[]string{"status"},
	)
)

// Outcome label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DumpText writes every registered metric to w in the Prometheus text
// exposition format. The CLI calls this at exit when metrics output is
// requested; long-lived embedders can scrape the default registry instead.
func DumpText(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	return nil
}
