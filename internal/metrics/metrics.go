package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LedgerMutations counts successful ledger mutations by audit action.
	LedgerMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Successful ledger mutations by action",
		},
		[]string{"action"},
	)

	// LedgerRejections counts mutations refused by the ledger, by error kind.
	LedgerRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_rejections_total",
			Help: "Ledger mutations rejected by kind (validation, not_found, conflict)",
		},
		[]string{"kind"},
	)

	// WaitlistedReservations counts reservations accepted onto the waitlist.
	WaitlistedReservations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_waitlisted_reservations_total",
			Help: "Reservations stored as waitlisted because of a conflict",
		},
	)

	// OverdueCheckouts is the number of overdue checkouts seen by the last sweep.
	OverdueCheckouts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_overdue_checkouts",
			Help: "Checkouts past their due time at the last overdue sweep",
		},
	)

	// SnapshotSaveFailures counts snapshot persistence errors.
	SnapshotSaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_snapshot_save_failures_total",
			Help: "Snapshot saves that returned an error",
		},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, LedgerMutations, LedgerRejections,
			WaitlistedReservations, OverdueCheckouts, SnapshotSaveFailures)
	})
}

// RecordRequest records duration and count for an HTTP request. route should be the
// matched route pattern (e.g. /assets/{assetId}/checkout) to keep cardinality low.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}

// IncMutation counts one successful mutation.
func IncMutation(action string) {
	LedgerMutations.WithLabelValues(action).Inc()
}

// IncRejection counts one refused mutation.
func IncRejection(kind string) {
	LedgerRejections.WithLabelValues(kind).Inc()
}

// SetOverdue publishes the latest overdue count.
func SetOverdue(n int) {
	OverdueCheckouts.Set(float64(n))
}
