package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/gobank/internal/domain"
)

// Metrics holds all Prometheus metrics for the ledger core.
type Metrics struct {
	// Ledger operation metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec

	// Coordinator metrics
	CommitConflicts prometheus.Counter
	LockTimeouts    prometheus.Counter

	// Registration metrics
	UsersRegistered prometheus.Counter
}

// New creates and registers all Prometheus metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_operations_total",
				Help: "Total ledger operations by type and status",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_operation_errors_total",
				Help: "Total ledger operation errors by type",
			},
			[]string{"operation"},
		),
		CommitConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_commit_conflicts_total",
			Help: "Total commits that failed with a version conflict after retries",
		}),
		LockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_lock_timeouts_total",
			Help: "Total operations that timed out waiting for account locks",
		}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_users_registered_total",
			Help: "Total number of registered users",
		}),
	}
}

// ObserveOperation implements usecase.OperationMetrics.
func (m *Metrics) ObserveOperation(operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
		m.OperationErrors.WithLabelValues(operation).Inc()

		switch {
		case errors.Is(err, domain.ErrConflict):
			m.CommitConflicts.Inc()
		case errors.Is(err, domain.ErrTimeout):
			m.LockTimeouts.Inc()
		}
	}

	if operation == "register" && err == nil {
		m.UsersRegistered.Inc()
	}

	m.Operations.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
