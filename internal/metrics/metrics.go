package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kotche/notes/internal/model"
)

var (
	// Domain operations by name and outcome.
	OperationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_operations_total",
			Help: "Number of domain operations, by outcome",
		},
		[]string{"operation", "outcome"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_operation_duration_seconds",
			Help:    "Duration of domain operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Domain events consumed by the notifier, by event type.
	EventsConsumedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_events_consumed_total",
			Help: "Number of domain events consumed by the notifier",
		},
		[]string{"type"},
	)
)

func Init(reg prometheus.Registerer) {
	reg.MustRegister(OperationsCounter)
	reg.MustRegister(OperationDuration)
	reg.MustRegister(EventsConsumedCounter)
}

// Observe records one finished operation.
func Observe(operation string, start time.Time, err error) {
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	OperationsCounter.WithLabelValues(operation, Outcome(err)).Inc()
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	case errors.Is(err, model.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}

func EventConsumed(eventType string) {
	EventsConsumedCounter.WithLabelValues(eventType).Inc()
}
