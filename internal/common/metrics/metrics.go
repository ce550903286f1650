// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PushDispatchTotal counts dispatch outcomes by result status
	// (delivered, skipped, failed).
	PushDispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_dispatch_total",
			Help: "Push dispatch attempts by outcome",
		},
		[]string{"status"},
	)

	// EventsConsumedTotal counts store-write events received per channel.
	EventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Store-write events consumed by type",
		},
		[]string{"type"},
	)

	// SuggestionRequestsTotal counts suggestion broker outcomes
	// (answered, fallback, generic).
	SuggestionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_requests_total",
			Help: "Suggestion broker requests by outcome",
		},
		[]string{"outcome"},
	)
)
