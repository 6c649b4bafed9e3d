// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_duration_seconds",
			Help: "End-to-end duration of search requests in seconds",
		},
		[]string{"index"},
	)

	EngineErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_engine_errors_total",
			Help: "Total number of engine call failures by error code",
		},
		[]string{"error_code"},
	)

	IntentExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_extractions_total",
			Help: "Total number of intent extraction runs by result",
		},
		[]string{"result"},
	)
)
