package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.AlgorithmRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_algorithm_runs_total",
			Help: "Total number of node metric computations",
		},
		[]string{"algorithm"},
	)

	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_algorithm_duration_seconds",
			Help:    "Node metric computation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"algorithm"},
	)
}
