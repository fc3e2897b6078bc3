package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCommunityMetrics() {
	r.CommunityRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_community_runs_total",
			Help: "Total number of community detection runs",
		},
		[]string{"status"},
	)

	r.CommunityRunDuration = promauto.With(r.registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "cluso_community_run_duration_seconds",
		Help:    "Louvain run duration in seconds",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
	})

	r.CommunityPasses = promauto.With(r.registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "cluso_community_passes",
		Help:    "Aggregation passes performed per Louvain run",
		Buckets: []float64{1, 2, 3, 4, 5, 8, 12, 20},
	})

	r.CommunityMovesTotal = promauto.With(r.registry).NewCounter(prometheus.CounterOpts{
		Name: "cluso_community_moves_total",
		Help: "Node moves performed by local-moving phases",
	})

	r.CommunityModularity = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "cluso_community_modularity",
		Help: "Modularity of the most recent partition",
	})

	r.CommunityCount = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "cluso_community_count",
		Help: "Number of communities in the most recent partition",
	})

	r.CommunityLargestSize = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "cluso_community_largest_size",
		Help: "Member count of the largest community in the most recent partition",
	})

	r.CommunityLevelDurations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_community_level_duration_seconds",
			Help:    "Duration of one local-move plus aggregation level",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"level"},
	)
}
