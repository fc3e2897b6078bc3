package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "cluso_graph_nodes",
		Help: "Number of nodes in the analysed graph",
	})

	r.GraphEdges = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "cluso_graph_edges",
		Help: "Number of distinct undirected edges in the analysed graph",
	})

	r.GraphTotalWeight = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "cluso_graph_total_edge_weight",
		Help: "Sum of edge weights used as the modularity normaliser",
	})

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "cluso_graph_build_duration_seconds",
		Help:    "Time spent parsing the edge list and building the graph",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
	})
}
