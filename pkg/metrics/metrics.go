package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordGraph records the size of a freshly built graph
func (r *Registry) RecordGraph(nodes, edges int, totalWeight float64, duration time.Duration) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphTotalWeight.Set(totalWeight)
	r.GraphBuildDuration.Observe(duration.Seconds())
}

// RecordCommunityRun records a completed Louvain run
func (r *Registry) RecordCommunityRun(passes, moves, communities, largest int, modularity float64, duration time.Duration) {
	r.CommunityRunsTotal.WithLabelValues("success").Inc()
	r.CommunityRunDuration.Observe(duration.Seconds())
	r.CommunityPasses.Observe(float64(passes))
	r.CommunityMovesTotal.Add(float64(moves))
	r.CommunityModularity.Set(modularity)
	r.CommunityCount.Set(float64(communities))
	r.CommunityLargestSize.Set(float64(largest))
}

// RecordCommunityFailure records a run rejected before optimisation started
func (r *Registry) RecordCommunityFailure() {
	r.CommunityRunsTotal.WithLabelValues("error").Inc()
}

// RecordLevel records the duration of one aggregation level
func (r *Registry) RecordLevel(level int, duration time.Duration) {
	r.CommunityLevelDurations.WithLabelValues(strconv.Itoa(level)).Observe(duration.Seconds())
}

// RecordAlgorithm records a node metric computation
func (r *Registry) RecordAlgorithm(algorithm string, duration time.Duration) {
	r.AlgorithmRunsTotal.WithLabelValues(algorithm).Inc()
	r.AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// WriteTextfile writes all metrics in the Prometheus text format to path, for
// pickup by node_exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
