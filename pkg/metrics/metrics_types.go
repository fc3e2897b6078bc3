package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Graph Metrics
	GraphNodes         prometheus.Gauge
	GraphEdges         prometheus.Gauge
	GraphTotalWeight   prometheus.Gauge
	GraphBuildDuration prometheus.Histogram

	// Community Detection Metrics
	CommunityRunsTotal      *prometheus.CounterVec
	CommunityRunDuration    prometheus.Histogram
	CommunityPasses         prometheus.Histogram
	CommunityMovesTotal     prometheus.Counter
	CommunityModularity     prometheus.Gauge
	CommunityCount          prometheus.Gauge
	CommunityLargestSize    prometheus.Gauge
	CommunityLevelDurations *prometheus.HistogramVec

	// Node Metric Algorithms
	AlgorithmRunsTotal *prometheus.CounterVec
	AlgorithmDuration  *prometheus.HistogramVec

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGraphMetrics()
	r.initCommunityMetrics()
	r.initAlgorithmMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
