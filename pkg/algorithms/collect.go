package algorithms

import (
	"time"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// CollectOptions configures Collect
type CollectOptions struct {
	Workers int `json:"workers" validate:"gte=0"`
	// SkipBetweenness leaves Betweenness empty; it is the only O(VE) metric.
	SkipBetweenness bool `json:"skip_betweenness"`

	Logger  logging.Logger    `json:"-" validate:"-"`
	Metrics *metrics.Registry `json:"-" validate:"-"`
}

// NodeMetrics holds the per-node metrics of one graph
type NodeMetrics struct {
	Degree       map[string]int      `json:"degree"`
	Betweenness  map[string]float64  `json:"betweenness,omitempty"`
	Transitivity map[string]float64  `json:"transitivity"`
	Distribution *DegreeDistribution `json:"degree_distribution"`

	AverageTransitivity float64 `json:"average_transitivity"`
	GlobalTransitivity  float64 `json:"global_transitivity"`
	Triangles           int     `json:"triangles"`
	Components          int     `json:"components"`
	LargestComponent    int     `json:"largest_component"`
}

// Collect computes degree, normalized betweenness and transitivity for every
// node of g together with graph-wide summaries.
func Collect(g *graph.Graph, opts CollectOptions) (*NodeMetrics, error) {
	if err := validation.ValidateStruct(&opts); err != nil {
		return nil, err
	}
	logger := logging.OrNop(opts.Logger).With(logging.Component("metrics"))
	timer := logging.StartTimer(logger, "collect node metrics")

	start := time.Now()
	out := &NodeMetrics{
		Degree:       DegreeCentrality(g),
		Distribution: ComputeDegreeDistribution(g),
	}
	if opts.Metrics != nil {
		opts.Metrics.RecordAlgorithm("degree", time.Since(start))
	}

	if !opts.SkipBetweenness {
		scores, err := betweennessByIndex(g, BetweennessOptions{
			Normalized: true,
			Workers:    opts.Workers,
			Metrics:    opts.Metrics,
		})
		if err != nil {
			timer.EndError(err)
			return nil, err
		}
		out.Betweenness = byKey(g, scores)
	}

	local, err := transitivityByIndex(g, opts.Workers, opts.Metrics)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	out.Transitivity = byKey(g, local)
	if n := len(local); n > 0 {
		sum := 0.0
		for _, v := range local {
			sum += v
		}
		out.AverageTransitivity = sum / float64(n)
	}
	out.GlobalTransitivity = GlobalTransitivity(g)
	out.Triangles = CountTriangles(g).GlobalCount

	components := ConnectedComponents(g)
	out.Components = len(components.Components)
	if largest := components.Largest(); largest != nil {
		out.LargestComponent = largest.Size
	}

	timer.End(logging.Nodes(g.NodeCount()), logging.Int("components", out.Components))
	return out, nil
}
