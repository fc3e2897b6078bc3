package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// GraphSummary describes the analysed network
type GraphSummary struct {
	Nodes            int     `json:"nodes"`
	Edges            int     `json:"edges"`
	TotalWeight      float64 `json:"total_weight"`
	SelfLoops        int     `json:"self_loops"`
	Components       int     `json:"components"`
	LargestComponent int     `json:"largest_component"`
}

// CommunitySummary carries the Louvain outcome
type CommunitySummary struct {
	Modularity        float64                `json:"modularity"`
	InitialModularity float64                `json:"initial_modularity"`
	Resolution        float64                `json:"resolution"`
	Count             int                    `json:"count"`
	Passes            int                    `json:"passes"`
	Converged         bool                   `json:"converged"`
	Levels            []community.LevelStats `json:"levels"`
	Communities       []*community.Community `json:"communities"`
	Partition         community.Partition    `json:"partition"`
}

// MetricsSummary carries the node metrics in ranked form
type MetricsSummary struct {
	Degree              *algorithms.DegreeDistribution `json:"degree_distribution"`
	TopByDegree         []algorithms.RankedNode        `json:"top_by_degree"`
	TopByBetweenness    []algorithms.RankedNode        `json:"top_by_betweenness,omitempty"`
	TopByTransitivity   []algorithms.RankedNode        `json:"top_by_transitivity"`
	AverageTransitivity float64                        `json:"average_transitivity"`
	GlobalTransitivity  float64                        `json:"global_transitivity"`
	Triangles           int                            `json:"triangles"`
}

// Report is the complete output of one analysis run
type Report struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Input       string            `json:"input"`
	Graph       GraphSummary      `json:"graph"`
	Community   *CommunitySummary `json:"community"`
	Metrics     *MetricsSummary   `json:"metrics,omitempty"`
}

// New assembles a report. metrics may be nil when the metrics stage was
// disabled; topN bounds every ranked list.
func New(input string, g *graph.Graph, result *community.Result, metrics *algorithms.NodeMetrics, topN int) *Report {
	r := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Input:       input,
		Graph: GraphSummary{
			Nodes:       g.NodeCount(),
			Edges:       g.EdgeCount(),
			TotalWeight: g.TotalEdgeWeight(),
			SelfLoops:   g.SelfLoopCount(),
		},
		Community: &CommunitySummary{
			Modularity:        result.Modularity,
			InitialModularity: result.InitialModularity,
			Resolution:        result.Resolution,
			Count:             len(result.Communities),
			Passes:            result.Passes,
			Converged:         result.Converged,
			Levels:            result.Levels,
			Communities:       result.TopCommunities(0),
			Partition:         result.Partition,
		},
	}

	if metrics == nil {
		components := algorithms.ConnectedComponents(g)
		r.Graph.Components = len(components.Components)
		if largest := components.Largest(); largest != nil {
			r.Graph.LargestComponent = largest.Size
		}
		return r
	}

	r.Graph.Components = metrics.Components
	r.Graph.LargestComponent = metrics.LargestComponent
	r.Metrics = &MetricsSummary{
		Degree:              metrics.Distribution,
		TopByDegree:         algorithms.TopNodesByDegree(metrics.Degree, topN),
		TopByTransitivity:   algorithms.TopNodes(metrics.Transitivity, topN),
		AverageTransitivity: metrics.AverageTransitivity,
		GlobalTransitivity:  metrics.GlobalTransitivity,
		Triangles:           metrics.Triangles,
	}
	if metrics.Betweenness != nil {
		r.Metrics.TopByBetweenness = algorithms.TopNodes(metrics.Betweenness, topN)
	}
	return r
}
