package algorithms

import (
	"time"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/metrics"
	"github.com/dd0wney/cluso-community/pkg/parallel"
)

// LocalTransitivity computes the local clustering coefficient of key: closed
// neighbour pairs over possible pairs. Nodes with fewer than two neighbours
// score 0.
func LocalTransitivity(g *graph.Graph, key string) (float64, error) {
	i, ok := g.Index(key)
	if !ok {
		return 0, graph.NodeNotFound(key)
	}
	return localTransitivityAt(g, i), nil
}

func localTransitivityAt(g *graph.Graph, i int) float64 {
	k := len(g.Adjacency(i))
	if k < 2 {
		return 0
	}
	possible := k * (k - 1) / 2
	return float64(trianglesAt(g, i)) / float64(possible)
}

// Transitivity computes the local clustering coefficient of every node,
// splitting nodes into blocks over the given number of workers.
func Transitivity(g *graph.Graph, workers int) (map[string]float64, error) {
	scores, err := transitivityByIndex(g, workers, nil)
	if err != nil {
		return nil, err
	}
	return byKey(g, scores), nil
}

func transitivityByIndex(g *graph.Graph, workers int, reg *metrics.Registry) ([]float64, error) {
	start := time.Now()
	scores := make([]float64, g.NodeCount())

	// Each block writes a disjoint range of scores
	err := parallel.ForEachBlock(g.NodeCount(), workers, 4, func(_ int, b parallel.Block) {
		for i := b.Start; i < b.End; i++ {
			scores[i] = localTransitivityAt(g, i)
		}
	})
	if err != nil {
		return nil, err
	}

	if reg != nil {
		reg.RecordAlgorithm("transitivity", time.Since(start))
	}
	return scores, nil
}

// AverageTransitivity is the mean local clustering coefficient over all
// nodes, 0 for an empty graph.
func AverageTransitivity(g *graph.Graph) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < g.NodeCount(); i++ {
		sum += localTransitivityAt(g, i)
	}
	return sum / float64(g.NodeCount())
}

// GlobalTransitivity is 3 × triangles / connected triples, 0 when the graph
// has no connected triple.
func GlobalTransitivity(g *graph.Graph) float64 {
	closed, triples := 0, 0
	for i := 0; i < g.NodeCount(); i++ {
		k := len(g.Adjacency(i))
		triples += k * (k - 1) / 2
		closed += trianglesAt(g, i)
	}
	if triples == 0 {
		return 0
	}
	// closed already counts every triangle three times
	return float64(closed) / float64(triples)
}
