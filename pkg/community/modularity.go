package community

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Modularity scores partition p of g:
//
//	Q = Σ_c [ Σ_in(c)/|E| − γ (Σ_tot(c) / 2|E|)² ]
//
// where Σ_in(c) sums the weights of edges inside c (each once, self-loops
// included) and Σ_tot(c) sums the weighted degrees of c's members. A graph
// without edges scores 0. Resolution 1 gives the Newman–Girvan modularity.
func Modularity(g *graph.Graph, p Partition, resolution float64) (float64, error) {
	if err := checkResolution(resolution); err != nil {
		return 0, err
	}
	if err := p.Validate(g); err != nil {
		return 0, err
	}
	if g.TotalEdgeWeight() == 0 {
		return 0, nil
	}

	assign, k := p.assignment(g)
	return fromGraph(g).modularity(assign, k, resolution), nil
}

// SingletonModularity is the modularity of the partition placing each node in
// its own community: Σ_v [ loop(v)/|E| − γ (k_v / 2|E|)² ].
func SingletonModularity(g *graph.Graph, resolution float64) (float64, error) {
	return Modularity(g, Singletons(g), resolution)
}

func checkResolution(resolution float64) error {
	if math.IsNaN(resolution) || math.IsInf(resolution, 0) || resolution < 0 {
		return fmt.Errorf("%w: %v (must be finite and non-negative)", ErrInvalidResolution, resolution)
	}
	return nil
}

// totals returns Σ_in and Σ_tot per community for a dense assignment.
func (lg *levelGraph) totals(assign []int, k int) (in, tot []float64) {
	in = make([]float64, k)
	tot = make([]float64, k)
	for i, c := range assign {
		tot[c] += lg.strength[i]
		in[c] += lg.loops[i] / 2
		for _, nb := range lg.adj[i] {
			if nb.Index > i && assign[nb.Index] == c {
				in[c] += nb.Weight
			}
		}
	}
	return in, tot
}

func (lg *levelGraph) modularity(assign []int, k int, resolution float64) float64 {
	if lg.m == 0 {
		return 0
	}
	in, tot := lg.totals(assign, k)

	q := 0.0
	m2 := 2 * lg.m
	for c := 0; c < k; c++ {
		share := tot[c] / m2
		q += in[c]/lg.m - resolution*share*share
	}
	return q
}
