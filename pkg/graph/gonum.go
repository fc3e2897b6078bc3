package graph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum converts g into a gonum weighted undirected graph whose node IDs are
// the dense indices of g. Graphs with self-loops are rejected because gonum's
// simple graphs cannot hold them.
func (g *Graph) ToGonum() (*simple.WeightedUndirectedGraph, error) {
	if g.selfLoops > 0 {
		return nil, fmt.Errorf("%w: gonum simple graphs cannot hold %d self-loop(s)", ErrSelfLoop, g.selfLoops)
	}

	out := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range g.keys {
		out.AddNode(simple.Node(int64(i)))
	}
	for i, adj := range g.adjacency {
		for _, nb := range adj {
			if nb.Index < i {
				continue
			}
			out.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(i)),
				T: simple.Node(int64(nb.Index)),
				W: nb.Weight,
			})
		}
	}
	return out, nil
}
