package community

import (
	"sort"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// levelGraph is one snapshot in the aggregation arena. Level 0 mirrors the
// original graph; every later level has one node per community of the level
// below it.
type levelGraph struct {
	adj      [][]graph.Neighbor // sorted by index, self-loops excluded
	loops    []float64          // self-loop contribution to strength: twice the internal weight
	strength []float64
	m        float64 // total edge weight, identical on every level
}

func fromGraph(g *graph.Graph) *levelGraph {
	n := g.NodeCount()
	lg := &levelGraph{
		adj:      make([][]graph.Neighbor, n),
		loops:    make([]float64, n),
		strength: make([]float64, n),
		m:        g.TotalEdgeWeight(),
	}
	for i := 0; i < n; i++ {
		lg.adj[i] = g.Adjacency(i)
		lg.loops[i] = 2 * g.SelfLoopAt(i)
		lg.strength[i] = g.StrengthAt(i)
	}
	return lg
}

func (lg *levelGraph) size() int {
	return len(lg.adj)
}

// aggregate collapses each of the k communities in assign into a single node.
// Inter-community weights are summed; intra-community weight becomes the
// super-node's self-loop so strengths and the total weight are preserved.
func (lg *levelGraph) aggregate(assign []int, k int) *levelGraph {
	next := &levelGraph{
		adj:      make([][]graph.Neighbor, k),
		loops:    make([]float64, k),
		strength: make([]float64, k),
		m:        lg.m,
	}

	links := make([]map[int]float64, k)
	for i, c := range assign {
		next.loops[c] += lg.loops[i]
		next.strength[c] += lg.strength[i]
		for _, nb := range lg.adj[i] {
			d := assign[nb.Index]
			if d == c {
				// Seen from both endpoints, so this adds 2w in total
				next.loops[c] += nb.Weight
				continue
			}
			if links[c] == nil {
				links[c] = make(map[int]float64)
			}
			links[c][d] += nb.Weight
		}
	}

	for c, targets := range links {
		adj := make([]graph.Neighbor, 0, len(targets))
		for d, w := range targets {
			adj = append(adj, graph.Neighbor{Index: d, Weight: w})
		}
		sort.Slice(adj, func(a, b int) bool { return adj[a].Index < adj[b].Index })
		next.adj[c] = adj
	}

	return next
}

// renumber relabels assign in place with dense ids in order of first
// appearance over ascending node index, returning the community count.
// Ids in assign must lie in [0, len(assign)).
func renumber(assign []int) int {
	relabel := make([]int, len(assign))
	for i := range relabel {
		relabel[i] = -1
	}

	next := 0
	for i, c := range assign {
		invariant(c >= 0 && c < len(assign), "community id out of range")
		if relabel[c] < 0 {
			relabel[c] = next
			next++
		}
		assign[i] = relabel[c]
	}
	return next
}
