package algorithms

import (
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// TriangleCountResult holds per-node triangle participation and the global
// triangle count.
type TriangleCountResult struct {
	PerNode     map[string]int `json:"per_node"`
	GlobalCount int            `json:"global_count"`
	TopNodes    []RankedNode   `json:"top_nodes"`
}

// CountTriangles counts triangles, each once per participating node, so
// GlobalCount = sum(PerNode) / 3. Self-loops never form triangles.
func CountTriangles(g *graph.Graph) *TriangleCountResult {
	perIndex := trianglesByIndex(g)

	perNode := make(map[string]int, len(perIndex))
	scores := make(map[string]float64, len(perIndex))
	total := 0
	for i, c := range perIndex {
		perNode[g.Key(i)] = c
		scores[g.Key(i)] = float64(c)
		total += c
	}

	return &TriangleCountResult{
		PerNode:     perNode,
		GlobalCount: total / 3,
		TopNodes:    TopNodes(scores, 10),
	}
}

func trianglesByIndex(g *graph.Graph) []int {
	counts := make([]int, g.NodeCount())
	for u := 0; u < g.NodeCount(); u++ {
		counts[u] = trianglesAt(g, u)
	}
	return counts
}

// trianglesAt counts connected neighbour pairs of u by merging sorted
// adjacency lists, O(Σ deg(v)) over the neighbours v of u.
func trianglesAt(g *graph.Graph, u int) int {
	adjU := g.Adjacency(u)
	count := 0
	for a, nb := range adjU {
		// Only pairs (v, w) with w after v in u's list
		rest := adjU[a+1:]
		adjV := g.Adjacency(nb.Index)
		i, j := 0, 0
		for i < len(rest) && j < len(adjV) {
			switch {
			case rest[i].Index == adjV[j].Index:
				count++
				i++
				j++
			case rest[i].Index < adjV[j].Index:
				i++
			default:
				j++
			}
		}
	}
	return count
}
