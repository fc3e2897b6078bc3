package graph

import (
	"sort"
)

// Edge is an undirected edge between two node keys. A zero Weight means
// unweighted and is stored as 1.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight,omitempty"`
}

// Neighbor is one adjacency entry: the dense index of the other endpoint and
// the edge weight.
type Neighbor struct {
	Index  int
	Weight float64
}

// Graph is an immutable undirected graph. Node keys are sorted ascending and
// addressed by dense indices 0..n-1; adjacency, degrees and totals are computed
// once when the graph is built.
type Graph struct {
	keys      []string
	index     map[string]int
	adjacency [][]Neighbor // sorted by Index, self-loops excluded
	selfLoop  []float64    // self-loop weight per node (0 if none)
	strength  []float64    // weighted degree, self-loop counted twice
	degree    []int        // incident edges, self-loop counted twice

	edgeCount   int
	selfLoops   int
	totalWeight float64
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.keys)
}

// EdgeCount returns the number of distinct undirected edges, self-loops included
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// SelfLoopCount returns the number of nodes carrying a self-loop
func (g *Graph) SelfLoopCount() int {
	return g.selfLoops
}

// TotalEdgeWeight returns the sum of all edge weights (|E| for unweighted graphs).
// Self-loops count once.
func (g *Graph) TotalEdgeWeight() float64 {
	return g.totalWeight
}

// Keys returns the node keys in ascending order. The slice is a copy.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Has reports whether key is a node of the graph
func (g *Graph) Has(key string) bool {
	_, ok := g.index[key]
	return ok
}

// Index returns the dense index of key
func (g *Graph) Index(key string) (int, bool) {
	i, ok := g.index[key]
	return i, ok
}

// Key returns the node key at dense index i
func (g *Graph) Key(i int) string {
	return g.keys[i]
}

// Adjacency returns the neighbors of node i sorted by index, self excluded.
// The returned slice must not be modified.
func (g *Graph) Adjacency(i int) []Neighbor {
	return g.adjacency[i]
}

// StrengthAt returns the weighted degree of node i
func (g *Graph) StrengthAt(i int) float64 {
	return g.strength[i]
}

// SelfLoopAt returns the self-loop weight of node i
func (g *Graph) SelfLoopAt(i int) float64 {
	return g.selfLoop[i]
}

// DegreeAt returns the degree of node i
func (g *Graph) DegreeAt(i int) int {
	return g.degree[i]
}

// Degree returns the number of edges incident to key; a self-loop counts twice.
func (g *Graph) Degree(key string) (int, error) {
	i, ok := g.index[key]
	if !ok {
		return 0, NodeNotFound(key)
	}
	return g.degree[i], nil
}

// Strength returns the weighted degree of key; a self-loop counts twice.
func (g *Graph) Strength(key string) (float64, error) {
	i, ok := g.index[key]
	if !ok {
		return 0, NodeNotFound(key)
	}
	return g.strength[i], nil
}

// Neighbors returns the keys adjacent to key in ascending order, key itself excluded.
func (g *Graph) Neighbors(key string) ([]string, error) {
	i, ok := g.index[key]
	if !ok {
		return nil, NodeNotFound(key)
	}
	out := make([]string, len(g.adjacency[i]))
	for j, nb := range g.adjacency[i] {
		out[j] = g.keys[nb.Index]
	}
	return out, nil
}

// EdgeWeight returns the weight of the edge between a and b
func (g *Graph) EdgeWeight(a, b string) (float64, bool) {
	i, ok := g.index[a]
	if !ok {
		return 0, false
	}
	j, ok := g.index[b]
	if !ok {
		return 0, false
	}
	if i == j {
		return g.selfLoop[i], g.selfLoop[i] > 0
	}
	adj := g.adjacency[i]
	pos := sort.Search(len(adj), func(k int) bool { return adj[k].Index >= j })
	if pos < len(adj) && adj[pos].Index == j {
		return adj[pos].Weight, true
	}
	return 0, false
}

// HasEdge reports whether a and b are adjacent
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.EdgeWeight(a, b)
	return ok
}

// Edges returns every edge once with From <= To, ordered by (From, To).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for i, adj := range g.adjacency {
		if g.selfLoop[i] > 0 {
			out = append(out, Edge{From: g.keys[i], To: g.keys[i], Weight: g.selfLoop[i]})
		}
		for _, nb := range adj {
			if nb.Index > i {
				out = append(out, Edge{From: g.keys[i], To: g.keys[nb.Index], Weight: nb.Weight})
			}
		}
	}
	return out
}
