package graph

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dd0wney/cluso-community/pkg/validation"
)

// DuplicatePolicy controls how repeated node pairs are treated
type DuplicatePolicy string

const (
	// CollapseDuplicates keeps one edge per pair with the weight of its first occurrence
	CollapseDuplicates DuplicatePolicy = "collapse"
	// AccumulateDuplicates sums the weights of repeated pairs (multiplicity)
	AccumulateDuplicates DuplicatePolicy = "accumulate"
)

// BuildOptions configures graph construction
type BuildOptions struct {
	AllowSelfLoops bool            `json:"allow_self_loops" yaml:"allow_self_loops"`
	Duplicates     DuplicatePolicy `json:"duplicates" yaml:"duplicates" validate:"omitempty,oneof=collapse accumulate"`
}

// DefaultBuildOptions rejects self-loops and collapses duplicate pairs, which
// matches a simple unweighted interaction network.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Duplicates: CollapseDuplicates}
}

type pendingEdge struct {
	from, to string
	weight   float64
}

// Builder accumulates nodes and edges and produces an immutable Graph.
// The first rejected input is remembered and returned again by Build.
type Builder struct {
	opts  BuildOptions
	nodes map[string]struct{}
	edges []pendingEdge
	seen  int
	err   error
}

// NewBuilder creates a builder with the given options
func NewBuilder(opts BuildOptions) *Builder {
	if opts.Duplicates == "" {
		opts.Duplicates = CollapseDuplicates
	}
	return &Builder{
		opts:  opts,
		nodes: make(map[string]struct{}),
	}
}

// AddNode adds a node without edges. Adding an existing node is a no-op.
func (b *Builder) AddNode(key string) error {
	if b.err != nil {
		return b.err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return b.fail(&MalformedInputError{Position: -1, Reason: "empty node key"})
	}
	b.nodes[key] = struct{}{}
	return nil
}

// AddEdge adds an undirected edge. A zero weight is stored as 1.
func (b *Builder) AddEdge(from, to string, weight float64) error {
	if b.err != nil {
		return b.err
	}

	pos := b.seen
	b.seen++

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	switch {
	case from == "" || to == "":
		return b.fail(&MalformedInputError{Position: pos, From: from, To: to, Reason: "empty node key"})
	case math.IsNaN(weight) || math.IsInf(weight, 0):
		return b.fail(&MalformedInputError{Position: pos, From: from, To: to, Reason: fmt.Sprintf("weight %v is not finite", weight)})
	case weight < 0:
		return b.fail(&MalformedInputError{Position: pos, From: from, To: to, Reason: fmt.Sprintf("weight %v is negative", weight)})
	case from == to && !b.opts.AllowSelfLoops:
		return b.fail(&MalformedInputError{Position: pos, From: from, To: to, Reason: ErrSelfLoop.Error(), Cause: ErrSelfLoop})
	}

	if weight == 0 {
		weight = 1
	}

	b.nodes[from] = struct{}{}
	b.nodes[to] = struct{}{}
	b.edges = append(b.edges, pendingEdge{from: from, to: to, weight: weight})
	return nil
}

func (b *Builder) fail(err error) error {
	b.err = err
	return err
}

// Build produces the Graph. The builder may not be reused afterwards.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validation.ValidateStruct(&b.opts); err != nil {
		return nil, fmt.Errorf("graph build options: %w", err)
	}

	keys := make([]string, 0, len(b.nodes))
	for k := range b.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	n := len(keys)
	g := &Graph{
		keys:      keys,
		index:     index,
		adjacency: make([][]Neighbor, n),
		selfLoop:  make([]float64, n),
		strength:  make([]float64, n),
		degree:    make([]int, n),
	}

	// Merge duplicates per unordered pair; first-occurrence order is irrelevant
	// because adjacency is sorted below.
	pairs := make(map[[2]int]float64, len(b.edges))
	for _, e := range b.edges {
		i, j := index[e.from], index[e.to]
		if i > j {
			i, j = j, i
		}
		key := [2]int{i, j}
		if w, exists := pairs[key]; exists {
			if b.opts.Duplicates == AccumulateDuplicates {
				pairs[key] = w + e.weight
			}
			continue
		}
		pairs[key] = e.weight
	}

	for pair, w := range pairs {
		i, j := pair[0], pair[1]
		g.edgeCount++
		if i == j {
			g.selfLoop[i] = w
			g.selfLoops++
			g.degree[i] += 2
			continue
		}
		g.adjacency[i] = append(g.adjacency[i], Neighbor{Index: j, Weight: w})
		g.adjacency[j] = append(g.adjacency[j], Neighbor{Index: i, Weight: w})
		g.degree[i]++
		g.degree[j]++
	}

	for i := range g.adjacency {
		adj := g.adjacency[i]
		sort.Slice(adj, func(a, c int) bool { return adj[a].Index < adj[c].Index })
	}

	// Sum in index order so totals are bit-for-bit reproducible across runs
	for i := range g.adjacency {
		s := 2 * g.selfLoop[i]
		for _, nb := range g.adjacency[i] {
			s += nb.Weight
			if nb.Index > i {
				g.totalWeight += nb.Weight
			}
		}
		g.totalWeight += g.selfLoop[i]
		g.strength[i] = s
	}

	return g, nil
}

// Build constructs a Graph from an edge list
func Build(edges []Edge, opts BuildOptions) (*Graph, error) {
	b := NewBuilder(opts)
	for _, e := range edges {
		if err := b.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// FromPairs constructs an unweighted Graph from (a, b) key pairs
func FromPairs(pairs [][2]string, opts BuildOptions) (*Graph, error) {
	b := NewBuilder(opts)
	for _, p := range pairs {
		if err := b.AddEdge(p[0], p[1], 1); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
