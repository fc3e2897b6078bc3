package algorithms

import (
	"time"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/metrics"
	"github.com/dd0wney/cluso-community/pkg/parallel"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// BetweennessOptions configures BetweennessCentrality
type BetweennessOptions struct {
	// Normalized divides scores by (n-1)(n-2), the number of ordered pairs
	// excluding the node itself.
	Normalized bool `json:"normalized"`
	// Workers bounds parallelism; 0 means runtime.NumCPU().
	Workers int `json:"workers" validate:"gte=0"`

	Metrics *metrics.Registry `json:"-" validate:"-"`
}

// DefaultBetweennessOptions returns normalized scores on all CPUs
func DefaultBetweennessOptions() BetweennessOptions {
	return BetweennessOptions{Normalized: true}
}

// minSourcesPerBlock and maxBlocks bound the fixed source partition. Block
// boundaries depend only on the node count, so the floating-point reduction
// order is the same for any worker count.
const (
	minSourcesPerBlock = 16
	maxBlocks          = 256
)

func sourceBlocks(n int) []parallel.Block {
	size := (n + maxBlocks - 1) / maxBlocks
	if size < minSourcesPerBlock {
		size = minSourcesPerBlock
	}
	return parallel.Chunks(n, size)
}

// brandesState holds the per-source scratch space for one worker block
type brandesState struct {
	stack []int
	queue []int
	preds [][]int
	sigma []float64
	dist  []int
	delta []float64
}

func newBrandesState(n int) *brandesState {
	return &brandesState{
		stack: make([]int, 0, n),
		queue: make([]int, 0, n),
		preds: make([][]int, n),
		sigma: make([]float64, n),
		dist:  make([]int, n),
		delta: make([]float64, n),
	}
}

// accumulate runs one Brandes single-source pass from s over unweighted
// shortest paths and adds the dependencies into out.
func (st *brandesState) accumulate(g *graph.Graph, s int, out []float64) {
	for i := range st.dist {
		st.preds[i] = st.preds[i][:0]
		st.sigma[i] = 0
		st.dist[i] = -1
		st.delta[i] = 0
	}
	st.stack = st.stack[:0]
	st.queue = append(st.queue[:0], s)
	st.sigma[s] = 1
	st.dist[s] = 0

	for head := 0; head < len(st.queue); head++ {
		v := st.queue[head]
		st.stack = append(st.stack, v)
		for _, nb := range g.Adjacency(v) {
			w := nb.Index
			if st.dist[w] < 0 {
				st.dist[w] = st.dist[v] + 1
				st.queue = append(st.queue, w)
			}
			if st.dist[w] == st.dist[v]+1 {
				st.sigma[w] += st.sigma[v]
				st.preds[w] = append(st.preds[w], v)
			}
		}
	}

	// Back-propagation in non-increasing distance order
	for i := len(st.stack) - 1; i >= 0; i-- {
		w := st.stack[i]
		for _, v := range st.preds[w] {
			st.delta[v] += (st.sigma[v] / st.sigma[w]) * (1 + st.delta[w])
		}
		if w != s {
			out[w] += st.delta[w]
		}
	}
}

// BetweennessCentrality computes shortest-path betweenness for every node with
// Brandes' algorithm. Paths are counted by hops; edge weights are ignored.
// Dependencies are summed over ordered source/target pairs, so an undirected
// path A-B-C gives B a raw score of 2 and a normalized score of 1.
func BetweennessCentrality(g *graph.Graph, opts BetweennessOptions) (map[string]float64, error) {
	scores, err := betweennessByIndex(g, opts)
	if err != nil {
		return nil, err
	}
	return byKey(g, scores), nil
}

func betweennessByIndex(g *graph.Graph, opts BetweennessOptions) ([]float64, error) {
	if err := validation.ValidateStruct(&opts); err != nil {
		return nil, err
	}
	start := time.Now()

	n := g.NodeCount()
	blocks := sourceBlocks(n)
	partials := make([][]float64, len(blocks))

	err := parallel.ForEach(blocks, opts.Workers, func(pos int, b parallel.Block) {
		out := make([]float64, n)
		st := newBrandesState(n)
		for s := b.Start; s < b.End; s++ {
			st.accumulate(g, s, out)
		}
		partials[pos] = out
	})
	if err != nil {
		return nil, err
	}

	scores := make([]float64, n)
	for _, part := range partials {
		for i, v := range part {
			scores[i] += v
		}
	}

	if opts.Normalized && n > 2 {
		norm := 1.0 / float64((n-1)*(n-2))
		for i := range scores {
			scores[i] *= norm
		}
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordAlgorithm("betweenness", time.Since(start))
	}
	return scores, nil
}

// DegreeCentrality returns the raw degree of every node. A self-loop adds 2.
func DegreeCentrality(g *graph.Graph) map[string]int {
	degree := make(map[string]int, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		degree[g.Key(i)] = g.DegreeAt(i)
	}
	return degree
}

func byKey(g *graph.Graph, scores []float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for i, v := range scores {
		out[g.Key(i)] = v
	}
	return out
}
