package community

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// Options configures DetectCommunities
type Options struct {
	// Resolution γ weights the null-model term; 1 is classical modularity.
	Resolution float64 `json:"resolution" validate:"gte=0"`
	// Tolerance is the smallest modularity gain accepted for a node move and
	// for continuing to the next aggregation level.
	Tolerance float64 `json:"tolerance" validate:"gte=0"`
	// MaxPasses caps aggregation levels; 0 means unbounded.
	MaxPasses int `json:"max_passes" validate:"gte=0"`
	// MaxSweeps caps full node sweeps per local-moving phase; 0 means unbounded.
	MaxSweeps int `json:"max_sweeps" validate:"gte=0"`

	Logger  logging.Logger    `json:"-" validate:"-"`
	Metrics *metrics.Registry `json:"-" validate:"-"`
}

// DefaultOptions returns resolution 1, tolerance 1e-9 and no pass limits
func DefaultOptions() Options {
	return Options{
		Resolution: 1.0,
		Tolerance:  1e-9,
	}
}

func (o *Options) validate() error {
	if err := validation.ValidateStruct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if math.IsInf(o.Resolution, 0) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("%w: resolution and tolerance must be finite", ErrInvalidOptions)
	}
	return nil
}

// DetectCommunities partitions g with the Louvain method: repeated
// local-moving and aggregation levels until no level improves modularity by
// more than opts.Tolerance. Nodes are visited in ascending key order and ties
// go to the lowest community id, so identical input gives identical output.
//
// The only error is invalid options. An empty graph yields an empty
// partition with modularity 0.
func DetectCommunities(g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		if opts.Metrics != nil {
			opts.Metrics.RecordCommunityFailure()
		}
		return nil, err
	}

	logger := logging.OrNop(opts.Logger).With(logging.Component("louvain"))
	start := time.Now()

	result := &Result{
		Partition:  make(Partition, g.NodeCount()),
		Resolution: opts.Resolution,
	}
	if g.NodeCount() == 0 {
		result.Converged = true
		logger.Warn("empty graph, nothing to partition")
		return result, nil
	}

	lg := fromGraph(g)

	// membership maps each original node to its node on the current level
	membership := make([]int, g.NodeCount())
	for i := range membership {
		membership[i] = i
	}

	q := lg.modularity(membership, len(membership), opts.Resolution)
	result.InitialModularity = q

	logger.Info("starting community detection",
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Float64("resolution", opts.Resolution),
		logging.Modularity(q))

	totalMoves := 0
	for level := 0; opts.MaxPasses == 0 || level < opts.MaxPasses; level++ {
		levelStart := time.Now()

		assign, sweeps, moves := lg.localMove(opts.Resolution, opts.Tolerance, opts.MaxSweeps)
		if moves == 0 {
			result.Converged = true
			logger.Debug("no moves, local optimum reached", logging.AggregationLevel(level))
			break
		}
		k := renumber(assign)
		newQ := lg.modularity(assign, k, opts.Resolution)

		for v, node := range membership {
			membership[v] = assign[node]
		}
		snapshot := make([]int, len(membership))
		copy(snapshot, membership)
		result.hierarchy = append(result.hierarchy, snapshot)

		stats := LevelStats{
			Level:       level,
			Nodes:       lg.size(),
			Communities: k,
			Sweeps:      sweeps,
			Moves:       moves,
			Modularity:  newQ,
			Duration:    time.Since(levelStart),
		}
		result.Levels = append(result.Levels, stats)
		totalMoves += moves

		if opts.Metrics != nil {
			opts.Metrics.RecordLevel(level, stats.Duration)
		}
		logger.Debug("level complete",
			logging.AggregationLevel(level),
			logging.Nodes(stats.Nodes),
			logging.Communities(k),
			logging.Int("sweeps", sweeps),
			logging.Int("moves", moves),
			logging.Modularity(newQ))

		gain := newQ - q
		q = newQ
		if k == 1 || gain <= opts.Tolerance {
			result.Converged = true
			break
		}

		lg = lg.aggregate(assign, k)
		invariant(lg.size() == k, "aggregate size differs from community count")
	}

	for v, c := range membership {
		result.Partition[g.Key(v)] = c
	}
	result.Partition = result.Partition.Normalize()
	result.keys = g.Keys()

	final, err := Modularity(g, result.Partition, opts.Resolution)
	invariant(err == nil, "optimizer produced an invalid partition")
	result.Modularity = final
	result.Passes = len(result.Levels)
	result.Communities = describeCommunities(g, result.Partition)

	elapsed := time.Since(start)
	if opts.Metrics != nil {
		largest := 0
		if len(result.Communities) > 0 {
			largest = result.TopCommunities(1)[0].Size
		}
		opts.Metrics.RecordCommunityRun(result.Passes, totalMoves, len(result.Communities), largest, final, elapsed)
	}
	logger.Info("community detection complete",
		logging.Communities(len(result.Communities)),
		logging.Int("passes", result.Passes),
		logging.Int("moves", totalMoves),
		logging.Bool("converged", result.Converged),
		logging.Modularity(final),
		logging.Latency(elapsed))

	return result, nil
}

// localMove runs the local-moving phase from the singleton partition of lg.
// It returns the (not yet renumbered) assignment, the sweep count and the
// number of node moves. A move is taken only when the best neighbouring
// community beats staying by more than tolerance in modularity units.
func (lg *levelGraph) localMove(resolution, tolerance float64, maxSweeps int) (assign []int, sweeps, moves int) {
	n := lg.size()
	assign = make([]int, n)
	tot := make([]float64, n)
	for i := 0; i < n; i++ {
		assign[i] = i
		tot[i] = lg.strength[i]
	}
	if lg.m == 0 {
		return assign, 0, 0
	}

	m := lg.m
	scale := resolution / (2 * m)

	linkWeight := make([]float64, n)
	marked := make([]bool, n)
	candidates := make([]int, 0, 16)

	for maxSweeps == 0 || sweeps < maxSweeps {
		sweeps++
		moved := 0

		for i := 0; i < n; i++ {
			current := assign[i]
			ki := lg.strength[i]

			candidates = candidates[:0]
			marked[current] = true
			candidates = append(candidates, current)
			for _, nb := range lg.adj[i] {
				c := assign[nb.Index]
				if !marked[c] {
					marked[c] = true
					candidates = append(candidates, c)
				}
				linkWeight[c] += nb.Weight
			}
			sort.Ints(candidates)

			// Take i out of its community before scoring
			tot[current] -= ki
			invariant(tot[current] > -1e-9*m, "negative community strength")

			stay := (linkWeight[current] - scale*tot[current]*ki) / m
			best, bestGain := -1, math.Inf(-1)
			for _, c := range candidates {
				if c == current {
					continue
				}
				// Ascending order plus strict comparison keeps the lowest id on ties
				if gain := (linkWeight[c] - scale*tot[c]*ki) / m; gain > bestGain {
					best, bestGain = c, gain
				}
			}

			target := current
			if best >= 0 && bestGain-stay > tolerance {
				target = best
				moved++
			}
			tot[target] += ki
			assign[i] = target

			for _, c := range candidates {
				linkWeight[c] = 0
				marked[c] = false
			}
		}

		moves += moved
		if moved == 0 {
			break
		}
	}

	return assign, sweeps, moves
}
