package community

import (
	"sort"
	"time"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Community summarises one detected community
type Community struct {
	ID             int      `json:"id"`
	Members        []string `json:"members"`
	Size           int      `json:"size"`
	InternalWeight float64  `json:"internal_weight"`
	TotalStrength  float64  `json:"total_strength"`
	// Density is internal edges over possible pairs; 0 for singletons.
	Density float64 `json:"density"`
}

// LevelStats records one local-moving plus aggregation level
type LevelStats struct {
	Level       int           `json:"level"`
	Nodes       int           `json:"nodes"`
	Communities int           `json:"communities"`
	Sweeps      int           `json:"sweeps"`
	Moves       int           `json:"moves"`
	Modularity  float64       `json:"modularity"`
	Duration    time.Duration `json:"-"`
}

// Result is the outcome of DetectCommunities
type Result struct {
	Partition         Partition    `json:"partition"`
	Modularity        float64      `json:"modularity"`
	InitialModularity float64      `json:"initial_modularity"`
	Resolution        float64      `json:"resolution"`
	Communities       []*Community `json:"communities"`
	Levels            []LevelStats `json:"levels"`
	Passes            int          `json:"passes"`
	Converged         bool         `json:"converged"`

	keys      []string
	hierarchy [][]int
}

// Hierarchy returns the partition of the original nodes after each level,
// finest first. The last entry groups the same keys as Partition.
func (r *Result) Hierarchy() []Partition {
	out := make([]Partition, 0, len(r.hierarchy))
	for _, level := range r.hierarchy {
		p := make(Partition, len(level))
		for i, c := range level {
			p[r.keys[i]] = c
		}
		out = append(out, p.Normalize())
	}
	return out
}

// TopCommunities returns the n largest communities, ties broken by id.
// n <= 0 returns all of them.
func (r *Result) TopCommunities(n int) []*Community {
	sorted := make([]*Community, len(r.Communities))
	copy(sorted, r.Communities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].ID < sorted[j].ID
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// CommunityOf returns the community containing key
func (r *Result) CommunityOf(key string) (*Community, bool) {
	id, ok := r.Partition[key]
	if !ok || id >= len(r.Communities) {
		return nil, false
	}
	return r.Communities[id], true
}

// describeCommunities builds per-community summaries for a normalized
// partition; the slice is indexed by community id.
func describeCommunities(g *graph.Graph, p Partition) []*Community {
	k := p.Count()
	comms := make([]*Community, k)
	for c := range comms {
		comms[c] = &Community{ID: c}
	}

	internalEdges := make([]int, k)
	for i := 0; i < g.NodeCount(); i++ {
		key := g.Key(i)
		c := comms[p[key]]
		c.Members = append(c.Members, key)
		c.TotalStrength += g.StrengthAt(i)
		c.InternalWeight += g.SelfLoopAt(i)
		for _, nb := range g.Adjacency(i) {
			if nb.Index > i && p[g.Key(nb.Index)] == c.ID {
				c.InternalWeight += nb.Weight
				internalEdges[c.ID]++
			}
		}
	}

	for _, c := range comms {
		c.Size = len(c.Members)
		if c.Size > 1 {
			pairs := float64(c.Size*(c.Size-1)) / 2
			c.Density = float64(internalEdges[c.ID]) / pairs
		}
	}
	return comms
}
