package community

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Partition maps node keys to community ids. Every node of the graph it
// describes belongs to exactly one community.
type Partition map[string]int

// Singletons returns the partition placing every node of g in its own
// community, ids following ascending key order.
func Singletons(g *graph.Graph) Partition {
	p := make(Partition, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		p[g.Key(i)] = i
	}
	return p
}

// Count returns the number of distinct communities
func (p Partition) Count() int {
	ids := make(map[int]struct{}, len(p))
	for _, c := range p {
		ids[c] = struct{}{}
	}
	return len(ids)
}

// Communities groups the keys by community id. Groups are ordered by id and
// members sorted ascending.
func (p Partition) Communities() [][]string {
	groups := make(map[int][]string)
	for key, c := range p {
		groups[c] = append(groups[c], key)
	}

	ids := make([]int, 0, len(groups))
	for c := range groups {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	out := make([][]string, 0, len(ids))
	for _, c := range ids {
		members := groups[c]
		sort.Strings(members)
		out = append(out, members)
	}
	return out
}

// Normalize returns an equivalent partition whose ids are dense and assigned
// in order of first appearance over ascending keys.
func (p Partition) Normalize() Partition {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	relabel := make(map[int]int)
	out := make(Partition, len(p))
	for _, k := range keys {
		c := p[k]
		id, ok := relabel[c]
		if !ok {
			id = len(relabel)
			relabel[c] = id
		}
		out[k] = id
	}
	return out
}

// SameGrouping reports whether p and q group the same keys together,
// regardless of the ids used.
func (p Partition) SameGrouping(q Partition) bool {
	if len(p) != len(q) {
		return false
	}
	forward := make(map[int]int)
	backward := make(map[int]int)
	for k, a := range p {
		b, ok := q[k]
		if !ok {
			return false
		}
		if prev, seen := forward[a]; seen && prev != b {
			return false
		}
		if prev, seen := backward[b]; seen && prev != a {
			return false
		}
		forward[a] = b
		backward[b] = a
	}
	return true
}

// Validate checks that p assigns every node of g and names no other keys.
func (p Partition) Validate(g *graph.Graph) error {
	for i := 0; i < g.NodeCount(); i++ {
		if _, ok := p[g.Key(i)]; !ok {
			return fmt.Errorf("%w: node %q is not assigned", ErrInvalidPartition, g.Key(i))
		}
	}
	if len(p) != g.NodeCount() {
		for k := range p {
			if !g.Has(k) {
				return fmt.Errorf("%w: key %q is not a node of the graph", ErrInvalidPartition, k)
			}
		}
	}
	return nil
}

// assignment converts p into dense per-index community ids for g.
// p must already be validated.
func (p Partition) assignment(g *graph.Graph) ([]int, int) {
	assign := make([]int, g.NodeCount())
	relabel := make(map[int]int)
	for i := range assign {
		c := p[g.Key(i)]
		id, ok := relabel[c]
		if !ok {
			id = len(relabel)
			relabel[c] = id
		}
		assign[i] = id
	}
	return assign, len(relabel)
}
