package algorithms

import (
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Component is one connected component
type Component struct {
	ID    int      `json:"id"`
	Nodes []string `json:"nodes"`
	Size  int      `json:"size"`
}

// ComponentsResult labels every node with its connected component
type ComponentsResult struct {
	Components    []*Component   `json:"components"`
	NodeComponent map[string]int `json:"node_component"`
}

// Largest returns the biggest component, the first found on ties, or nil
// for an empty graph.
func (r *ComponentsResult) Largest() *Component {
	var best *Component
	for _, c := range r.Components {
		if best == nil || c.Size > best.Size {
			best = c
		}
	}
	return best
}

// ConnectedComponents finds all connected components by BFS. Components are
// numbered in order of their smallest key.
func ConnectedComponents(g *graph.Graph) *ComponentsResult {
	n := g.NodeCount()
	label := make([]int, n)
	for i := range label {
		label[i] = -1
	}

	result := &ComponentsResult{NodeComponent: make(map[string]int, n)}
	queue := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if label[start] >= 0 {
			continue
		}

		component := &Component{ID: len(result.Components)}
		label[start] = component.ID
		queue = append(queue[:0], start)
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			component.Nodes = append(component.Nodes, g.Key(v))
			result.NodeComponent[g.Key(v)] = component.ID
			for _, nb := range g.Adjacency(v) {
				if label[nb.Index] < 0 {
					label[nb.Index] = component.ID
					queue = append(queue, nb.Index)
				}
			}
		}

		component.Size = len(component.Nodes)
		result.Components = append(result.Components, component)
	}
	return result
}
