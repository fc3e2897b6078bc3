package community

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func mustGraph(t testing.TB, pairs ...[2]string) *graph.Graph {
	t.Helper()
	g, err := graph.FromPairs(pairs, graph.DefaultBuildOptions())
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	return g
}

// twoTriangles is two disjoint triangles {A,B,C} and {D,E,F}
func twoTriangles(t testing.TB) *graph.Graph {
	return mustGraph(t,
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "C"},
		[2]string{"D", "E"}, [2]string{"E", "F"}, [2]string{"D", "F"},
	)
}

// clique returns the pairs of a complete graph over prefix0..prefix(n-1)
func clique(prefix string, n int) [][2]string {
	var pairs [][2]string
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]string{fmt.Sprintf("%s%d", prefix, i), fmt.Sprintf("%s%d", prefix, j)})
		}
	}
	return pairs
}

// randomGraph builds a seeded Erdős–Rényi style graph with unit weights
func randomGraph(t testing.TB, seed int64, nodes int, p float64) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b := graph.NewBuilder(graph.DefaultBuildOptions())
	for i := 0; i < nodes; i++ {
		if err := b.AddNode(fmt.Sprintf("n%03d", i)); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	for i := 0; i < nodes; i++ {
		for j := i + 1; j < nodes; j++ {
			if rng.Float64() < p {
				if err := b.AddEdge(fmt.Sprintf("n%03d", i), fmt.Sprintf("n%03d", j), 0); err != nil {
					t.Fatalf("AddEdge failed: %v", err)
				}
			}
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}
