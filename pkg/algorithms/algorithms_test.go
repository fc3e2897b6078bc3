package algorithms

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

func buildTestGraph(t *testing.T, pairs ...[2]string) *graph.Graph {
	t.Helper()
	g, err := graph.FromPairs(pairs, graph.DefaultBuildOptions())
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	return g
}

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// star returns a hub connected to n leaves
func star(n int) [][2]string {
	pairs := make([][2]string, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, [2]string{"hub", fmt.Sprintf("leaf%d", i)})
	}
	return pairs
}

func randomTestGraph(t *testing.T, seed int64, nodes int, p float64) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var pairs [][2]string
	for i := 0; i < nodes; i++ {
		for j := i + 1; j < nodes; j++ {
			if rng.Float64() < p {
				pairs = append(pairs, [2]string{fmt.Sprintf("p%03d", i), fmt.Sprintf("p%03d", j)})
			}
		}
	}
	return buildTestGraph(t, pairs...)
}
