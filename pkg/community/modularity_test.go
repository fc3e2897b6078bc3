package community

import (
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/cluso-community/pkg/graph"
	gonumgraph "gonum.org/v1/gonum/graph"
	gonumcommunity "gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"
)

// gonumQ scores p with gonum's reference implementation
func gonumQ(t *testing.T, g *graph.Graph, p Partition, resolution float64) float64 {
	t.Helper()
	gg, err := g.ToGonum()
	if err != nil {
		t.Fatalf("ToGonum failed: %v", err)
	}
	var groups [][]gonumgraph.Node
	for _, members := range p.Communities() {
		var nodes []gonumgraph.Node
		for _, key := range members {
			i, _ := g.Index(key)
			nodes = append(nodes, simple.Node(int64(i)))
		}
		groups = append(groups, nodes)
	}
	return gonumcommunity.Q(gg, groups, resolution)
}

// TestModularity_TwoTriangles tests the optimal split of two disjoint triangles
func TestModularity_TwoTriangles(t *testing.T) {
	g := twoTriangles(t)
	p := Partition{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1, "F": 1}

	q, err := Modularity(g, p, 1.0)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if !almostEqual(q, 0.5) {
		t.Errorf("Expected Q=0.5, got %f", q)
	}
}

// TestModularity_Singletons tests the closed form -Σ(k/2m)² without self-loops
func TestModularity_Singletons(t *testing.T) {
	g := mustGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "C"})

	q, err := SingletonModularity(g, 1.0)
	if err != nil {
		t.Fatalf("SingletonModularity failed: %v", err)
	}
	if !almostEqual(q, -1.0/3.0) {
		t.Errorf("Expected Q=-1/3, got %f", q)
	}
}

// TestModularity_SingleCommunity tests that one community spanning everything scores 0
func TestModularity_SingleCommunity(t *testing.T) {
	g := twoTriangles(t)
	p := make(Partition)
	for _, k := range g.Keys() {
		p[k] = 7
	}

	q, err := Modularity(g, p, 1.0)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if !almostEqual(q, 0) {
		t.Errorf("Expected Q=0, got %f", q)
	}
}

// TestModularity_NoEdges tests that an edgeless graph scores 0
func TestModularity_NoEdges(t *testing.T) {
	b := graph.NewBuilder(graph.DefaultBuildOptions())
	_ = b.AddNode("lonely")
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	q, err := Modularity(g, Partition{"lonely": 0}, 1.0)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if q != 0 {
		t.Errorf("Expected Q=0, got %f", q)
	}
}

// TestModularity_SelfLoop tests that a self-loop counts as internal weight
func TestModularity_SelfLoop(t *testing.T) {
	g, err := graph.Build([]graph.Edge{
		{From: "A", To: "A", Weight: 1},
		{From: "A", To: "B", Weight: 1},
	}, graph.BuildOptions{AllowSelfLoops: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// m=2, k_A=3, k_B=1; singletons: 1/2 - (3/4)² - (1/4)²
	q, err := SingletonModularity(g, 1.0)
	if err != nil {
		t.Fatalf("SingletonModularity failed: %v", err)
	}
	want := 0.5 - 9.0/16.0 - 1.0/16.0
	if !almostEqual(q, want) {
		t.Errorf("Expected Q=%f, got %f", want, q)
	}
}

// TestModularity_Resolution tests that γ scales only the null-model term
func TestModularity_Resolution(t *testing.T) {
	g := twoTriangles(t)
	p := Partition{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1, "F": 1}

	q, err := Modularity(g, p, 0.5)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if !almostEqual(q, 0.75) {
		t.Errorf("Expected Q=0.75 at γ=0.5, got %f", q)
	}

	q, err = Modularity(g, p, 0)
	if err != nil {
		t.Fatalf("Modularity failed: %v", err)
	}
	if !almostEqual(q, 1.0) {
		t.Errorf("Expected Q=1 at γ=0, got %f", q)
	}
}

// TestModularity_MatchesGonum compares against gonum on random partitions
func TestModularity_MatchesGonum(t *testing.T) {
	g := randomGraph(t, 42, 40, 0.15)

	for _, resolution := range []float64{0.5, 1.0, 2.0} {
		for mod := 1; mod <= 6; mod++ {
			p := make(Partition)
			for i, k := range g.Keys() {
				p[k] = (i * 7) % mod
			}

			got, err := Modularity(g, p, resolution)
			if err != nil {
				t.Fatalf("Modularity failed: %v", err)
			}
			want := gonumQ(t, g, p, resolution)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("γ=%v mod=%d: expected %f (gonum), got %f", resolution, mod, want, got)
			}
		}
	}
}

// TestModularity_InvalidPartition tests missing and unknown keys
func TestModularity_InvalidPartition(t *testing.T) {
	g := twoTriangles(t)

	tests := []struct {
		name string
		p    Partition
	}{
		{"missing node", Partition{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1}},
		{"unknown key", Partition{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1, "F": 1, "Z": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Modularity(g, tt.p, 1.0)
			if !errors.Is(err, ErrInvalidPartition) {
				t.Errorf("Expected ErrInvalidPartition, got %v", err)
			}
		})
	}
}

// TestModularity_InvalidResolution tests negative and non-finite γ
func TestModularity_InvalidResolution(t *testing.T) {
	g := twoTriangles(t)
	p := Singletons(g)

	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := Modularity(g, p, r); !errors.Is(err, ErrInvalidResolution) {
			t.Errorf("resolution %v: expected ErrInvalidResolution, got %v", r, err)
		}
	}
}

// TestPartition_Normalize tests dense relabelling in key order
func TestPartition_Normalize(t *testing.T) {
	p := Partition{"c": 9, "a": 4, "b": 9, "d": 4}
	n := p.Normalize()

	want := Partition{"a": 0, "b": 1, "c": 1, "d": 0}
	for k, c := range want {
		if n[k] != c {
			t.Errorf("Expected %s -> %d, got %d", k, c, n[k])
		}
	}
	if !p.SameGrouping(n) {
		t.Error("Expected normalized partition to keep the grouping")
	}
	if n.Count() != 2 {
		t.Errorf("Expected 2 communities, got %d", n.Count())
	}
}

// TestPartition_SameGrouping tests grouping comparison independent of ids
func TestPartition_SameGrouping(t *testing.T) {
	a := Partition{"x": 0, "y": 0, "z": 1}
	if !a.SameGrouping(Partition{"x": 5, "y": 5, "z": 3}) {
		t.Error("Expected relabelled partition to match")
	}
	if a.SameGrouping(Partition{"x": 0, "y": 1, "z": 1}) {
		t.Error("Expected different grouping to differ")
	}
	if a.SameGrouping(Partition{"x": 0, "y": 0, "z": 0}) {
		t.Error("Expected merged grouping to differ")
	}
}
