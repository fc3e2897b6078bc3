package community

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
)

func detect(t *testing.T, g *graph.Graph, opts Options) *Result {
	t.Helper()
	result, err := DetectCommunities(g, opts)
	if err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}
	return result
}

// TestDetectCommunities_TwoTriangles tests that disjoint triangles split cleanly
func TestDetectCommunities_TwoTriangles(t *testing.T) {
	result := detect(t, twoTriangles(t), DefaultOptions())

	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %d", len(result.Communities))
	}
	want := Partition{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1, "F": 1}
	if !result.Partition.SameGrouping(want) {
		t.Errorf("Expected %v, got %v", want, result.Partition)
	}
	if !almostEqual(result.Modularity, 0.5) {
		t.Errorf("Expected Q=0.5, got %f", result.Modularity)
	}
	if !result.Converged {
		t.Error("Expected run to converge")
	}
	if !almostEqual(result.InitialModularity, -1.0/6.0) {
		t.Errorf("Expected initial Q=-1/6, got %f", result.InitialModularity)
	}
}

// TestDetectCommunities_BridgedTriangles tests two triangles joined by one edge
func TestDetectCommunities_BridgedTriangles(t *testing.T) {
	g := mustGraph(t,
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "C"},
		[2]string{"D", "E"}, [2]string{"E", "F"}, [2]string{"D", "F"},
		[2]string{"C", "D"},
	)
	result := detect(t, g, DefaultOptions())

	want := Partition{"A": 0, "B": 0, "C": 0, "D": 1, "E": 1, "F": 1}
	if !result.Partition.SameGrouping(want) {
		t.Errorf("Expected %v, got %v", want, result.Partition)
	}
	// 2·(3/7 − (7/14)²)
	if !almostEqual(result.Modularity, 6.0/7.0-0.5) {
		t.Errorf("Expected Q=%f, got %f", 6.0/7.0-0.5, result.Modularity)
	}
}

// TestDetectCommunities_SingleNode tests the trivial one-node graph
func TestDetectCommunities_SingleNode(t *testing.T) {
	b := graph.NewBuilder(graph.DefaultBuildOptions())
	_ = b.AddNode("solo")
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	result := detect(t, g, DefaultOptions())
	if len(result.Communities) != 1 || result.Partition["solo"] != 0 {
		t.Errorf("Expected one community holding solo, got %v", result.Partition)
	}
	if result.Modularity != 0 {
		t.Errorf("Expected Q=0, got %f", result.Modularity)
	}
	if result.Passes != 0 {
		t.Errorf("Expected no passes, got %d", result.Passes)
	}
}

// TestDetectCommunities_EmptyGraph tests that an empty graph is not an error
func TestDetectCommunities_EmptyGraph(t *testing.T) {
	g, err := graph.Build(nil, graph.DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	result := detect(t, g, DefaultOptions())
	if len(result.Partition) != 0 || len(result.Communities) != 0 {
		t.Errorf("Expected empty result, got %v", result.Partition)
	}
	if result.Modularity != 0 {
		t.Errorf("Expected Q=0, got %f", result.Modularity)
	}
}

// TestDetectCommunities_DisconnectedCliques tests that components never merge
func TestDetectCommunities_DisconnectedCliques(t *testing.T) {
	pairs := append(clique("a", 4), clique("b", 6)...)
	g := mustGraph(t, pairs...)
	result := detect(t, g, DefaultOptions())

	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %d: %v", len(result.Communities), result.Partition)
	}
	top := result.TopCommunities(0)
	if top[0].Size != 6 || top[1].Size != 4 {
		t.Errorf("Expected sizes [6 4], got [%d %d]", top[0].Size, top[1].Size)
	}
	for _, c := range result.Communities {
		if c.Density != 1 {
			t.Errorf("Expected clique density 1, got %f for community %d", c.Density, c.ID)
		}
		prefix := c.Members[0][0]
		for _, m := range c.Members {
			if m[0] != prefix {
				t.Errorf("Community %d mixes components: %v", c.ID, c.Members)
			}
		}
	}
}

// TestDetectCommunities_Deterministic tests byte-identical output across runs
func TestDetectCommunities_Deterministic(t *testing.T) {
	g := randomGraph(t, 7, 80, 0.06)

	first, err := json.Marshal(detect(t, g, DefaultOptions()))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(detect(t, g, DefaultOptions()))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("Run %d differs from the first run", i)
		}
	}
}

// TestDetectCommunities_ImprovesOnSingletons tests the result against the start
func TestDetectCommunities_ImprovesOnSingletons(t *testing.T) {
	g := randomGraph(t, 99, 60, 0.1)
	result := detect(t, g, DefaultOptions())

	singleton, err := SingletonModularity(g, 1.0)
	if err != nil {
		t.Fatalf("SingletonModularity failed: %v", err)
	}
	if result.Modularity < singleton {
		t.Errorf("Expected Q >= %f, got %f", singleton, result.Modularity)
	}

	// Level modularities never decrease
	prev := result.InitialModularity
	for _, level := range result.Levels {
		if level.Modularity < prev-eps {
			t.Errorf("Level %d decreased modularity: %f -> %f", level.Level, prev, level.Modularity)
		}
		prev = level.Modularity
	}

	// Reported modularity agrees with the independent evaluator
	if got := gonumQ(t, g, result.Partition, 1.0); math.Abs(got-result.Modularity) > 1e-9 {
		t.Errorf("Expected gonum Q %f to match %f", got, result.Modularity)
	}
}

// TestDetectCommunities_Hierarchy tests level snapshots against the final partition
func TestDetectCommunities_Hierarchy(t *testing.T) {
	pairs := append(clique("a", 5), clique("b", 5)...)
	pairs = append(pairs, clique("c", 5)...)
	pairs = append(pairs, [2]string{"a0", "b0"}, [2]string{"b1", "c0"}, [2]string{"c1", "a1"})
	g := mustGraph(t, pairs...)

	result := detect(t, g, DefaultOptions())
	levels := result.Hierarchy()
	if len(levels) != result.Passes {
		t.Fatalf("Expected %d hierarchy levels, got %d", result.Passes, len(levels))
	}
	if len(levels) == 0 {
		t.Fatal("Expected at least one level")
	}
	if !levels[len(levels)-1].SameGrouping(result.Partition) {
		t.Error("Expected the last level to match the final partition")
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].Count() > levels[i-1].Count() {
			t.Errorf("Level %d has more communities than level %d", i, i-1)
		}
	}
}

// TestDetectCommunities_MaxPasses tests that the pass cap stops aggregation
func TestDetectCommunities_MaxPasses(t *testing.T) {
	g := randomGraph(t, 3, 50, 0.08)
	opts := DefaultOptions()
	opts.MaxPasses = 1

	result := detect(t, g, opts)
	if result.Passes > 1 {
		t.Errorf("Expected at most 1 pass, got %d", result.Passes)
	}
	if len(result.Hierarchy()) != result.Passes {
		t.Errorf("Expected hierarchy to match the pass count")
	}
}

// TestDetectCommunities_Resolution tests that γ=0 collapses each component
func TestDetectCommunities_Resolution(t *testing.T) {
	g := mustGraph(t,
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "C"},
		[2]string{"D", "E"}, [2]string{"E", "F"}, [2]string{"D", "F"},
		[2]string{"C", "D"},
	)
	opts := DefaultOptions()
	opts.Resolution = 0

	result := detect(t, g, opts)
	if len(result.Communities) != 1 {
		t.Errorf("Expected a single community at γ=0, got %d", len(result.Communities))
	}
	if !almostEqual(result.Modularity, 1) {
		t.Errorf("Expected Q=1 at γ=0, got %f", result.Modularity)
	}
}

// TestDetectCommunities_InvalidOptions tests option validation
func TestDetectCommunities_InvalidOptions(t *testing.T) {
	g := twoTriangles(t)

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"negative resolution", func(o *Options) { o.Resolution = -0.1 }},
		{"infinite resolution", func(o *Options) { o.Resolution = math.Inf(1) }},
		{"negative tolerance", func(o *Options) { o.Tolerance = -1 }},
		{"negative max passes", func(o *Options) { o.MaxPasses = -1 }},
		{"negative max sweeps", func(o *Options) { o.MaxSweeps = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if _, err := DetectCommunities(g, opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

// TestDetectCommunities_LoggingAndMetrics tests that a run reports through both
func TestDetectCommunities_LoggingAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = logging.NewJSONLogger(&buf, logging.DebugLevel)
	opts.Metrics = metrics.NewRegistry()

	detect(t, twoTriangles(t), opts)

	if !bytes.Contains(buf.Bytes(), []byte("community detection complete")) {
		t.Errorf("Expected completion log line, got %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"aggregation_level"`)) {
		t.Errorf("Expected per-level debug lines, got %s", buf.String())
	}
}

// TestResult_TopCommunities tests ordering and truncation
func TestResult_TopCommunities(t *testing.T) {
	r := &Result{Communities: []*Community{
		{ID: 0, Size: 2}, {ID: 1, Size: 5}, {ID: 2, Size: 5}, {ID: 3, Size: 1},
	}}

	top := r.TopCommunities(3)
	if len(top) != 3 {
		t.Fatalf("Expected 3 communities, got %d", len(top))
	}
	ids := []int{top[0].ID, top[1].ID, top[2].ID}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 0 {
		t.Errorf("Expected ids [1 2 0], got %v", ids)
	}
	if r.Communities[0].ID != 0 {
		t.Error("Expected TopCommunities to leave the original order alone")
	}
}

// TestResult_CommunityOf tests lookup by key
func TestResult_CommunityOf(t *testing.T) {
	result := detect(t, twoTriangles(t), DefaultOptions())

	a, ok := result.CommunityOf("A")
	if !ok {
		t.Fatal("Expected A to have a community")
	}
	d, _ := result.CommunityOf("D")
	if a.ID == d.ID {
		t.Error("Expected A and D in different communities")
	}
	if a.InternalWeight != 3 || a.TotalStrength != 6 {
		t.Errorf("Expected internal 3 total 6, got %f %f", a.InternalWeight, a.TotalStrength)
	}
	if _, ok := result.CommunityOf("missing"); ok {
		t.Error("Expected no community for unknown key")
	}
}
