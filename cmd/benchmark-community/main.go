package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
)

func main() {
	groups := flag.Int("groups", 20, "Number of planted communities")
	size := flag.Int("size", 50, "Nodes per planted community")
	pIn := flag.Float64("p-in", 0.2, "Edge probability inside a community")
	pOut := flag.Float64("p-out", 0.002, "Edge probability between communities")
	seed := flag.Int64("seed", 1, "Random seed")
	workers := flag.Int("workers", 0, "Workers for betweenness and transitivity (0 = all CPUs)")
	skipBetweenness := flag.Bool("skip-betweenness", false, "Skip the O(VE) betweenness benchmark")
	textfile := flag.String("metrics-textfile", "", "Write Prometheus metrics to this textfile")
	flag.Parse()

	fmt.Printf("🔥 Cluso Community - Algorithms Benchmark\n")
	fmt.Printf("=========================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Groups: %d x %d nodes\n", *groups, *size)
	fmt.Printf("  p_in: %g  p_out: %g\n", *pIn, *pOut)
	fmt.Printf("  Seed: %d\n\n", *seed)

	reg := metrics.NewRegistry()

	fmt.Printf("📝 Generating planted-partition graph...\n")
	start := time.Now()
	g, planted, err := plantedPartition(*groups, *size, *pIn, *pOut, *seed)
	if err != nil {
		log.Fatalf("Failed to generate graph: %v", err)
	}
	duration := time.Since(start)
	reg.RecordGraph(g.NodeCount(), g.EdgeCount(), g.TotalEdgeWeight(), duration)
	fmt.Printf("✅ %d nodes, %d edges in %v\n", g.NodeCount(), g.EdgeCount(), duration)

	// Benchmark 1: Louvain
	fmt.Printf("\n📊 Benchmark 1: Louvain community detection\n")
	opts := community.DefaultOptions()
	opts.Metrics = reg
	opts.Logger = logging.NewNopLogger()

	start = time.Now()
	result, err := community.DetectCommunities(g, opts)
	if err != nil {
		log.Fatalf("Louvain failed: %v", err)
	}
	duration = time.Since(start)

	plantedQ, err := community.Modularity(g, planted, 1.0)
	if err != nil {
		log.Fatalf("Modularity failed: %v", err)
	}
	fmt.Printf("✅ Louvain completed in %v\n", duration)
	fmt.Printf("  Communities: %d (planted %d)\n", len(result.Communities), *groups)
	fmt.Printf("  Modularity: %.6f (planted %.6f)\n", result.Modularity, plantedQ)
	fmt.Printf("  Passes: %d  Converged: %v\n", result.Passes, result.Converged)
	fmt.Printf("  Planted pairs recovered: %.2f%%\n", 100*pairAgreement(planted, result.Partition))
	for _, level := range result.Levels {
		fmt.Printf("    level %d: %d nodes -> %d communities, %d sweeps, %d moves, Q=%.6f (%v)\n",
			level.Level, level.Nodes, level.Communities, level.Sweeps, level.Moves, level.Modularity, level.Duration)
	}

	// Benchmark 2: Betweenness Centrality
	if !*skipBetweenness {
		fmt.Printf("\n📊 Benchmark 2: Betweenness Centrality\n")
		start = time.Now()
		betweenness, err := algorithms.BetweennessCentrality(g, algorithms.BetweennessOptions{
			Normalized: true,
			Workers:    *workers,
			Metrics:    reg,
		})
		if err != nil {
			log.Fatalf("Betweenness Centrality failed: %v", err)
		}
		duration = time.Since(start)
		fmt.Printf("✅ Betweenness Centrality completed in %v\n", duration)
		printTop("Betweenness", algorithms.TopNodes(betweenness, 5))
	}

	// Benchmark 3: Transitivity
	fmt.Printf("\n📊 Benchmark 3: Transitivity\n")
	start = time.Now()
	local, err := algorithms.Transitivity(g, *workers)
	if err != nil {
		log.Fatalf("Transitivity failed: %v", err)
	}
	duration = time.Since(start)
	reg.RecordAlgorithm("transitivity", duration)
	fmt.Printf("✅ Transitivity completed in %v\n", duration)
	fmt.Printf("  Global: %.4f  Average: %.4f\n", algorithms.GlobalTransitivity(g), algorithms.AverageTransitivity(g))
	printTop("Transitivity", algorithms.TopNodes(local, 5))

	// Benchmark 4: Degree
	fmt.Printf("\n📊 Benchmark 4: Degree distribution\n")
	start = time.Now()
	dist := algorithms.ComputeDegreeDistribution(g)
	duration = time.Since(start)
	reg.RecordAlgorithm("degree", duration)
	fmt.Printf("✅ Degree distribution completed in %v\n", duration)
	fmt.Printf("  min %d  max %d  mean %.2f  sd %.2f  median %.1f  p90 %.1f\n",
		dist.Min, dist.Max, dist.Mean, dist.StdDev, dist.Median, dist.P90)

	if *textfile != "" {
		if err := reg.WriteTextfile(*textfile); err != nil {
			log.Fatalf("Failed to write metrics: %v", err)
		}
		fmt.Printf("\n📁 Metrics written to %s\n", *textfile)
	}

	fmt.Printf("\n🎉 Benchmark complete\n")
}

// plantedPartition generates groups of size nodes each; pairs inside a group
// are linked with probability pIn and across groups with pOut.
func plantedPartition(groups, size int, pIn, pOut float64, seed int64) (*graph.Graph, community.Partition, error) {
	rng := rand.New(rand.NewSource(seed))
	n := groups * size
	key := func(i int) string { return fmt.Sprintf("g%03d_n%04d", i/size, i) }

	b := graph.NewBuilder(graph.DefaultBuildOptions())
	planted := make(community.Partition, n)
	for i := 0; i < n; i++ {
		if err := b.AddNode(key(i)); err != nil {
			return nil, nil, err
		}
		planted[key(i)] = i / size
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := pOut
			if i/size == j/size {
				p = pIn
			}
			if rng.Float64() < p {
				if err := b.AddEdge(key(i), key(j), 1); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	g, err := b.Build()
	return g, planted, err
}

// pairAgreement is the Rand index of two partitions over the same keys
func pairAgreement(a, b community.Partition) float64 {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	if len(keys) < 2 {
		return 1
	}

	agree, total := 0, 0
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			sameA := a[keys[i]] == a[keys[j]]
			sameB := b[keys[i]] == b[keys[j]]
			if sameA == sameB {
				agree++
			}
			total++
		}
	}
	return float64(agree) / float64(total)
}

func printTop(label string, top []algorithms.RankedNode) {
	fmt.Printf("  Top %d nodes by %s:\n", len(top), label)
	for i, node := range top {
		fmt.Printf("    %d. %s (score: %.6f)\n", i+1, node.Key, node.Score)
	}
}
