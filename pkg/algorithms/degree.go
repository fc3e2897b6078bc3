package algorithms

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// DegreeDistribution summarises the degree sequence of a graph
type DegreeDistribution struct {
	Histogram map[int]int `json:"histogram"`
	Min       int         `json:"min"`
	Max       int         `json:"max"`
	Mean      float64     `json:"mean"`
	StdDev    float64     `json:"std_dev"`
	Median    float64     `json:"median"`
	P90       float64     `json:"p90"`
}

// ComputeDegreeDistribution computes the degree histogram and summary statistics.
// StdDev is the sample standard deviation (0 for fewer than two nodes);
// quantiles use the empirical distribution.
func ComputeDegreeDistribution(g *graph.Graph) *DegreeDistribution {
	dist := &DegreeDistribution{Histogram: make(map[int]int)}
	n := g.NodeCount()
	if n == 0 {
		return dist
	}

	degrees := make([]float64, n)
	for i := 0; i < n; i++ {
		d := g.DegreeAt(i)
		dist.Histogram[d]++
		degrees[i] = float64(d)
	}
	sort.Float64s(degrees)

	dist.Min = int(degrees[0])
	dist.Max = int(degrees[n-1])
	dist.Mean = stat.Mean(degrees, nil)
	if n > 1 {
		dist.StdDev = stat.StdDev(degrees, nil)
	}
	dist.Median = stat.Quantile(0.5, stat.Empirical, degrees, nil)
	dist.P90 = stat.Quantile(0.9, stat.Empirical, degrees, nil)
	return dist
}
