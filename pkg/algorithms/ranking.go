package algorithms

import "container/heap"

// RankedNode is a node key with its score
type RankedNode struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// before reports whether a ranks ahead of b: higher score first, then the
// smaller key.
func (a RankedNode) before(b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Key < b.Key
}

// rankedNodeHeap keeps the weakest of the current top N at the root
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int           { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return h[j].before(h[i]) }
func (h rankedNodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopNodes returns the n highest scores in descending order, ties broken by
// ascending key. n <= 0 returns nil.
func TopNodes(scores map[string]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	for key, score := range scores {
		rn := RankedNode{Key: key, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if rn.before(h[0]) {
			h[0] = rn
			heap.Fix(&h, 0)
		}
	}

	// Pops come out weakest first
	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}

// TopNodesByDegree ranks raw degrees with TopNodes
func TopNodesByDegree(degree map[string]int, n int) []RankedNode {
	scores := make(map[string]float64, len(degree))
	for k, d := range degree {
		scores[k] = float64(d)
	}
	return TopNodes(scores, n)
}
