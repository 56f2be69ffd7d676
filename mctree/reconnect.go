package mctree

import (
	"math"
	"math/rand"

	"github.com/steinertree/mctree/config"
)

// edgePathToNodePath converts a root-to-leaf sequence of directed edges
// into its node sequence.
func edgePathToNodePath(edges []Edge) []int {
	if len(edges) == 0 {
		return nil
	}
	path := []int{edges[0].Parent}
	for _, e := range edges {
		path = append(path, e.Child)
	}
	return path
}

func sumWeights(edges []Edge) int {
	total := 0
	for _, e := range edges {
		total += e.Weight
	}
	return total
}

func nodePathsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sampleWithoutReplacement returns n elements chosen uniformly without
// replacement from xs, via a partial Fisher-Yates shuffle. n is clamped
// to len(xs).
func sampleWithoutReplacement(xs []int, n int, rng *rand.Rand) []int {
	if n > len(xs) {
		n = len(xs)
	}
	pool := append([]int(nil), xs...)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// reconnect implements spec §4.4.6: search for a path reconnecting the
// source side of a cut to subRoot's descendant side, honoring
// search_strategy and intensify_only, falling back to the SA acceptance
// rule for degrading candidates. Returns the chosen node-path (never nil
// when ok) and whether it was accepted as a degrading move.
func (t *Tree) reconnect(subRoot int, removedEdges []Edge, temperature float64) (path []int, degrading bool, ok bool) {
	desc := t.reachable(subRoot)
	srcSet := t.treeNodeSet()
	for n := range desc {
		delete(srcSet, n)
	}
	src := make([]int, 0, len(srcSet))
	for n := range srcSet {
		src = append(src, n)
	}
	descNodes := make([]int, 0, len(desc))
	for n := range desc {
		descNodes = append(descNodes, n)
	}

	toImprove := sumWeights(removedEdges)
	removedPath := edgePathToNodePath(removedEdges)

	sampleSize := t.cfg.ImproveSearchSpace()
	if sampleSize > len(src) {
		sampleSize = len(src)
	}
	srcSample := sampleWithoutReplacement(src, sampleSize, t.rng)

	var improvingS, improvingD int
	improvingFound := false
	improvingCost := math.MaxInt

	var degradingPath []int
	degradingCost := math.MaxInt

	for _, s := range srcSample {
		for _, d := range descNodes {
			l, exists := t.oracle.ShortestPathLength(s, d)
			if !exists {
				continue
			}
			if l < toImprove && l < improvingCost {
				improvingS, improvingD = s, d
				improvingCost = l
				improvingFound = true
			} else if !t.cfg.IntensifyOnly() && l < degradingCost {
				sp, _ := t.oracle.ShortestPath(s, d)
				if !nodePathsEqual(sp, removedPath) {
					degradingPath = sp
					degradingCost = l
				}
			}
		}
		if t.cfg.SearchStrategy() == config.FirstImprovement && improvingFound {
			break
		}
	}

	if improvingFound {
		sp, _ := t.oracle.ShortestPath(improvingS, improvingD)
		return cleanPath(sp, srcSet, desc), false, true
	}

	if !t.cfg.IntensifyOnly() && degradingPath != nil {
		cleaned := cleanPath(degradingPath, srcSet, desc)
		if !nodePathsEqual(cleaned, removedPath) {
			weights, err := t.pathEdgeWeights(cleaned)
			if err == nil {
				cost := 0
				for _, w := range weights {
					cost += w
				}
				if cost < toImprove {
					return cleaned, false, true
				}
				if t.acceptDegrading(toImprove, cost, temperature) {
					return cleaned, true, true
				}
			}
		}
	}

	return nil, false, false
}

// acceptDegrading implements the SA acceptance rule of spec §4.4.7.
func (t *Tree) acceptDegrading(oldWeight, newWeight int, temperature float64) bool {
	delta := 100 * float64(newWeight-oldWeight) / float64(newWeight)
	if delta <= 0 {
		return true
	}
	if temperature == 0 {
		return false
	}
	return t.rng.Float64() < math.Exp(-delta/temperature)
}
