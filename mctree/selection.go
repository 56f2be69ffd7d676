package mctree

import "github.com/steinertree/mctree/config"

// selectEdge picks the directed edge to remove for the current round,
// according to the configured selection_heuristic (spec §4.4.4). Returns
// ok=false when no eligible edge exists (an empty tree, or every edge
// tabu).
func (t *Tree) selectEdge() (e Edge, ok bool) {
	switch t.cfg.SelectionHeuristic() {
	case config.Random:
		return t.selectEdgeRandom()
	case config.MostExpensivePath, config.AveragedMostExpensivePath:
		return t.selectEdgeFromPathIndex()
	default: // MOST_EXPENSIVE
		return t.selectEdgeMostExpensive()
	}
}

func (t *Tree) nonTabuEdges() []Edge {
	all := t.Edges()
	out := make([]Edge, 0, len(all))
	for _, e := range all {
		if !t.isTabu(e.Parent, e.Child) {
			out = append(out, e)
		}
	}
	return out
}

// selectEdgeRandom picks a uniformly random non-tabu edge.
func (t *Tree) selectEdgeRandom() (Edge, bool) {
	candidates := t.nonTabuEdges()
	if len(candidates) == 0 {
		return Edge{}, false
	}
	return candidates[t.rng.Intn(len(candidates))], true
}

// selectEdgeMostExpensive picks the max-weight non-tabu edge, breaking
// ties with a fair reservoir-style random choice: on the k-th tie,
// replace the current pick with probability 1/k (spec §4.4.4).
func (t *Tree) selectEdgeMostExpensive() (Edge, bool) {
	var selected Edge
	found := false
	bestWeight := -1
	equalWeights := 2.0

	for _, e := range t.Edges() {
		if t.isTabu(e.Parent, e.Child) {
			continue
		}
		switch {
		case e.Weight > bestWeight:
			selected = e
			bestWeight = e.Weight
			equalWeights = 2.0
			found = true
		case e.Weight == bestWeight:
			if t.rng.Float64() < 1/equalWeights {
				selected = e
			}
			equalWeights++
		}
	}
	return selected, found
}

// selectEdgeFromPathIndex implements MOST_EXPENSIVE_PATH and
// AVERAGED_MOST_EXPENSIVE_PATH: pop the best valid macro-path and return
// its first directed edge (spec §4.4.4).
func (t *Tree) selectEdgeFromPathIndex() (Edge, bool) {
	p := t.pathIdx.PopBestValid(t.cfg.MaxPaths(), t.IsClient, t.Degree, t.isTabu, t.rng)
	if p == nil {
		return Edge{}, false
	}
	return Edge{Parent: p.Nodes[0], Child: p.Nodes[1], Weight: p.EdgeWeights[0]}, true
}
