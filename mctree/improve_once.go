package mctree

import "github.com/steinertree/mctree/pathindex"

// ImproveOnce performs one round of local search (spec §4.4.3):
//  1. select an edge to remove (none eligible -> returns (false, false));
//  2. ascending-prune from the parent side, descending-prune from the
//     child side;
//  3. reconnect the two resulting components, falling back to
//     reinstalling the original edges if no acceptable path is found;
//  4. increment the improvement counter.
//
// Returns whether a new path was installed and whether it was accepted as
// a degrading move.
func (t *Tree) ImproveOnce(attemptIdx int, temperature float64) (installedNewPath, wasDegrading bool) {
	e, found := t.selectEdge()
	if !found {
		return false, false
	}
	t.removeEdge(e.Child)

	_, ascRemoved := t.ascendingClean(e.Parent)
	subRoot, descRemoved := t.descendingClean(e.Child)

	removed := make([]Edge, 0, len(ascRemoved)+1+len(descRemoved))
	for i := len(ascRemoved) - 1; i >= 0; i-- {
		removed = append(removed, ascRemoved[i])
	}
	removed = append(removed, e)
	removed = append(removed, descRemoved...)

	newPath, degrading, ok := t.reconnect(subRoot, removed, temperature)
	if !ok {
		for _, re := range removed {
			t.addEdge(re.Parent, re.Child, re.Weight)
		}
		t.improvements++
		return false, false
	}

	if newPath[len(newPath)-1] != subRoot {
		t.reroot(newPath[len(newPath)-1], subRoot)
	}

	weights, err := t.pathEdgeWeights(newPath)
	if err != nil {
		// the oracle returned an edge absent from the underlying graph;
		// treat as no acceptable move, same as the no-path case.
		for _, re := range removed {
			t.addEdge(re.Parent, re.Child, re.Weight)
		}
		t.improvements++
		return false, false
	}

	if t.cfg.UsePathQueue() {
		_ = t.pathIdx.AddPath(pathindex.NewPath(newPath, weights))
	}
	t.tabuIdx.AddPath(newPath, t.cfg.TabuTTL())
	t.installPath(newPath, weights)

	t.improvements++
	return true, degrading
}
