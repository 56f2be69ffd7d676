package mctree

import (
	"fmt"

	"github.com/steinertree/mctree/pathindex"
)

// treeNodeSet returns every node currently in the tree, as a set, used by
// AddClient's cleaning step and by reconnection's source/descendant split.
func (t *Tree) treeNodeSet() map[int]bool {
	set := map[int]bool{t.root: true}
	for n := range t.parent {
		set[n] = true
	}
	return set
}

// sortedTreeNodes returns the tree's nodes in ascending order, used
// wherever the spec requires a "stable scan" for deterministic
// tie-breaking (spec §4.4.1).
func (t *Tree) sortedTreeNodes() []int {
	nodes := make([]int, 0, len(t.parent)+1)
	for n := range t.treeNodeSet() {
		nodes = append(nodes, n)
	}
	// insertion sort: trees stay small enough relative to call frequency
	// that an allocation-free sort keeps this free of sort.Slice closures.
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1] > nodes[j]; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
	return nodes
}

// pathEdgeWeights returns the underlying graph weight of each consecutive
// edge in a node-sequence path.
func (t *Tree) pathEdgeWeights(path []int) ([]int, error) {
	weights := make([]int, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		w, ok := t.graph.Weight(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrUnknownNode, path[i], path[i+1])
		}
		weights[i] = w
	}
	return weights, nil
}

// installPath adds every edge of path as a directed tree edge, oriented
// away from root (path[0] must already be a tree node).
func (t *Tree) installPath(path []int, weights []int) {
	for i := 0; i+1 < len(path); i++ {
		t.addEdge(path[i], path[i+1], weights[i])
	}
}

// AddClient subscribes c to the multicast group (spec §4.4.1). If c is
// already a tree node, this marks it a client with no structural change
// (a DegenerateEvent). Returns whether the tree's edge set changed.
func (t *Tree) AddClient(c int) (structural bool, err error) {
	if !t.graph.HasNode(c) {
		return false, fmt.Errorf("%w: %d", ErrUnknownNode, c)
	}
	if t.HasNode(c) {
		t.clients[c] = true
		return false, nil
	}

	var closestPath []int
	if t.cfg.PIMMode() {
		p, ok := t.oracle.ShortestPath(t.root, c)
		if !ok {
			return false, fmt.Errorf("%w: root %d to %d", ErrNoPath, t.root, c)
		}
		closestPath = p
	} else {
		bestLen := -1
		var bestNode int
		for _, candidate := range t.sortedTreeNodes() {
			l, ok := t.oracle.ShortestPathLength(c, candidate)
			if !ok {
				continue
			}
			if bestLen < 0 || l < bestLen {
				bestLen = l
				bestNode = candidate
			}
		}
		if bestLen < 0 {
			return false, fmt.Errorf("%w: no tree node reachable from %d", ErrNoPath, c)
		}
		p, ok := t.oracle.ShortestPath(bestNode, c)
		if !ok {
			return false, fmt.Errorf("%w: %d to %d", ErrNoPath, bestNode, c)
		}
		closestPath = p
	}

	cleaned := cleanPath(closestPath, t.treeNodeSet(), map[int]bool{c: true})
	weights, err := t.pathEdgeWeights(cleaned)
	if err != nil {
		return false, err
	}

	if t.cfg.UsePathQueue() {
		if err := t.pathIdx.AddPath(pathindex.NewPath(cleaned, weights)); err != nil {
			return false, err
		}
	}
	t.installPath(cleaned, weights)
	t.clients[c] = true
	return true, nil
}

// RemoveClient unsubscribes c from the multicast group (spec §4.4.2). A
// no-op (DegenerateEvent) if c is not currently a client. c must not be
// root.
func (t *Tree) RemoveClient(c int) (structural bool, err error) {
	if c == t.root {
		return false, ErrRemoveRoot
	}
	if !t.clients[c] {
		return false, nil
	}

	d := t.Degree(c)
	delete(t.clients, c)

	switch {
	case d >= 3:
		return false, nil
	case d == 2:
		t.pathIdx.TryMerge(c, t.IsClient)
		return false, nil
	default: // d == 1
		pathBefore, hadPath := t.pathIdx.ParentPath(c)
		node, _ := t.ascendingClean(c)
		t.updatePathIndexOnPrune(node, c, pathBefore, hadPath)
		return true, nil
	}
}

// updatePathIndexOnPrune applies Table A of spec §4.4.2: the PathIndex
// update after a d=1 ascending-prune removal. node is the first kept node
// reached climbing from c; pathBefore is parentPath[c] as it stood before
// the prune (the macro-path whose leaf-side endpoint was c, if any).
func (t *Tree) updatePathIndexOnPrune(node, c int, pathBefore *pathindex.Path, hadPath bool) {
	if !hadPath {
		return // no path-heuristic bookkeeping in effect
	}
	P := pathBefore

	switch {
	case node == t.root:
		t.pathIdx.RemovePath(P, false, t.IsClient)

	case t.Degree(node) == 1:
		if _, ok := t.pathIdx.ParentPath(node); ok {
			t.pathIdx.RemovePath(P, true, t.IsClient)
		} else {
			t.pathIdx.SplitAround(P, node, true)
		}

	case t.Degree(node) == 2:
		if _, ok := t.pathIdx.ParentPath(node); ok {
			t.pathIdx.RemovePath(P, true, t.IsClient)
		} else {
			children := t.pathIdx.ChildrenPaths(node)
			if len(children) == 1 && children[0] == P {
				t.pathIdx.RemovePath(P, false, t.IsClient)
			} else {
				t.pathIdx.SplitAround(P, node, true)
				t.pathIdx.TryMerge(node, t.IsClient)
			}
		}

	default: // degree(node) >= 3
		if P.RootSide() == node {
			t.pathIdx.RemovePath(P, false, t.IsClient)
		} else {
			t.pathIdx.SplitAround(P, node, true)
		}
	}
}
