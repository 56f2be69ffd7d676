package mctree

import "github.com/steinertree/mctree/pathindex"

func containsNode(nodes []int, node int) bool {
	for _, n := range nodes {
		if n == node {
			return true
		}
	}
	return false
}

func reverseInts(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

// splitPathContainingNewRoot handles the case where newRoot lies interior
// to a macro-path (has no parentPath entry of its own): walk up the
// (still pre-inversion) tree parent chain until the owning path is found,
// then split it at newRoot (spec §4.4.8 step 1).
func (t *Tree) splitPathContainingNewRoot(newRoot, oldRoot int) {
	n1 := newRoot
	for {
		parent, hasParent := t.parent[n1]
		if !hasParent {
			return // n1 == oldRoot; nothing to split
		}
		for _, p := range t.pathIdx.ChildrenPaths(parent) {
			if containsNode(p.Nodes, newRoot) {
				t.pathIdx.SplitAround(p, newRoot, false)
				return
			}
		}
		n1 = parent
	}
}

// invertPathsFromNewRootToOldRoot walks upward from newRoot to oldRoot,
// collecting each owning macro-path (splitting intermediate owners as
// needed), then inverts them in root-to-leaf order (spec §4.4.8 steps
// 1-3).
func (t *Tree) invertPathsFromNewRootToOldRoot(newRoot, oldRoot int) {
	current := newRoot
	var toInvert []*pathindex.Path
	for current != oldRoot {
		p, ok := t.pathIdx.ParentPath(current)
		if !ok {
			t.splitPathContainingNewRoot(current, oldRoot)
			p, ok = t.pathIdx.ParentPath(current)
			if !ok {
				return
			}
		}
		toInvert = append(toInvert, p)
		current = p.RootSide()
	}
	for i := len(toInvert) - 1; i >= 0; i-- {
		t.invertPath(toInvert[i])
	}
}

// invertPath replaces p with a path over the same nodes in reverse order
// (spec §4.4.8 step 3: "replace (w, [n0..nk]) with (w, [nk..n0])").
func (t *Tree) invertPath(p *pathindex.Path) {
	t.pathIdx.RemovePath(p, false, t.IsClient)
	_ = t.pathIdx.AddPath(pathindex.NewPath(reverseInts(p.Nodes), reverseInts(p.EdgeWeights)))
}

// reverseChainToOldRoot inverts the directed tree edges along the node
// chain from newRoot up to oldRoot (spec §4.4.8 step 5). The chain is
// collected before any mutation because reversing an edge overwrites the
// very parent pointers a live upward walk would otherwise depend on.
func (t *Tree) reverseChainToOldRoot(newRoot, oldRoot int) {
	chain := []int{newRoot}
	cur := newRoot
	for cur != oldRoot {
		p, ok := t.parent[cur]
		if !ok {
			break
		}
		chain = append(chain, p)
		cur = p
	}
	if len(chain) < 2 {
		return
	}
	weights := make([]int, len(chain)-1)
	for i := 0; i < len(chain)-1; i++ {
		weights[i] = t.weight[chain[i]]
	}
	for i := 0; i < len(chain)-1; i++ {
		t.removeEdge(chain[i])
	}
	for i := 0; i < len(chain)-1; i++ {
		t.addEdge(chain[i], chain[i+1], weights[i])
	}
}

// reroot reorients the subtree rooted at oldRoot so that newRoot becomes
// its new attachment point, flipping every edge direction along the path
// between them (spec §4.4.8).
func (t *Tree) reroot(newRoot, oldRoot int) {
	if t.cfg.UsePathQueue() {
		if _, ok := t.pathIdx.ParentPath(newRoot); !ok {
			t.splitPathContainingNewRoot(newRoot, oldRoot)
		}
		t.invertPathsFromNewRootToOldRoot(newRoot, oldRoot)
		t.pathIdx.TryMerge(oldRoot, t.IsClient)
	}
	t.reverseChainToOldRoot(newRoot, oldRoot)
}
