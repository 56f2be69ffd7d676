package pathindex

import (
	"container/heap"
	"math/rand"
)

// ClientFunc reports whether node is currently a tree client.
type ClientFunc func(node int) bool

// DegreeFunc reports a node's current tree degree (in + out edges).
type DegreeFunc func(node int) int

// TabuFunc reports whether the directed edge (from, to) is currently tabu.
type TabuFunc func(from, to int) bool

// Index is the PathIndex described in spec §4.3: a max-heap of macro-paths
// plus the parentPath/childrenPaths side indices.
type Index struct {
	heap          pathHeap
	parentPath    map[int]*Path
	childrenPaths map[int][]*Path
	keyFunc       KeyFunc
}

// NewIndex returns an empty Index. keyFunc determines heap ordering;
// pass SumWeightKey for MOST_EXPENSIVE_PATH or AveragedWeightKey for
// AVERAGED_MOST_EXPENSIVE_PATH (spec §4.4.4).
func NewIndex(keyFunc KeyFunc) *Index {
	return &Index{
		parentPath:    make(map[int]*Path),
		childrenPaths: make(map[int][]*Path),
		keyFunc:       keyFunc,
	}
}

// Len reports the number of macro-paths currently indexed.
func (ix *Index) Len() int { return ix.heap.Len() }

// ParentPath returns the macro-path for which node is the leaf-side
// endpoint, if any.
func (ix *Index) ParentPath(node int) (*Path, bool) {
	p, ok := ix.parentPath[node]
	return p, ok
}

// ChildrenPaths returns the macro-paths for which node is the root-side
// endpoint.
func (ix *Index) ChildrenPaths(node int) []*Path {
	return ix.childrenPaths[node]
}

func (ix *Index) recompute(p *Path) { p.key = ix.keyFunc(p) }

// AddPath pushes p onto the heap and updates both side indices (spec
// §4.3 addPath). Fails with ErrDegeneratePath if n0 == nk.
func (ix *Index) AddPath(p *Path) error {
	if p.RootSide() == p.LeafSide() {
		return ErrDegeneratePath
	}
	ix.recompute(p)
	heap.Push(&ix.heap, p)
	ix.parentPath[p.LeafSide()] = p
	ix.childrenPaths[p.RootSide()] = append(ix.childrenPaths[p.RootSide()], p)
	return nil
}

// removeSideIndices strips p from parentPath/childrenPaths without
// touching the heap.
func (ix *Index) removeSideIndices(p *Path) {
	if ix.parentPath[p.LeafSide()] == p {
		delete(ix.parentPath, p.LeafSide())
	}
	children := ix.childrenPaths[p.RootSide()]
	for i, c := range children {
		if c == p {
			children = append(children[:i], children[i+1:]...)
			break
		}
	}
	if len(children) == 0 {
		delete(ix.childrenPaths, p.RootSide())
	} else {
		ix.childrenPaths[p.RootSide()] = children
	}
}

// detach removes p from the heap (if still present) and from both side
// indices.
func (ix *Index) detach(p *Path) {
	if p.index != notInHeap {
		heap.Remove(&ix.heap, p.index)
	}
	ix.removeSideIndices(p)
}

// RemovePath removes p entirely. If tryMerge, it then attempts to
// coalesce the paths meeting at p's former endpoints (spec §4.3
// removePath).
func (ix *Index) RemovePath(p *Path, tryMerge bool, isClient ClientFunc) {
	ix.detach(p)
	if tryMerge {
		ix.TryMerge(p.RootSide(), isClient)
		ix.TryMerge(p.LeafSide(), isClient)
	}
}

// SplitAround replaces p with top = p[0..i] and, unless dropBot, bot =
// p[i..], where i is node's position in p's node list (spec §4.3
// splitAround). Returns the new top and bot paths (bot is nil when
// dropped or when node is already p's leaf-side endpoint).
func (ix *Index) SplitAround(p *Path, node int, dropBot bool) (top, bot *Path) {
	i := indexOfNode(p.Nodes, node)
	if i < 0 {
		return nil, nil
	}
	ix.detach(p)

	top = NewPath(p.Nodes[:i+1], p.EdgeWeights[:i])
	_ = ix.AddPath(top)

	if !dropBot && i < len(p.Nodes)-1 {
		bot = NewPath(p.Nodes[i:], p.EdgeWeights[i:])
		_ = ix.AddPath(bot)
	}
	return top, bot
}

// TryMerge concatenates the macro-path ending at node with the macro-path
// starting at node, provided node is not a client and exactly one path
// meets on each side (spec §4.3 tryMerge). Returns the merged path, or
// nil if no merge happened.
func (ix *Index) TryMerge(node int, isClient ClientFunc) *Path {
	if isClient(node) {
		return nil
	}
	children := ix.childrenPaths[node]
	parent, hasParent := ix.parentPath[node]
	if !hasParent || len(children) != 1 {
		return nil
	}
	child := children[0]

	ix.detach(parent)
	ix.detach(child)

	nodes := append(append([]int(nil), parent.Nodes...), child.Nodes[1:]...)
	weights := append(append([]int(nil), parent.EdgeWeights...), child.EdgeWeights...)
	merged := NewPath(nodes, weights)
	_ = ix.AddPath(merged)
	return merged
}

func firstInvalidInterior(p *Path, isClient ClientFunc, degree DegreeFunc) (int, bool) {
	for _, n := range p.Interior() {
		if isClient(n) || degree(n) != 2 {
			return n, true
		}
	}
	return 0, false
}

func anyEdgeTabu(p *Path, isTabu TabuFunc) bool {
	for i := 0; i+1 < len(p.Nodes); i++ {
		if isTabu(p.Nodes[i], p.Nodes[i+1]) {
			return true
		}
	}
	return false
}

// PopBestValid implements the lazy-invalidation selection protocol of
// spec §4.3: pop entries from the heap until a valid path is found or up
// to maxCandidates valid paths have been collected. An interior node that
// has become a client or changed degree triggers a splitAround and the
// scan continues; a path with any tabu edge is set aside and restored to
// the heap unconditionally at the end. Among collected valid candidates
// one is chosen uniformly at random; the rest are re-pushed. Returns nil
// if the heap is exhausted without finding a valid candidate.
func (ix *Index) PopBestValid(maxCandidates int, isClient ClientFunc, degree DegreeFunc, isTabu TabuFunc, rng *rand.Rand) *Path {
	var candidates []*Path
	var tabuSetAside []*Path

	for ix.heap.Len() > 0 && len(candidates) < maxCandidates {
		p := heap.Pop(&ix.heap).(*Path)

		if badNode, invalid := firstInvalidInterior(p, isClient, degree); invalid {
			ix.removeSideIndices(p)
			top := NewPath(p.Nodes[:indexOfNode(p.Nodes, badNode)+1], p.EdgeWeights[:indexOfNode(p.Nodes, badNode)])
			_ = ix.AddPath(top)
			i := indexOfNode(p.Nodes, badNode)
			if i < len(p.Nodes)-1 {
				bot := NewPath(p.Nodes[i:], p.EdgeWeights[i:])
				_ = ix.AddPath(bot)
			}
			continue
		}

		if anyEdgeTabu(p, isTabu) {
			tabuSetAside = append(tabuSetAside, p)
			continue
		}

		candidates = append(candidates, p)
	}

	var chosen *Path
	if len(candidates) > 0 {
		chosen = candidates[rng.Intn(len(candidates))]
		for _, p := range candidates {
			if p != chosen {
				heap.Push(&ix.heap, p)
			}
		}
	}
	for _, p := range tabuSetAside {
		heap.Push(&ix.heap, p)
	}
	return chosen
}

// AllPaths returns every macro-path currently indexed, in unspecified
// order (test/diagnostic helper).
func (ix *Index) AllPaths() []*Path {
	out := make([]*Path, len(ix.heap))
	copy(out, ix.heap)
	return out
}

// Clone returns an independent deep copy of the index, used by
// mctree.Tree.Snapshot so the original and the copy never share mutable
// state (spec §9).
func (ix *Index) Clone() *Index {
	cp := NewIndex(ix.keyFunc)
	old2new := make(map[*Path]*Path, ix.heap.Len())
	for _, p := range ix.heap {
		np := &Path{
			Nodes:       append([]int(nil), p.Nodes...),
			EdgeWeights: append([]int(nil), p.EdgeWeights...),
			Weight:      p.Weight,
		}
		old2new[p] = np
		_ = cp.AddPath(np)
	}
	for node, p := range ix.parentPath {
		cp.parentPath[node] = old2new[p]
	}
	for node, ps := range ix.childrenPaths {
		cps := make([]*Path, len(ps))
		for i, p := range ps {
			cps[i] = old2new[p]
		}
		cp.childrenPaths[node] = cps
	}
	return cp
}
