package mctree

// Snapshot returns an independent deep copy of the tree: nodes, directed
// edges, client set, weight, tabu index and path index state (spec §4.5,
// §9 Design Notes). The NetworkGraph, oracle and rng are shared by
// reference with the original, matching spec §5's "shared resources"
// rule — only the tree's own mutable state is cloned.
func (t *Tree) Snapshot() *Tree {
	cp := &Tree{
		graph:        t.graph,
		oracle:       t.oracle,
		cfg:          t.cfg,
		rng:          t.rng,
		root:         t.root,
		clients:      make(map[int]bool, len(t.clients)),
		parent:       make(map[int]int, len(t.parent)),
		children:     make(map[int]map[int]bool, len(t.children)),
		weight:       make(map[int]int, len(t.weight)),
		totalWeight:  t.totalWeight,
		improvements: t.improvements,
		tabuIdx:      t.tabuIdx.Clone(),
		pathIdx:      t.pathIdx.Clone(),
	}
	for n, v := range t.clients {
		cp.clients[n] = v
	}
	for n, p := range t.parent {
		cp.parent[n] = p
	}
	for n, kids := range t.children {
		cp.children[n] = make(map[int]bool, len(kids))
		for k, v := range kids {
			cp.children[n][k] = v
		}
	}
	for n, w := range t.weight {
		cp.weight[n] = w
	}
	return cp
}
