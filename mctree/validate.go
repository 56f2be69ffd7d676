package mctree

import "fmt"

// Validate checks invariants I1-I3 (spec §3) and returns an
// *InvariantError describing the first violation found, or nil if the
// tree is consistent. I4 (the PathIndex side-index endpoint rule) is not
// checked. A breach indicates a bug in the core rather than a
// data problem (spec §7 InvariantBreach) and callers are expected to
// abort rather than continue operating on the tree.
func (t *Tree) Validate() error {
	if err := t.validateReachability(); err != nil {
		return err
	}
	if err := t.validateWeight(); err != nil {
		return err
	}
	if err := t.validatePathIndex(); err != nil {
		return err
	}
	return nil
}

// validateReachability checks I1: every client reachable from root, the
// tree has exactly |edges|+1 nodes, and it is loop-free.
func (t *Tree) validateReachability() error {
	visited := t.reachable(t.root)
	if len(visited) != len(t.parent)+1 {
		return &InvariantError{
			Invariant: "I1",
			Detail:    fmt.Sprintf("reachable node count %d != |edges|+1 = %d", len(visited), len(t.parent)+1),
		}
	}
	for c := range t.clients {
		if !visited[c] {
			return &InvariantError{Invariant: "I1", Detail: fmt.Sprintf("client %d unreachable from root", c)}
		}
	}
	return nil
}

// validateWeight checks I2: weight equals the sum of current edge
// weights.
func (t *Tree) validateWeight() error {
	sum := 0
	for _, w := range t.weight {
		sum += w
	}
	if sum != t.totalWeight {
		return &InvariantError{
			Invariant: "I2",
			Detail:    fmt.Sprintf("tracked weight %d != edge-sum weight %d", t.totalWeight, sum),
		}
	}
	return nil
}

// validatePathIndex checks I3: every interior node of every macro-path is
// a non-client of degree exactly 2.
func (t *Tree) validatePathIndex() error {
	for _, p := range t.pathIdx.AllPaths() {
		for _, n := range p.Interior() {
			if t.clients[n] {
				return &InvariantError{Invariant: "I3", Detail: fmt.Sprintf("interior node %d of a macro-path is a client", n)}
			}
			if t.Degree(n) != 2 {
				return &InvariantError{Invariant: "I3", Detail: fmt.Sprintf("interior node %d of a macro-path has degree %d", n, t.Degree(n))}
			}
		}
	}
	return nil
}

// ValidatePIM checks the PIM-mode invariant: every client's tree path to
// root must equal the graph's precomputed shortest path, since pim_mode
// installs only root-to-client shortest paths and never runs the
// Improver (spec §4.4.1, §7).
func (t *Tree) ValidatePIM() error {
	for c := range t.clients {
		if c == t.root {
			continue
		}
		treePath := t.pathToRoot(c)
		want, ok := t.oracle.ShortestPath(t.root, c)
		if !ok {
			return &InvariantError{Invariant: "PIM", Detail: fmt.Sprintf("no oracle path from root to client %d", c)}
		}
		if !nodePathsEqual(reverseInts(treePath), want) {
			return &InvariantError{Invariant: "PIM", Detail: fmt.Sprintf("client %d's tree path diverges from its shortest path", c)}
		}
	}
	return nil
}

// pathToRoot returns the node sequence from n up to root, following
// parent pointers (n first, root last).
func (t *Tree) pathToRoot(n int) []int {
	path := []int{n}
	cur := n
	for cur != t.root {
		p, ok := t.parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	return path
}
