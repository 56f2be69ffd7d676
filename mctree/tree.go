// Package mctree implements C4: a rooted arborescence over a subset of a
// NetworkGraph's nodes, maintaining the client set, total weight, a
// TabuIndex and a PathIndex, and exposing AddClient, RemoveClient and
// ImproveOnce (spec §4.4).
package mctree

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/steinertree/mctree/config"
	"github.com/steinertree/mctree/network"
	"github.com/steinertree/mctree/pathindex"
	"github.com/steinertree/mctree/tabu"
)

// Sentinel errors for tree construction and mutation.
var (
	// ErrUnknownNode indicates an operation referenced a node absent from
	// the underlying NetworkGraph.
	ErrUnknownNode = errors.New("mctree: unknown node")

	// ErrRemoveRoot indicates an attempt to remove the tree's root client.
	ErrRemoveRoot = errors.New("mctree: cannot remove the root")

	// ErrNoPath indicates the oracle has no path between two nodes that
	// the tree needs connected.
	ErrNoPath = errors.New("mctree: no path available")
)

// InvariantError reports a detected breach of I1-I4 (spec §7
// InvariantBreach): fatal by convention, since a breach indicates a bug
// in the core rather than a data problem. Validate returns it instead of
// panicking so callers can log the tree snapshot before aborting.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("mctree: invariant %s violated: %s", e.Invariant, e.Detail)
}

// Edge is an ordered tree edge (Parent, Child) carrying the underlying
// graph weight.
type Edge struct {
	Parent, Child int
	Weight        int
}

// Tree is the MulticastTree of spec §3-§4.4: a directed arborescence
// rooted at root, spanning the current client set, backed by a TabuIndex
// and a PathIndex.
type Tree struct {
	graph  *network.Graph
	oracle *network.Oracle
	cfg    config.Config
	rng    *rand.Rand

	root    int
	clients map[int]bool

	// parent[n] is n's unique tree parent; absent for root. children[n]
	// is the set of n's tree children, used to compute degree in O(1).
	parent   map[int]int
	children map[int]map[int]bool
	weight   map[int]int // weight of the edge (parent[n], n)

	totalWeight  int
	improvements int

	tabuIdx *tabu.Index
	pathIdx *pathindex.Index
}

// New constructs a single-node tree containing only root (spec §3
// MulticastTree lifecycle). graph and oracle may be shared by reference
// across many trees (spec §5).
func New(graph *network.Graph, oracle *network.Oracle, root int, cfg config.Config, rng *rand.Rand) (*Tree, error) {
	if !graph.HasNode(root) {
		return nil, fmt.Errorf("%w: root %d", ErrUnknownNode, root)
	}
	keyFunc := pathindex.SumWeightKey
	if cfg.SelectionHeuristic() == config.AveragedMostExpensivePath {
		keyFunc = pathindex.AveragedWeightKey
	}
	return &Tree{
		graph:    graph,
		oracle:   oracle,
		cfg:      cfg,
		rng:      rng,
		root:     root,
		clients:  map[int]bool{root: true},
		parent:   map[int]int{},
		children: map[int]map[int]bool{root: {}},
		weight:   map[int]int{},
		tabuIdx:  tabu.NewIndex(),
		pathIdx:  pathindex.NewIndex(keyFunc),
	}, nil
}

// Root returns the tree's fixed root node.
func (t *Tree) Root() int { return t.root }

// Weight returns the tree's current total edge weight.
func (t *Tree) Weight() int { return t.totalWeight }

// Improvements returns the number of improveOnce calls made so far.
func (t *Tree) Improvements() int { return t.improvements }

// IsClient reports whether n is currently a client (including root).
func (t *Tree) IsClient(n int) bool { return t.clients[n] }

// HasNode reports whether n is currently part of the tree.
func (t *Tree) HasNode(n int) bool {
	if n == t.root {
		return true
	}
	_, ok := t.parent[n]
	return ok
}

// Degree returns n's tree degree: its child count, plus one for the
// parent edge if n is not root.
func (t *Tree) Degree(n int) int {
	d := len(t.children[n])
	if n != t.root {
		d++
	}
	return d
}

// ParentOf returns n's tree parent and whether n has one (false for root
// or for nodes absent from the tree).
func (t *Tree) ParentOf(n int) (int, bool) {
	p, ok := t.parent[n]
	return p, ok
}

// Children returns n's tree children as a slice (order unspecified).
func (t *Tree) Children(n int) []int {
	out := make([]int, 0, len(t.children[n]))
	for c := range t.children[n] {
		out = append(out, c)
	}
	return out
}

// Edges returns every directed edge currently in the tree.
func (t *Tree) Edges() []Edge {
	out := make([]Edge, 0, len(t.parent))
	for child, parent := range t.parent {
		out = append(out, Edge{Parent: parent, Child: child, Weight: t.weight[child]})
	}
	return out
}

// NodeCount returns the number of nodes currently in the tree.
func (t *Tree) NodeCount() int { return len(t.parent) + 1 }

// TabuDecay decrements every tabu entry's TTL by one, dropping expired
// entries (spec §4.5: called once per improvement round).
func (t *Tree) TabuDecay() { t.tabuIdx.Decay() }

// TabuClear empties the tabu list (spec §4.5: called at the start of
// every improveTree run).
func (t *Tree) TabuClear() { t.tabuIdx.Clear() }

func (t *Tree) isTabu(from, to int) bool { return t.tabuIdx.Contains(tabu.Edge{From: from, To: to}) }

// addEdge installs a directed edge (parent -> child) with the given
// weight, updating all bookkeeping maps.
func (t *Tree) addEdge(parent, child, w int) {
	t.parent[child] = parent
	if t.children[parent] == nil {
		t.children[parent] = map[int]bool{}
	}
	t.children[parent][child] = true
	if t.children[child] == nil {
		t.children[child] = map[int]bool{}
	}
	t.weight[child] = w
	t.totalWeight += w
}

// removeEdge deletes the directed edge ending at child, updating all
// bookkeeping maps.
func (t *Tree) removeEdge(child int) {
	parent := t.parent[child]
	delete(t.children[parent], child)
	delete(t.parent, child)
	t.totalWeight -= t.weight[child]
	delete(t.weight, child)
}
