// Package topogen builds small synthetic network topologies for scenario
// testing and the `mctreesim gen` CLI subcommand: a grid, a complete graph,
// and a random-sparse graph, each returned in the (nodes, edges) shape
// network.New expects. Grounded on networkgraph.py's own test fixtures,
// which build exactly these three shapes by hand for unit tests.
package topogen

import (
	"fmt"
	"math/rand"

	"github.com/steinertree/mctree/network"
)

// Kind selects which generator produces the synthetic topology.
type Kind string

const (
	Grid         Kind = "GRID"
	Complete     Kind = "COMPLETE"
	RandomSparse Kind = "RANDOM_SPARSE"
)

// Params configures the chosen Kind. Only the fields relevant to Kind are
// read; Rows/Cols for GRID, N for COMPLETE and RANDOM_SPARSE, P for
// RANDOM_SPARSE.
type Params struct {
	Rows, Cols int
	N          int
	P          float64
	Seed       int64
}

// Generate builds a weighted undirected topology of the requested kind and
// returns it in the (nodes, edges) shape network.New consumes. Edge weights
// are drawn from [1,10] by a seeded RNG so the same Params always produce
// the same topology.
func Generate(kind Kind, p Params) ([]int, []network.Edge, error) {
	rng := rand.New(rand.NewSource(p.Seed))

	switch kind {
	case Grid:
		if p.Rows <= 0 || p.Cols <= 0 {
			return nil, nil, fmt.Errorf("topogen: GRID requires rows>0 and cols>0")
		}
		nodes, edges := grid(p.Rows, p.Cols, rng)
		return nodes, edges, nil
	case Complete:
		if p.N <= 0 {
			return nil, nil, fmt.Errorf("topogen: COMPLETE requires n>0")
		}
		nodes, edges := complete(p.N, rng)
		return nodes, edges, nil
	case RandomSparse:
		if p.N <= 0 {
			return nil, nil, fmt.Errorf("topogen: RANDOM_SPARSE requires n>0")
		}
		nodes, edges := randomSparse(p.N, p.P, rng)
		return nodes, edges, nil
	default:
		return nil, nil, fmt.Errorf("topogen: unknown kind %q", kind)
	}
}

func randomWeight(rng *rand.Rand) int { return 1 + rng.Intn(10) }

// grid lays out rows*cols nodes on a lattice, id = r*cols+c, connecting each
// node to its right and down neighbor.
func grid(rows, cols int, rng *rand.Rand) ([]int, []network.Edge) {
	n := rows * cols
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	var edges []network.Edge
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := r*cols + c
			if c+1 < cols {
				edges = append(edges, network.Edge{U: id, V: id + 1, Weight: randomWeight(rng)})
			}
			if r+1 < rows {
				edges = append(edges, network.Edge{U: id, V: id + cols, Weight: randomWeight(rng)})
			}
		}
	}
	return nodes, edges
}

// complete connects every pair of n nodes.
func complete(n int, rng *rand.Rand) ([]int, []network.Edge) {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	var edges []network.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, network.Edge{U: i, V: j, Weight: randomWeight(rng)})
		}
	}
	return nodes, edges
}

// randomSparse includes each of the n*(n-1)/2 possible edges independently
// with probability p, then adds a path 0-1-...-n-1 to guarantee
// connectivity (a disconnected topology has no Steiner tree).
func randomSparse(n int, p float64, rng *rand.Rand) ([]int, []network.Edge) {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	present := make(map[[2]int]bool)
	var edges []network.Edge
	addEdge := func(u, v int) {
		key := [2]int{u, v}
		if present[key] {
			return
		}
		present[key] = true
		edges = append(edges, network.Edge{U: u, V: v, Weight: randomWeight(rng)})
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				addEdge(i, j)
			}
		}
	}
	for i := 0; i+1 < n; i++ {
		addEdge(i, i+1)
	}
	return nodes, edges
}
