// Package pathindex implements C3: a priority queue of macro-paths (maximal
// simple chains of degree-2 non-client nodes) served heaviest first, with
// the side indices and split/merge protocol that keep it consistent across
// every tree mutation (spec §4.3).
package pathindex

import "errors"

// ErrDegeneratePath is returned by AddPath when a path's root-side and
// leaf-side endpoints coincide (a single node cannot form a macro-path).
var ErrDegeneratePath = errors.New("pathindex: root-side and leaf-side endpoints coincide")

const notInHeap = -1

// Path is a macro-path: a node sequence n0..nk together with the true
// underlying graph weight of each of its k edges. Weight is always the sum
// of EdgeWeights; key is a derived ordering value that may differ from
// Weight (the AVERAGED_MOST_EXPENSIVE_PATH heuristic divides by path
// length), used only to order the heap — tree weight accounting never
// reads key.
type Path struct {
	Nodes       []int
	EdgeWeights []int
	Weight      int

	key   float64
	index int
}

// NewPath builds a Path from a node sequence and the true weight of each
// consecutive edge. len(edgeWeights) must equal len(nodes)-1.
func NewPath(nodes []int, edgeWeights []int) *Path {
	p := &Path{
		Nodes:       append([]int(nil), nodes...),
		EdgeWeights: append([]int(nil), edgeWeights...),
		index:       notInHeap,
	}
	for _, w := range edgeWeights {
		p.Weight += w
	}
	return p
}

// RootSide returns n0, the path's root-side endpoint.
func (p *Path) RootSide() int { return p.Nodes[0] }

// LeafSide returns nk, the path's leaf-side endpoint.
func (p *Path) LeafSide() int { return p.Nodes[len(p.Nodes)-1] }

// Edges returns the number of directed edges in the path (k).
func (p *Path) Edges() int { return len(p.Nodes) - 1 }

// Interior returns the path's interior nodes n1..nk-1 (empty for a
// single-edge path).
func (p *Path) Interior() []int {
	if len(p.Nodes) <= 2 {
		return nil
	}
	return p.Nodes[1 : len(p.Nodes)-1]
}

// KeyFunc computes the heap-ordering key for a path. Tree weight
// accounting always uses Path.Weight directly; KeyFunc affects selection
// order only (spec §4.4.9).
type KeyFunc func(p *Path) float64

// SumWeightKey orders paths by their true total weight — the default used
// by MOST_EXPENSIVE_PATH.
func SumWeightKey(p *Path) float64 { return float64(p.Weight) }

// AveragedWeightKey orders paths by (sum of weights / edge count) − 1, used
// by AVERAGED_MOST_EXPENSIVE_PATH to deprioritise long, low-average paths
// (spec §4.4.4, §4.4.9).
func AveragedWeightKey(p *Path) float64 {
	return float64(p.Weight)/float64(p.Edges()) - 1
}

func indexOfNode(nodes []int, node int) int {
	for i, n := range nodes {
		if n == node {
			return i
		}
	}
	return -1
}
