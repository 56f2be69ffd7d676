package network

import (
	"container/heap"
	"sort"
)

// Oracle holds the precomputed, read-only shortest-path tables SP and SPL
// described in spec §4.1. SP[u][v] is the canonical shortest node sequence
// from u to v; SPL[u][v] is its integer length. The core only ever reads
// the first (and only, since k=1) path; the k_shortest_paths parameter is
// accepted by config for forward compatibility but unused here.
type Oracle struct {
	sp  map[int]map[int][]int
	spl map[int]map[int]int
}

// BuildOracle computes all-pairs shortest paths over g using one Dijkstra
// run per source node (k=1, per spec §4.1). Ties in path selection are
// broken by visiting neighbors in ascending node-ID order, making the
// result deterministic across runs and platforms.
func BuildOracle(g *Graph) *Oracle {
	o := &Oracle{
		sp:  make(map[int]map[int][]int, len(g.nodes)),
		spl: make(map[int]map[int]int, len(g.nodes)),
	}
	for _, src := range g.nodes {
		prev, dist := dijkstraFrom(g, src)
		o.sp[src] = make(map[int][]int, len(g.nodes))
		o.spl[src] = make(map[int]int, len(g.nodes))
		for _, dst := range g.nodes {
			d, ok := dist[dst]
			if !ok {
				continue
			}
			o.sp[src][dst] = reconstructPath(prev, src, dst)
			o.spl[src][dst] = d
		}
	}
	return o
}

// ShortestPath returns the canonical node sequence from u to v and whether
// one exists.
func (o *Oracle) ShortestPath(u, v int) ([]int, bool) {
	m, ok := o.sp[u]
	if !ok {
		return nil, false
	}
	p, ok := m[v]
	return p, ok
}

// ShortestPathLength returns the path length (sum of edge weights) from u
// to v and whether a path exists.
func (o *Oracle) ShortestPathLength(u, v int) (int, bool) {
	m, ok := o.spl[u]
	if !ok {
		return 0, false
	}
	l, ok := m[v]
	return l, ok
}

// heapItem is one entry in the Dijkstra frontier, grounded on
// dijkstra.Dijkstra's lazy-decrease-key min-heap (duplicates pushed,
// stale entries skipped on pop).
type heapItem struct {
	node int
	dist int
}

type priorityQueue []heapItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node // deterministic tie-break
}
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(heapItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstraFrom computes single-source shortest distances and predecessors
// from src over g. Neighbors are relaxed in ascending node-ID order so
// that ties between equal-length paths resolve deterministically.
func dijkstraFrom(g *Graph, src int) (prev map[int]int, dist map[int]int) {
	dist = map[int]int{src: 0}
	prev = map[int]int{}
	visited := map[int]bool{}

	pq := &priorityQueue{{node: src, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(heapItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		neighbors := g.Neighbors(cur.node)
		ids := make([]int, 0, len(neighbors))
		for n := range neighbors {
			ids = append(ids, n)
		}
		sort.Ints(ids)

		for _, nbr := range ids {
			w := neighbors[nbr]
			nd := cur.dist + w
			if d, ok := dist[nbr]; !ok || nd < d {
				dist[nbr] = nd
				prev[nbr] = cur.node
				heap.Push(pq, heapItem{node: nbr, dist: nd})
			}
		}
	}
	return prev, dist
}

// reconstructPath walks prev backwards from v to u and returns the node
// sequence [u, ..., v]. Returns [u] when u == v.
func reconstructPath(prev map[int]int, u, v int) []int {
	if u == v {
		return []int{u}
	}
	path := []int{v}
	cur := v
	for cur != u {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
