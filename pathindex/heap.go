package pathindex

// pathHeap implements container/heap.Interface as a max-heap ordered on
// Path.key. Each Path records its own slice position in Path.index, so a
// path can be taken out of the middle of the heap with heap.Remove.
type pathHeap []*Path

func (h pathHeap) Len() int { return len(h) }

func (h pathHeap) Less(i, j int) bool { return h[i].key > h[j].key }

func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x interface{}) {
	p := x.(*Path)
	p.index = len(*h)
	*h = append(*h, p)
}

func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	p.index = notInHeap
	*h = old[:n-1]
	return p
}
