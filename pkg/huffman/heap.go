package huffman

// MinHeap orders nodes by weight alone; equal weights keep whatever order
// the backing array gives them.
type MinHeap struct {
	arr []Node
}

func NewMinHeap(capacity int) *MinHeap {
	return &MinHeap{arr: make([]Node, 0, capacity)}
}

func (h *MinHeap) Len() int { return len(h.arr) }

func (h *MinHeap) Push(n Node) {
	h.arr = append(h.arr, n)
	i := len(h.arr) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.arr[parent].Weight() <= h.arr[i].Weight() { // parent <= child 이면 stop
			return
		}
		h.arr[parent], h.arr[i] = h.arr[i], h.arr[parent]
		i = parent
	}
}

// Pop removes the lightest node, or returns nil when the heap is empty.
func (h *MinHeap) Pop() Node {
	if len(h.arr) == 0 {
		return nil
	}
	out := h.arr[0]
	last := len(h.arr) - 1
	h.arr[0] = h.arr[last]
	h.arr[last] = nil
	h.arr = h.arr[:last]

	parent := 0
	for {
		child := 2*parent + 1
		if child >= len(h.arr) {
			break
		}
		if child+1 < len(h.arr) && h.arr[child+1].Weight() < h.arr[child].Weight() {
			child++
		}
		if h.arr[parent].Weight() <= h.arr[child].Weight() {
			break
		}
		h.arr[parent], h.arr[child] = h.arr[child], h.arr[parent]
		parent = child
	}
	return out
}
