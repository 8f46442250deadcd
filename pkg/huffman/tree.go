package huffman

// Node is either a *Leaf or an *Internal.
type Node interface {
	Weight() int64
	node()
}

type Leaf struct {
	Symbol Symbol
	Freq   int64
}

// Internal always owns exactly two children.
type Internal struct {
	Freq        int64
	Left, Right Node
}

func (l *Leaf) Weight() int64     { return l.Freq }
func (n *Internal) Weight() int64 { return n.Freq }

func (*Leaf) node()     {}
func (*Internal) node() {}

/*** ---------- 트리 구성 (심볼 오름차순으로 push) ---------- ***/

// BuildTree returns the root of a Huffman tree for ft. A table with a single
// entry yields a lone *Leaf.
func BuildTree(ft FrequencyTable) (Node, error) {
	if len(ft) == 0 {
		return nil, ErrEmptyInput
	}
	h := NewMinHeap(len(ft))
	for _, s := range ft.Symbols() {
		h.Push(&Leaf{Symbol: s, Freq: ft[s]})
	}
	for h.Len() > 1 {
		a := h.Pop()
		b := h.Pop()
		h.Push(&Internal{Freq: a.Weight() + b.Weight(), Left: a, Right: b}) // a=left, b=right
	}
	return h.Pop(), nil
}

// WeightedPathLength is the sum over leaves of frequency times depth.
func WeightedPathLength(root Node) int64 {
	type item struct {
		n     Node
		depth int64
	}
	var total int64
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := it.n.(type) {
		case *Leaf:
			total += n.Freq * it.depth
		case *Internal:
			stack = append(stack, item{n.Left, it.depth + 1}, item{n.Right, it.depth + 1})
		}
	}
	return total
}
