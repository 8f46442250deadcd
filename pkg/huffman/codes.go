package huffman

// Code is a root-to-leaf path: '0' for left, '1' for right.
type Code string

// CodeTable maps every leaf symbol to its code.
type CodeTable map[Symbol]Code

// GenerateCodes walks the tree with an explicit stack so that deep, skewed
// trees do not grow the goroutine stack. A lone leaf gets the code "0".
func GenerateCodes(root Node) CodeTable {
	codes := make(CodeTable)
	if root == nil {
		return codes
	}
	if l, ok := root.(*Leaf); ok {
		codes[l.Symbol] = "0"
		return codes
	}
	type frame struct {
		n    Node
		path string
	}
	stack := []frame{{root, ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := f.n.(type) {
		case *Leaf:
			codes[n.Symbol] = Code(f.path)
		case *Internal:
			stack = append(stack, frame{n.Right, f.path + "1"}, frame{n.Left, f.path + "0"})
		}
	}
	return codes
}

// packed returns the code as an integer with the first bit most significant.
// ok is false when the code does not fit in 64 bits.
func (c Code) packed() (v uint64, n uint8, ok bool) {
	if len(c) > 64 {
		return 0, 0, false
	}
	for i := 0; i < len(c); i++ {
		v <<= 1
		if c[i] == '1' {
			v |= 1
		}
	}
	return v, uint8(len(c)), true
}
