package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Decode reads a container from r and writes the decoded symbols to dst,
// flushing it on success. It returns the frequency table from the header.
//
// Decoding stops once the header's total symbol count has been emitted, so
// padding bits in the last byte are never walked. When the header holds a
// single symbol the tree has no branches: one payload bit per occurrence is
// skipped and the symbol is emitted without a tree walk.
func Decode(r io.Reader, a Alphabet, dst SymbolWriter) (FrequencyTable, error) {
	br := bufio.NewReader(r)
	ft, err := ReadHeader(br, a)
	if err != nil {
		return nil, err
	}
	if len(ft) == 0 {
		if err := dst.Flush(); err != nil {
			return nil, writeErr(err)
		}
		return ft, nil
	}
	root, err := BuildTree(ft)
	if err != nil {
		return nil, err
	}

	total := ft.Total()
	bits := bitio.NewReader(br)
	var emitted int64

	switch root := root.(type) {
	case *Leaf:
		for emitted < total {
			if _, err := bits.ReadBool(); err != nil {
				return nil, payloadErr(err, emitted, total)
			}
			if err := dst.WriteSymbol(root.Symbol); err != nil {
				return nil, writeErr(err)
			}
			emitted++
		}
	case *Internal:
		cur := root
		for emitted < total {
			bit, err := bits.ReadBool()
			if err != nil {
				return nil, payloadErr(err, emitted, total)
			}
			next := cur.Left
			if bit {
				next = cur.Right
			}
			switch n := next.(type) {
			case *Internal:
				cur = n
			case *Leaf:
				if err := dst.WriteSymbol(n.Symbol); err != nil {
					return nil, writeErr(err)
				}
				emitted++
				cur = root
			}
		}
	}

	if err := dst.Flush(); err != nil {
		return nil, writeErr(err)
	}
	return ft, nil
}

func payloadErr(err error, emitted, total int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: decoded %d of %d symbols", ErrTruncatedPayload, emitted, total)
	}
	return readErr(err)
}
