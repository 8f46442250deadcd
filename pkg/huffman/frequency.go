package huffman

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

// FrequencyTable maps each symbol seen at least once to its count.
type FrequencyTable map[Symbol]int64

func (ft FrequencyTable) Distinct() int { return len(ft) }

// Total is the number of symbols the table was counted from.
func (ft FrequencyTable) Total() int64 {
	var n int64
	for _, f := range ft {
		n += f
	}
	return n
}

// Symbols returns the table's symbols in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ft))
	for s := range ft {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// CountFrequencies consumes r to EOF in a single forward pass.
func CountFrequencies(r SymbolReader) (FrequencyTable, error) {
	ft := make(FrequencyTable)
	for {
		s, err := r.ReadSymbol()
		if err == io.EOF {
			return ft, nil
		}
		if err != nil {
			return nil, readErr(err)
		}
		ft[s]++
	}
}

func readErr(err error) error {
	if errors.Is(err, ErrRead) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRead, err)
}

func writeErr(err error) error {
	if errors.Is(err, ErrWrite) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrWrite, err)
}
