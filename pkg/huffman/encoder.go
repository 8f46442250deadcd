package huffman

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

type packedCode struct {
	v    uint64
	n    uint8
	long Code // set when the code is longer than 64 bits
}

func (pc packedCode) write(bw *bitio.Writer) error {
	if pc.long == "" {
		return bw.WriteBits(pc.v, pc.n)
	}
	for i := 0; i < len(pc.long); i++ {
		if err := bw.WriteBool(pc.long[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the header for ft followed by the code of every symbol read
// from src, packed MSB-first. src must yield exactly the symbols ft was
// counted from. It returns the number of bytes written to w.
func Encode(w io.Writer, ft FrequencyTable, codes CodeTable, src SymbolReader) (int64, error) {
	cw := &countingWriter{w: w}
	if err := WriteHeader(cw, ft); err != nil {
		return cw.n, err
	}
	if len(ft) == 0 {
		return cw.n, nil
	}

	lookup := make(map[Symbol]packedCode, len(codes))
	for s, c := range codes {
		if v, n, ok := c.packed(); ok {
			lookup[s] = packedCode{v: v, n: n}
		} else {
			lookup[s] = packedCode{long: c}
		}
	}

	bw := bitio.NewWriter(cw)
	var count int64
	for {
		s, err := src.ReadSymbol()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cw.n, readErr(err)
		}
		pc, ok := lookup[s]
		if !ok {
			return cw.n, fmt.Errorf("%w: symbol %d has no code", ErrRead, s)
		}
		if err := pc.write(bw); err != nil {
			return cw.n, writeErr(err)
		}
		count++
	}
	if total := ft.Total(); count != total {
		return cw.n, fmt.Errorf("%w: read %d symbols, frequency table counts %d", ErrRead, count, total)
	}
	// 마지막 바이트는 하위 비트를 0으로 채움
	if err := bw.Close(); err != nil {
		return cw.n, writeErr(err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
