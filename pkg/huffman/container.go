package huffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Container layout, all integers big-endian:
//
//	int32   distinct symbol count N
//	N x     uint16 symbol, int32 frequency (> 0)
//	payload packed bits, MSB-first, final byte zero-padded
const entrySize = 2 + 4

// WriteHeader writes the frequency table in ascending symbol order.
func WriteHeader(w io.Writer, ft FrequencyTable) error {
	buf := make([]byte, 4, 4+entrySize*len(ft))
	binary.BigEndian.PutUint32(buf, uint32(len(ft)))
	for _, s := range ft.Symbols() {
		f := ft[s]
		if f > math.MaxInt32 {
			return fmt.Errorf("%w: symbol %d occurs %d times", ErrFrequencyOverflow, s, f)
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(s))
		buf = binary.BigEndian.AppendUint32(buf, uint32(f))
	}
	if _, err := w.Write(buf); err != nil {
		return writeErr(err)
	}
	return nil
}

// ReadHeader parses the frequency table that starts a container.
func ReadHeader(r io.Reader, a Alphabet) (FrequencyTable, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, headerErr(err, "symbol count")
	}
	if n < 0 || int(n) > a.Size() {
		return nil, fmt.Errorf("%w: %d distinct symbols, alphabet holds %d", ErrCorruptHeader, n, a.Size())
	}
	ft := make(FrequencyTable, n)
	var entry [entrySize]byte
	for i := int32(0); i < n; i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, headerErr(err, fmt.Sprintf("entry %d", i))
		}
		s := Symbol(binary.BigEndian.Uint16(entry[0:2]))
		f := int32(binary.BigEndian.Uint32(entry[2:6]))
		switch {
		case int(s) >= a.Size():
			return nil, fmt.Errorf("%w: symbol %d outside %s alphabet", ErrCorruptHeader, s, a)
		case f <= 0:
			return nil, fmt.Errorf("%w: symbol %d has frequency %d", ErrCorruptHeader, s, f)
		}
		if _, dup := ft[s]; dup {
			return nil, fmt.Errorf("%w: symbol %d listed twice", ErrCorruptHeader, s)
		}
		ft[s] = int64(f)
	}
	return ft, nil
}

func headerErr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated at %s", ErrCorruptHeader, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrRead, what, err)
}
