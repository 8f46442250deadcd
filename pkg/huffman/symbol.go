package huffman

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Symbol is one 16-bit code unit.
type Symbol uint16

// AlphabetSize is the number of distinct Symbol values.
const AlphabetSize = 1 << 16

// Alphabet selects how an input byte stream is split into symbols.
type Alphabet int

const (
	// Text treats input as UTF-8 and emits one symbol per UTF-16 code unit.
	Text Alphabet = iota
	// Bytes emits one symbol per input byte.
	Bytes
)

func (a Alphabet) String() string {
	switch a {
	case Text:
		return "text"
	case Bytes:
		return "bytes"
	}
	return fmt.Sprintf("Alphabet(%d)", int(a))
}

// Size returns how many distinct symbols the alphabet can produce.
func (a Alphabet) Size() int {
	if a == Bytes {
		return 256
	}
	return AlphabetSize
}

func ParseAlphabet(s string) (Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "utf16":
		return Text, nil
	case "bytes", "binary":
		return Bytes, nil
	}
	return Text, fmt.Errorf("unknown alphabet %q", s)
}

// SymbolReader yields symbols until io.EOF.
type SymbolReader interface {
	ReadSymbol() (Symbol, error)
}

// SymbolWriter accepts symbols; Flush must be called once at the end.
type SymbolWriter interface {
	WriteSymbol(s Symbol) error
	Flush() error
}

func (a Alphabet) NewReader(r io.Reader) SymbolReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 8192)
	}
	if a == Bytes {
		return &byteReader{br: br}
	}
	return &textReader{br: br}
}

func (a Alphabet) NewWriter(w io.Writer) SymbolWriter {
	bw := bufio.NewWriterSize(w, 8192)
	if a == Bytes {
		return &byteWriter{bw: bw}
	}
	return &textWriter{bw: bw}
}

/*** ---------- bytes ---------- ***/

type byteReader struct {
	br *bufio.Reader
}

func (r *byteReader) ReadSymbol() (Symbol, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, err
	}
	return Symbol(b), nil
}

type byteWriter struct {
	bw *bufio.Writer
}

func (w *byteWriter) WriteSymbol(s Symbol) error {
	if s > 0xFF {
		return fmt.Errorf("symbol %d outside byte alphabet", s)
	}
	return w.bw.WriteByte(byte(s))
}

func (w *byteWriter) Flush() error { return w.bw.Flush() }

/*** ---------- UTF-8 text <-> UTF-16 code units ---------- ***/

type textReader struct {
	br      *bufio.Reader
	offset  int64
	pending Symbol // low surrogate of the previous rune
	hasLow  bool
}

func (r *textReader) ReadSymbol() (Symbol, error) {
	if r.hasLow {
		r.hasLow = false
		return r.pending, nil
	}
	c, size, err := r.br.ReadRune()
	if err != nil {
		return 0, err
	}
	if c == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrRead, r.offset)
	}
	r.offset += int64(size)
	if c < 0x10000 {
		return Symbol(c), nil
	}
	// BMP 밖의 문자는 서로게이트 쌍 두 개로
	hi, lo := utf16.EncodeRune(c)
	r.pending, r.hasLow = Symbol(lo), true
	return Symbol(hi), nil
}

type textWriter struct {
	bw     *bufio.Writer
	high   Symbol
	inPair bool
}

func (w *textWriter) WriteSymbol(s Symbol) error {
	if w.inPair {
		w.inPair = false
		if utf16.IsSurrogate(rune(s)) && s >= 0xDC00 {
			_, err := w.bw.WriteRune(utf16.DecodeRune(rune(w.high), rune(s)))
			return err
		}
		if _, err := w.bw.WriteRune(utf8.RuneError); err != nil {
			return err
		}
	}
	if s >= 0xD800 && s < 0xDC00 {
		w.high, w.inPair = s, true
		return nil
	}
	if utf16.IsSurrogate(rune(s)) {
		// 짝 없는 low surrogate
		_, err := w.bw.WriteRune(utf8.RuneError)
		return err
	}
	_, err := w.bw.WriteRune(rune(s))
	return err
}

func (w *textWriter) Flush() error {
	if w.inPair {
		w.inPair = false
		if _, err := w.bw.WriteRune(utf8.RuneError); err != nil {
			return err
		}
	}
	return w.bw.Flush()
}
