package huffman

import (
	"bytes"
	"errors"
	"io"
)

// Result summarises one compress or decompress run.
type Result struct {
	Symbols  int64 // symbols counted or emitted
	Distinct int
	BytesIn  int64
	BytesOut int64
}

// Compress reads src twice: once to count frequencies and, after seeking
// back to the start, once to encode. Empty input returns ErrEmptyInput and
// writes nothing.
func Compress(src io.ReadSeeker, dst io.Writer, a Alphabet) (Result, error) {
	ft, err := CountFrequencies(a.NewReader(src))
	if err != nil {
		return Result{}, err
	}
	if len(ft) == 0 {
		return Result{}, ErrEmptyInput
	}
	root, err := BuildTree(ft)
	if err != nil {
		return Result{}, err
	}
	codes := GenerateCodes(root)

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Result{}, readErr(err)
	}
	cr := &countingReader{r: src}
	n, err := Encode(dst, ft, codes, a.NewReader(cr))
	if err != nil {
		return Result{}, err
	}
	return Result{Symbols: ft.Total(), Distinct: ft.Distinct(), BytesIn: cr.n, BytesOut: n}, nil
}

func Decompress(src io.Reader, dst io.Writer, a Alphabet) (Result, error) {
	cr := &countingReader{r: src}
	cw := &countingWriter{w: dst}
	ft, err := Decode(cr, a, a.NewWriter(cw))
	if err != nil {
		return Result{}, err
	}
	return Result{Symbols: ft.Total(), Distinct: ft.Distinct(), BytesIn: cr.n, BytesOut: cw.n}, nil
}

// EncodeBytes compresses data in memory. Unlike Compress, empty data yields
// a valid container with a zero symbol count.
func EncodeBytes(data []byte, a Alphabet) ([]byte, error) {
	var out bytes.Buffer
	_, err := Compress(bytes.NewReader(data), &out, a)
	if errors.Is(err, ErrEmptyInput) {
		err = WriteHeader(&out, FrequencyTable{})
	}
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func DecodeBytes(container []byte, a Alphabet) ([]byte, error) {
	var out bytes.Buffer
	if _, err := Decompress(bytes.NewReader(container), &out, a); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
