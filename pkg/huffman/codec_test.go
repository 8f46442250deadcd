package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

var errBoom = errors.New("boom")

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errBoom }

type failReadSeeker struct{}

func (failReadSeeker) Read(p []byte) (int, error)            { return 0, errBoom }
func (failReadSeeker) Seek(off int64, wh int) (int64, error) { return 0, nil }

func roundTrip(t *testing.T, data []byte, a Alphabet) []byte {
	t.Helper()
	enc, err := EncodeBytes(data, a)
	if err != nil {
		t.Fatalf("EncodeBytes(%s): %v", a, err)
	}
	dec, err := DecodeBytes(enc, a)
	if err != nil {
		t.Fatalf("DecodeBytes(%s): %v", a, err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatalf("%s round trip: got %q, want %q", a, dec, data)
	}
	return enc
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"a",
		"aaaa",
		"aabbbcc",
		"abracadabra",
		"héllo wörld, 안녕하세요",
		"emoji 😀 and more 🎉🎉",
		strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200),
	}
	for _, c := range cases {
		roundTrip(t, []byte(c), Text)
		roundTrip(t, []byte(c), Bytes)
	}
}

func TestRoundTripRandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 255, 256, 4096, 100000} {
		data := make([]byte, n)
		rng.Read(data)
		roundTrip(t, data, Bytes)
	}
}

func TestRoundTripAllBytesOnce(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	roundTrip(t, data, Bytes)
}

func TestExampleContainer(t *testing.T) {
	enc := roundTrip(t, []byte("aabbbcc"), Text)
	want := []byte{
		0, 0, 0, 3,
		0, 'a', 0, 0, 0, 2,
		0, 'b', 0, 0, 0, 3,
		0, 'c', 0, 0, 0, 2,
		0xA1, 0xE0, // 10 10 0 0 0 11 11 + 5 padding bits
	}
	if !bytes.Equal(enc, want) {
		t.Fatalf("container = % x, want % x", enc, want)
	}
}

func TestHeaderConsistency(t *testing.T) {
	data := []byte(strings.Repeat("mississippi river ", 37))
	enc := roundTrip(t, data, Bytes)
	ft, err := ReadHeader(bytes.NewReader(enc), Bytes)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if ft.Total() != int64(len(data)) {
		t.Fatalf("header total %d, input length %d", ft.Total(), len(data))
	}
}

func TestPaddingNeverDecoded(t *testing.T) {
	// 'b' gets the code "0", so padding zeros would read as extra 'b's.
	data := []byte("aaaab")
	enc := roundTrip(t, data, Bytes)
	dec, err := DecodeBytes(enc, Bytes)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if len(dec) != len(data) {
		t.Fatalf("decoded %d bytes, want %d", len(dec), len(data))
	}
}

func TestSingleSymbol(t *testing.T) {
	enc := roundTrip(t, []byte("aaaa"), Text)
	if got := len(enc); got != 4+entrySize+1 {
		t.Fatalf("container is %d bytes, want %d", got, 4+entrySize+1)
	}
	roundTrip(t, bytes.Repeat([]byte{'A'}, 1<<16), Bytes)
}

func TestCompressEmpty(t *testing.T) {
	var out bytes.Buffer
	_, err := Compress(bytes.NewReader(nil), &out, Text)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Compress(empty) err = %v, want ErrEmptyInput", err)
	}
	if out.Len() != 0 {
		t.Fatalf("Compress(empty) wrote %d bytes", out.Len())
	}
}

func TestCompressResult(t *testing.T) {
	var out bytes.Buffer
	res, err := Compress(strings.NewReader("aabbbcc"), &out, Text)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if res.Symbols != 7 || res.Distinct != 3 || res.BytesIn != 7 || res.BytesOut != 24 {
		t.Fatalf("result = %+v", res)
	}
	var dec bytes.Buffer
	dres, err := Decompress(&out, &dec, Text)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if dres.Symbols != 7 || dres.BytesOut != 7 || dec.String() != "aabbbcc" {
		t.Fatalf("decompress result = %+v, output %q", dres, dec.String())
	}
}

func TestCompressReadError(t *testing.T) {
	_, err := Compress(failReadSeeker{}, &bytes.Buffer{}, Bytes)
	if !errors.Is(err, ErrRead) || !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want ErrRead wrapping boom", err)
	}
}

func TestCompressWriteError(t *testing.T) {
	_, err := Compress(strings.NewReader("abc"), failWriter{}, Bytes)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("err = %v, want ErrWrite", err)
	}
}

func TestCompressInvalidUTF8(t *testing.T) {
	_, err := Compress(bytes.NewReader([]byte{'o', 'k', 0xff, 0xfe}), &bytes.Buffer{}, Text)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("err = %v, want ErrRead", err)
	}
}

func TestDecodeWriteError(t *testing.T) {
	enc := roundTrip(t, []byte(strings.Repeat("abc", 5000)), Bytes)
	_, err := Decompress(bytes.NewReader(enc), failWriter{}, Bytes)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("err = %v, want ErrWrite", err)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	for _, in := range []string{"aabbbcc", "aaaaaaaaa", strings.Repeat("xyzzy", 100)} {
		enc := roundTrip(t, []byte(in), Text)
		_, err := DecodeBytes(enc[:len(enc)-1], Text)
		if !errors.Is(err, ErrTruncatedPayload) {
			t.Fatalf("%q: err = %v, want ErrTruncatedPayload", in, err)
		}
	}
}

func header(n int32, entries ...[2]int32) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(n))
	for _, e := range entries {
		b = binary.BigEndian.AppendUint16(b, uint16(e[0]))
		b = binary.BigEndian.AppendUint32(b, uint32(e[1]))
	}
	return b
}

func TestDecodeCorruptHeader(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		a    Alphabet
	}{
		{"empty stream", nil, Text},
		{"short count", []byte{0, 0}, Text},
		{"too many symbols", header(AlphabetSize + 1), Text},
		{"negative count", header(-1), Text},
		{"too many for bytes", header(257), Bytes},
		{"truncated entry", header(2, [2]int32{'a', 1}), Text},
		{"zero frequency", header(1, [2]int32{'a', 0}), Text},
		{"negative frequency", header(1, [2]int32{'a', -5}), Text},
		{"duplicate symbol", header(2, [2]int32{'a', 1}, [2]int32{'a', 2}), Text},
		{"symbol outside bytes", header(1, [2]int32{300, 1}), Bytes},
	}
	for _, c := range cases {
		_, err := DecodeBytes(c.in, c.a)
		if !errors.Is(err, ErrCorruptHeader) {
			t.Fatalf("%s: err = %v, want ErrCorruptHeader", c.name, err)
		}
	}
}

func TestDecodeZeroCount(t *testing.T) {
	dec, err := DecodeBytes(header(0), Text)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if len(dec) != 0 {
		t.Fatalf("decoded %q from an empty container", dec)
	}
}

func TestWriteHeaderOverflow(t *testing.T) {
	err := WriteHeader(&bytes.Buffer{}, FrequencyTable{'a': 1 << 31})
	if !errors.Is(err, ErrFrequencyOverflow) {
		t.Fatalf("err = %v, want ErrFrequencyOverflow", err)
	}
}

func TestParseAlphabet(t *testing.T) {
	for in, want := range map[string]Alphabet{"": Text, "text": Text, "UTF16": Text, "bytes": Bytes, " binary ": Bytes} {
		got, err := ParseAlphabet(in)
		if err != nil || got != want {
			t.Fatalf("ParseAlphabet(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlphabet("ebcdic"); err == nil {
		t.Fatalf("ParseAlphabet(ebcdic) succeeded")
	}
}
