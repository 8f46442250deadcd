package huffman

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestTextReaderSurrogatePairs(t *testing.T) {
	r := Text.NewReader(strings.NewReader("a😀"))
	var got []Symbol
	for {
		s, err := r.ReadSymbol()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSymbol: %v", err)
		}
		got = append(got, s)
	}
	want := []Symbol{'a', 0xD83D, 0xDE00}
	if len(got) != len(want) {
		t.Fatalf("symbols = %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("symbols = %x, want %x", got, want)
		}
	}
}

func TestTextWriterLoneSurrogates(t *testing.T) {
	var out bytes.Buffer
	w := Text.NewWriter(&out)
	for _, s := range []Symbol{0xD83D, 'a', 0xDE00, 'b', 0xD83D} {
		if err := w.WriteSymbol(s); err != nil {
			t.Fatalf("WriteSymbol: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if want := "�a�b�"; out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestByteWriterRejectsWideSymbol(t *testing.T) {
	w := Bytes.NewWriter(io.Discard)
	if err := w.WriteSymbol(0x100); err == nil {
		t.Fatalf("WriteSymbol(0x100) succeeded")
	}
}
