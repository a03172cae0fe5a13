package hash

import (
	"bytes"
	"testing"
)

func TestBlake256Determinism(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog")
	a, err := Sum(BLAKE256, msg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sum(BLAKE256, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("BLAKE256 is not deterministic")
	}
	if len(a) != 32 {
		t.Fatalf("BLAKE256 digest should be 32 bytes, got %d", len(a))
	}
}

func TestBlake256DiffersOnInput(t *testing.T) {
	a, _ := Sum(BLAKE256, []byte("a"))
	b, _ := Sum(BLAKE256, []byte("b"))
	if bytes.Equal(a, b) {
		t.Fatalf("BLAKE256 collided on distinct short inputs")
	}
}

func TestBlake256MultiBlockMessage(t *testing.T) {
	// Exercise the buffered multi-Write path across several block
	// boundaries (block size is 64 bytes).
	long := bytes.Repeat([]byte("0123456789abcdef"), 20) // 320 bytes
	whole, err := Sum(BLAKE256, long)
	if err != nil {
		t.Fatal(err)
	}

	h, err := New(BLAKE256)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(long); i += 7 {
		end := i + 7
		if end > len(long) {
			end = len(long)
		}
		h.Write(long[i:end])
	}
	piecewise := h.Sum(nil)
	if !bytes.Equal(whole, piecewise) {
		t.Fatalf("BLAKE256 piecewise writes disagree with single Sum call")
	}
}

func TestBlake512Determinism(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog")
	a, err := Sum(BLAKE512, msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Fatalf("BLAKE512 digest should be 64 bytes, got %d", len(a))
	}
	b, _ := Sum(BLAKE512, msg)
	if !bytes.Equal(a, b) {
		t.Fatalf("BLAKE512 is not deterministic")
	}
}

func TestBlake512MultiBlockMessage(t *testing.T) {
	long := bytes.Repeat([]byte("0123456789abcdef"), 40) // 640 bytes, several 128-byte blocks
	whole, err := Sum(BLAKE512, long)
	if err != nil {
		t.Fatal(err)
	}

	h, err := New(BLAKE512)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(long); i += 11 {
		end := i + 11
		if end > len(long) {
			end = len(long)
		}
		h.Write(long[i:end])
	}
	piecewise := h.Sum(nil)
	if !bytes.Equal(whole, piecewise) {
		t.Fatalf("BLAKE512 piecewise writes disagree with single Sum call")
	}
}
