package bigint

import "testing"

func TestIncWrapsAllOnes(t *testing.T) {
	var allOnes Word
	for i := range allOnes {
		allOnes[i] = 0xFF
	}
	got := Inc(allOnes)
	if !got.IsZero() {
		t.Fatalf("Inc(0xFF...FF) = %x, want 0", got)
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	var a, b Word
	a[Size-1] = 1
	b[Size-1] = 2
	sum, carry := Add(a, b)
	if carry != 0 {
		t.Fatalf("unexpected carry")
	}
	back, borrow := Sub(sum, b)
	if borrow != 0 || Cmp(back, a) != 0 {
		t.Fatalf("Sub(Add(a,b),b) != a")
	}
}

func TestCmp(t *testing.T) {
	var zero, one Word
	one[Size-1] = 1
	if Cmp(zero, one) >= 0 {
		t.Fatalf("expected zero < one")
	}
	if Cmp(one, one) != 0 {
		t.Fatalf("expected one == one")
	}
}

func TestBitLenAndBit(t *testing.T) {
	var w Word
	w[Size-1] = 0b00000101 // bits 0 and 2 set
	if BitLen(w) != 3 {
		t.Fatalf("BitLen = %d, want 3", BitLen(w))
	}
	if Bit(w, 0) != 1 || Bit(w, 1) != 0 || Bit(w, 2) != 1 {
		t.Fatalf("Bit mismatch")
	}
}

func TestShr1(t *testing.T) {
	var w Word
	w[Size-1] = 0b00000100
	got := Shr1(w)
	if got[Size-1] != 0b00000010 {
		t.Fatalf("Shr1 = %x, want 2", got[Size-1])
	}
}

func TestMulFullAndMod(t *testing.T) {
	var a, b Word
	a[Size-1] = 6
	b[Size-1] = 7
	wide := MulFull(a, b)
	var m Word
	m[Size-1] = 10 // mod 10
	got := Mod(wide[:], m)
	// 42 mod 10 = 2
	want := Word{}
	want[Size-1] = 2
	if Cmp(got, want) != 0 {
		t.Fatalf("Mod(42,10) = %x, want 2", got)
	}
}

func TestModAddModSubPreReduced(t *testing.T) {
	var m, a, b Word
	m[Size-1] = 10
	a[Size-1] = 7
	b[Size-1] = 8
	sum := ModAdd(a, b, m) // (7+8) mod 10 = 5
	var want Word
	want[Size-1] = 5
	if Cmp(sum, want) != 0 {
		t.Fatalf("ModAdd = %x, want 5", sum)
	}

	diff := ModSub(a, b, m) // (7-8) mod 10 = 9
	want[Size-1] = 9
	if Cmp(diff, want) != 0 {
		t.Fatalf("ModSub = %x, want 9", diff)
	}
}

func TestFromBytesBytesRoundTrip(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	w := FromBytes(b)
	out := w.Bytes()
	if out[Size-1] != 0x03 || out[Size-2] != 0x02 || out[Size-3] != 0x01 {
		t.Fatalf("FromBytes/Bytes round-trip mismatch: %x", out)
	}
}

func TestZero(t *testing.T) {
	var w Word
	w[0] = 0xAB
	Zero(&w)
	if !w.IsZero() {
		t.Fatalf("Zero did not scrub word")
	}
}
