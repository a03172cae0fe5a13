package ecc

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/eth2030/goecc/ecc/internal/bigint"
)

func wordFromUint(v uint64) bigint.Word {
	var w bigint.Word
	for i := 0; i < 8; i++ {
		w[bigint.Size-1-i] = byte(v >> (8 * i))
	}
	return w
}

// d=1 must yield P=G.
func TestSecp256k1KnownAnswerGeneratorKey(t *testing.T) {
	d := wordFromUint(1)
	p, err := GenPubkey(Secp256k1, d)
	if err != nil {
		t.Fatal(err)
	}
	if bigint.Cmp(p.X, Secp256k1.Gx) != 0 || bigint.Cmp(p.Y, Secp256k1.Gy) != 0 {
		t.Fatalf("genPubkey(1) != G")
	}
}

// Point laws: P+O=P, P+(-P)=O, [n]G=O, [k1]G+[k2]G = [k1+k2 mod n]G.
func TestPointLaws(t *testing.T) {
	for _, params := range []*CurveParams{Secp256k1, Secp256r1, SM2Curve} {
		G := BasePoint(params)

		if got := PointAdd(params, G, InfinityPoint); bigint.Cmp(got.X, G.X) != 0 || bigint.Cmp(got.Y, G.Y) != 0 {
			t.Fatalf("%s: P+O != P", params.Name)
		}

		negG := NewPoint(G.X, modNeg(G.Y, params.P))
		if got := PointAdd(params, G, negG); !got.Infinity {
			t.Fatalf("%s: P+(-P) != O", params.Name)
		}

		if got := PointMul(params, G, params.N); !got.Infinity {
			t.Fatalf("%s: [n]G != O", params.Name)
		}

		k1 := wordFromUint(17)
		k2 := wordFromUint(41)
		lhs := PointAdd(params, PointMul(params, G, k1), PointMul(params, G, k2))
		k3, _ := bigint.Add(k1, k2)
		rhs := PointMul(params, G, k3)
		if bigint.Cmp(lhs.X, rhs.X) != 0 || bigint.Cmp(lhs.Y, rhs.Y) != 0 {
			t.Fatalf("%s: [k1]G+[k2]G != [k1+k2]G", params.Name)
		}
	}
}

// Compression round-trip on G and a derived non-generator point.
func TestCompressionRoundTrip(t *testing.T) {
	for _, params := range []*CurveParams{Secp256k1, Secp256r1, SM2Curve} {
		G := BasePoint(params)
		uncompressed := append([]byte{0x04}, append(G.X.Bytes(), G.Y.Bytes()...)...)

		compressed, err := PointCompress(uncompressed)
		if err != nil {
			t.Fatalf("%s: compress G: %v", params.Name, err)
		}
		decompressed, err := PointDecompress(params, compressed)
		if err != nil {
			t.Fatalf("%s: decompress G: %v", params.Name, err)
		}
		if !bytes.Equal(decompressed, uncompressed) {
			t.Fatalf("%s: decompress(compress(G)) != G", params.Name)
		}

		other := PointMul(params, G, wordFromUint(12345))
		otherBytes := append([]byte{0x04}, append(other.X.Bytes(), other.Y.Bytes()...)...)
		c2, err := PointCompress(otherBytes)
		if err != nil {
			t.Fatalf("%s: compress other: %v", params.Name, err)
		}
		d2, err := PointDecompress(params, c2)
		if err != nil {
			t.Fatalf("%s: decompress other: %v", params.Name, err)
		}
		if !bytes.Equal(d2, otherBytes) {
			t.Fatalf("%s: decompress(compress(P)) != P for non-generator point", params.Name)
		}
	}
}

func TestIsPrivateKeyLegal(t *testing.T) {
	params := Secp256k1
	if IsPrivateKeyLegal(params, bigint.Word{}) {
		t.Fatalf("d=0 should be illegal")
	}
	if !IsPrivateKeyLegal(params, wordFromUint(1)) {
		t.Fatalf("d=1 should be legal")
	}
	if IsPrivateKeyLegal(params, params.N) {
		t.Fatalf("d=n should be illegal")
	}
	nMinus1, _ := bigint.Sub(params.N, wordFromUint(1))
	if !IsPrivateKeyLegal(params, nMinus1) {
		t.Fatalf("d=n-1 should be legal")
	}
}

func TestECDSASignVerifyRoundTrip(t *testing.T) {
	params := Secp256k1
	d, err := randScalar(rand.Reader, params.N)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := GenPubkey(params, d)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("the quick brown fox")
	sig, err := Sign(params, d, msg, false, rand.Reader, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(params, pub, msg, false, sig) {
		t.Fatalf("verify failed for honestly generated signature")
	}
	if bigint.Cmp(sig.R, bigint.Word{}) == 0 || bigint.Cmp(sig.S, bigint.Word{}) == 0 {
		t.Fatalf("r or s is zero")
	}
}

func TestECDSASignatureSoundness(t *testing.T) {
	params := Secp256k1
	d1, _ := randScalar(rand.Reader, params.N)
	d2, _ := randScalar(rand.Reader, params.N)
	pub1, _ := GenPubkey(params, d1)
	msg := []byte("message")
	sig, err := Sign(params, d2, msg, false, rand.Reader, nil)
	if err != nil {
		t.Fatal(err)
	}
	if Verify(params, pub1, msg, false, sig) {
		t.Fatalf("verify succeeded with wrong key")
	}
}
