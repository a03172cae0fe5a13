// Package modarith is the Montgomery-style modular arithmetic engine: fast
// modular multiply, exponentiation and inversion over 256-bit moduli.
//
// Classic hand-rolled Montgomery implementations keep their
// multi-precision integer behind a 30-bit-limb "mont_bignum" type that
// never escapes the file. This package keeps the same discipline — the
// internal representation is a private type, scoped to a single call,
// and every exported function is byte-in/byte-out — but backs it with
// math/big's arbitrary-precision core rather than hand-rolled limbs, the
// same choice used throughout for curve field arithmetic elsewhere in
// this module. The two algorithms worth calling out as non-obvious —
// binary extended GCD for inversion, 5-bit sliding-window exponentiation
// — are implemented explicitly rather than replaced with
// big.Int.ModInverse/Exp one-liners.
package modarith

import (
	"errors"
	"math/big"

	"github.com/eth2030/goecc/ecc/internal/bigint"
)

// ErrZeroModulus, ErrEvenModulus and ErrNoInverse are failure modes
// callers should treat as fatal for the current scalar.
var (
	ErrZeroModulus = errors.New("modarith: zero modulus")
	ErrEvenModulus = errors.New("modarith: modulus must be odd")
	ErrNoInverse   = errors.New("modarith: no inverse exists")
)

func toBig(w bigint.Word) *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// align pads a big.Int's magnitude to a canonical 32-byte big-endian Word.
// big.Int.Bytes drops leading zero bytes; the wrapper always emits
// exactly 32 bytes.
func align(v *big.Int) bigint.Word {
	var w bigint.Word
	b := v.Bytes()
	if len(b) > bigint.Size {
		b = b[len(b)-bigint.Size:]
	}
	copy(w[bigint.Size-len(b):], b)
	return w
}

// ModMul computes a*b mod n.
func ModMul(a, b, n bigint.Word) (bigint.Word, error) {
	N := toBig(n)
	if N.Sign() == 0 {
		return bigint.Word{}, ErrZeroModulus
	}
	r := new(big.Int).Mul(toBig(a), toBig(b))
	r.Mod(r, N)
	return align(r), nil
}

// ModAdd computes a+b mod n for arbitrary (not necessarily reduced) a, b.
func ModAdd(a, b, n bigint.Word) (bigint.Word, error) {
	N := toBig(n)
	if N.Sign() == 0 {
		return bigint.Word{}, ErrZeroModulus
	}
	r := new(big.Int).Add(toBig(a), toBig(b))
	r.Mod(r, N)
	return align(r), nil
}

// ModSub computes a-b mod n for arbitrary (not necessarily reduced) a, b.
func ModSub(a, b, n bigint.Word) (bigint.Word, error) {
	N := toBig(n)
	if N.Sign() == 0 {
		return bigint.Word{}, ErrZeroModulus
	}
	r := new(big.Int).Sub(toBig(a), toBig(b))
	r.Mod(r, N)
	return align(r), nil
}

// windowSize is the fixed sliding-window width.
const windowSize = 5

// ModExp computes g^x mod p using a fixed 5-bit left-to-right sliding
// window with a precomputed table of odd powers g^1, g^3, ..., g^31,
// minus the Montgomery-domain conversion (math/big's Mul/Mod already
// avoids trial division internally, so there is nothing to convert into
// and out of).
func ModExp(g, x, p bigint.Word) (bigint.Word, error) {
	P := toBig(p)
	if P.Sign() == 0 {
		return bigint.Word{}, ErrZeroModulus
	}
	G := new(big.Int).Mod(toBig(g), P)
	X := toBig(x)

	if X.Sign() == 0 {
		return align(big.NewInt(1)), nil
	}

	const tableSize = 1 << (windowSize - 1) // odd powers 1..31 -> 16 slots
	table := make([]*big.Int, tableSize)
	gg := new(big.Int).Mul(G, G)
	gg.Mod(gg, P)
	table[0] = new(big.Int).Set(G)
	for i := 1; i < tableSize; i++ {
		t := new(big.Int).Mul(table[i-1], gg)
		t.Mod(t, P)
		table[i] = t
	}

	bitLen := X.BitLen()
	result := big.NewInt(1)
	i := bitLen - 1
	for i >= 0 {
		if X.Bit(i) == 0 {
			result.Mul(result, result)
			result.Mod(result, P)
			i--
			continue
		}
		// Find the window: up to windowSize bits starting at the current
		// high bit, extended down to the next set bit so the window
		// always starts and ends on a 1 (giving an odd window value).
		lo := i - windowSize + 1
		if lo < 0 {
			lo = 0
		}
		for X.Bit(lo) == 0 {
			lo++
		}
		for k := 0; k < i-lo+1; k++ {
			result.Mul(result, result)
			result.Mod(result, P)
		}
		windowVal := 0
		for j := i; j >= lo; j-- {
			windowVal = windowVal<<1 | int(X.Bit(j))
		}
		result.Mul(result, table[(windowVal-1)/2])
		result.Mod(result, P)
		i = lo - 1
	}
	return align(result), nil
}

// ModInv computes a^-1 mod n via the binary extended Euclidean algorithm
// (not Fermat / not big.Int.ModInverse). n must be odd. Returns
// ErrNoInverse if gcd(a,n) != 1.
func ModInv(a, n bigint.Word) (bigint.Word, error) {
	N := toBig(n)
	if N.Sign() == 0 {
		return bigint.Word{}, ErrZeroModulus
	}
	if N.Bit(0) == 0 {
		return bigint.Word{}, ErrEvenModulus
	}
	A := new(big.Int).Mod(toBig(a), N)
	if A.Sign() == 0 {
		return bigint.Word{}, ErrNoInverse
	}

	u := new(big.Int).Set(A)
	v := new(big.Int).Set(N)
	one := big.NewInt(1)
	zero := big.NewInt(0)
	B := big.NewInt(1) // cofactor tracking u, kept in [0, N)
	D := big.NewInt(0) // cofactor tracking v, kept in [0, N)

	// halve returns x/2 if x is even, or (x+N)/2 if x is odd (N is odd,
	// so x+N is even); keeps the cofactor in [0, N) throughout.
	halve := func(x *big.Int) *big.Int {
		if x.Bit(0) == 0 {
			return new(big.Int).Rsh(x, 1)
		}
		t := new(big.Int).Add(x, N)
		return t.Rsh(t, 1)
	}
	// subMod returns (x-y) mod N for x,y already in [0, N).
	subMod := func(x, y *big.Int) *big.Int {
		r := new(big.Int).Sub(x, y)
		if r.Sign() < 0 {
			r.Add(r, N)
		}
		return r
	}

	for u.Cmp(zero) != 0 {
		for u.Bit(0) == 0 {
			u = new(big.Int).Rsh(u, 1)
			B = halve(B)
		}
		for v.Bit(0) == 0 {
			v = new(big.Int).Rsh(v, 1)
			D = halve(D)
		}
		if u.Cmp(v) >= 0 {
			u = new(big.Int).Sub(u, v)
			B = subMod(B, D)
		} else {
			v = new(big.Int).Sub(v, u)
			D = subMod(D, B)
		}
	}

	if v.Cmp(one) != 0 {
		return bigint.Word{}, ErrNoInverse
	}
	return align(D), nil
}
