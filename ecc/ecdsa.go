package ecc

import (
	"crypto/sha256"
	"io"

	"github.com/eth2030/goecc/ecc/internal/bigint"
	"github.com/eth2030/goecc/ecc/internal/modarith"
)

// Signature is the fixed 64-byte r||s component pair.
type Signature struct {
	R, S bigint.Word
}

// GenPubkey computes P = [d]G, failing if d is out of [1, n-1].
func GenPubkey(params *CurveParams, d bigint.Word) (Point, error) {
	if !IsPrivateKeyLegal(params, d) {
		return Point{}, ErrPrivateKeyIllegal
	}
	return PointMul(params, BasePoint(params), d), nil
}

// digestFor reduces a message or pre-hashed digest to the field element
// e: hash with SHA-256 unless msg is already exactly 32 bytes and
// preHashed is set.
func digestFor(msg []byte, preHashed bool) bigint.Word {
	var sum [32]byte
	if preHashed && len(msg) == 32 {
		copy(sum[:], msg)
	} else {
		sum = sha256.Sum256(msg)
	}
	return bigint.FromBytes(sum[:])
}

// Sign is the ECDSA sign operation over secp256k1 or secp256r1, with
// injectable randomness and a single retry on r=0/s=0.
func Sign(params *CurveParams, d bigint.Word, msg []byte, preHashed bool, rng io.Reader, kOpt *bigint.Word) (Signature, error) {
	if !IsPrivateKeyLegal(params, d) {
		return Signature{}, ErrPrivateKeyIllegal
	}
	e := digestFor(msg, preHashed)
	eMod, err := modarith.ModAdd(e, bigint.Word{}, params.N)
	if err != nil {
		return Signature{}, ErrArithmetic
	}

	for attempt := 0; attempt < 2; attempt++ {
		var k bigint.Word
		if kOpt != nil && attempt == 0 {
			k = *kOpt
		} else {
			k, err = randScalar(rng, params.N)
			if err != nil {
				return Signature{}, err
			}
		}
		defer bigint.Zero(&k)

		R := PointMul(params, BasePoint(params), k)
		if R.Infinity {
			continue
		}
		r, err := modarith.ModAdd(R.X, bigint.Word{}, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		if r.IsZero() {
			continue
		}

		kInv, err := modarith.ModInv(k, params.N)
		if err != nil {
			continue
		}
		rd, err := modarith.ModMul(r, d, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		erd, err := modarith.ModAdd(eMod, rd, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		s, err := modarith.ModMul(kInv, erd, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		if s.IsZero() {
			continue
		}
		return Signature{R: r, S: s}, nil
	}
	return Signature{}, ErrArithmetic
}

// Verify is the ECDSA verify operation.
func Verify(params *CurveParams, p Point, msg []byte, preHashed bool, sig Signature) bool {
	if !IsPublicKeyLegal(params, p) {
		return false
	}
	one := bigint.Word{}
	one[bigint.Size-1] = 1
	nMinus1, _ := bigint.Sub(params.N, one)
	if bigint.Cmp(sig.R, one) < 0 || bigint.Cmp(sig.R, nMinus1) > 0 {
		return false
	}
	if bigint.Cmp(sig.S, one) < 0 || bigint.Cmp(sig.S, nMinus1) > 0 {
		return false
	}

	e := digestFor(msg, preHashed)
	eMod, err := modarith.ModAdd(e, bigint.Word{}, params.N)
	if err != nil {
		return false
	}

	w, err := modarith.ModInv(sig.S, params.N)
	if err != nil {
		return false
	}
	u1, err := modarith.ModMul(eMod, w, params.N)
	if err != nil {
		return false
	}
	u2, err := modarith.ModMul(sig.R, w, params.N)
	if err != nil {
		return false
	}

	x1 := PointMul(params, BasePoint(params), u1)
	x2 := PointMul(params, p, u2)
	x := PointAdd(params, x1, x2)
	if x.Infinity {
		return false
	}
	xMod, err := modarith.ModAdd(x.X, bigint.Word{}, params.N)
	if err != nil {
		return false
	}
	return bigint.Cmp(xMod, sig.R) == 0
}
