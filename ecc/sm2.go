package ecc

import (
	"encoding/binary"
	"io"

	"github.com/eth2030/goecc/ecc/internal/bigint"
	"github.com/eth2030/goecc/ecc/internal/modarith"
	"github.com/emmansun/gmsm/sm3"
)

// sm3Sum hashes the concatenation of parts with SM3, the only hash SM2
// operations are specified against.
func sm3Sum(parts ...[]byte) []byte {
	h := sm3.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// ZA computes the user-identity preimage digest Z_A = SM3(ENTL || ID ||
// a || b || Gx || Gy || Px || Py). ID must be non-empty; SM2Sign and
// SM2Verify enforce this before calling in.
func ZA(params *CurveParams, id []byte, pub Point) []byte {
	entl := uint16(len(id) * 8)
	var entlBytes [2]byte
	binary.BigEndian.PutUint16(entlBytes[:], entl)
	return sm3Sum(entlBytes[:], id, params.A.Bytes(), params.B.Bytes(),
		params.Gx.Bytes(), params.Gy.Bytes(), pub.X.Bytes(), pub.Y.Bytes())
}

// sm2Digest returns e = SM3(Z_A || m), or m itself when preHashed is set
// and len(m) == 32.
func sm2Digest(za, m []byte, preHashed bool) bigint.Word {
	if preHashed && len(m) == 32 {
		return bigint.FromBytes(m)
	}
	return bigint.FromBytes(sm3Sum(za, m))
}

// SM2Sign is the GB/T 32918 sign operation. id must be non-empty.
func SM2Sign(d bigint.Word, id, msg []byte, preHashed bool, rng io.Reader, kOpt *bigint.Word) (Signature, error) {
	if len(id) == 0 {
		return Signature{}, ErrMissingID
	}
	params := SM2Curve
	if !IsPrivateKeyLegal(params, d) {
		return Signature{}, ErrPrivateKeyIllegal
	}
	pub := PointMul(params, BasePoint(params), d)
	za := ZA(params, id, pub)
	e := sm2Digest(za, msg, preHashed)

	onePlusD, err := modarith.ModAdd(bigintOne(), d, params.N)
	if err != nil {
		return Signature{}, ErrArithmetic
	}
	onePlusDInv, err := modarith.ModInv(onePlusD, params.N)
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
		x1, err := modarith.ModAdd(R.X, bigint.Word{}, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		r, err := modarith.ModAdd(e, x1, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		if r.IsZero() {
			continue
		}
		rPlusK, err := modarith.ModAdd(r, k, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		if rPlusK.IsZero() {
			continue
		}

		rd, err := modarith.ModMul(r, d, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		kMinusRD, err := modarith.ModSub(k, rd, params.N)
		if err != nil {
			return Signature{}, ErrArithmetic
		}
		s, err := modarith.ModMul(onePlusDInv, kMinusRD, params.N)
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

// SM2Verify is the GB/T 32918 verify operation. id must be non-empty;
// an empty id returns ErrMissingID rather than a plain verification
// failure, so a caller can distinguish a missing ID from a bad signature.
func SM2Verify(pub Point, id, msg []byte, preHashed bool, sig Signature) (bool, error) {
	if len(id) == 0 {
		return false, ErrMissingID
	}
	params := SM2Curve
	if !IsPublicKeyLegal(params, pub) {
		return false, nil
	}
	one := bigintOne()
	nMinus1, _ := bigint.Sub(params.N, one)
	if bigint.Cmp(sig.R, one) < 0 || bigint.Cmp(sig.R, nMinus1) > 0 {
		return false, nil
	}
	if bigint.Cmp(sig.S, one) < 0 || bigint.Cmp(sig.S, nMinus1) > 0 {
		return false, nil
	}

	t, err := modarith.ModAdd(sig.R, sig.S, params.N)
	if err != nil || t.IsZero() {
		return false, nil
	}

	za := ZA(params, id, pub)
	e := sm2Digest(za, msg, preHashed)

	sG := PointMul(params, BasePoint(params), sig.S)
	tP := PointMul(params, pub, t)
	X := PointAdd(params, sG, tP)
	if X.Infinity {
		return false, nil
	}
	x1, err := modarith.ModAdd(X.X, bigint.Word{}, params.N)
	if err != nil {
		return false, nil
	}
	r, err := modarith.ModAdd(e, x1, params.N)
	if err != nil {
		return false, nil
	}
	return bigint.Cmp(r, sig.R) == 0, nil
}

func bigintOne() bigint.Word {
	w := bigint.Word{}
	w[bigint.Size-1] = 1
	return w
}
