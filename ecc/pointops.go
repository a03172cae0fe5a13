package ecc

import "github.com/eth2030/goecc/ecc/internal/bigint"

// These are the curve-agnostic boundary helpers, composed from
// point_mul then point_add and returning the 64-byte byte-string point
// form. They fail (with ErrVerificationFailed) on a result at infinity.

// AddMul computes P + [k]Q.
func AddMul(params *CurveParams, p Point, k bigint.Word, q Point) ([]byte, error) {
	r := PointAdd(params, p, PointMul(params, q, k))
	if r.Infinity {
		return nil, ErrVerificationFailed
	}
	return append(r.X.Bytes(), r.Y.Bytes()...), nil
}

// AddMulBase computes P + [k]G.
func AddMulBase(params *CurveParams, p Point, k bigint.Word) ([]byte, error) {
	return AddMul(params, p, k, BasePoint(params))
}

// MulBase computes [k]G, identical to GenPubkey's core operation.
func MulBase(params *CurveParams, k bigint.Word) ([]byte, error) {
	r := PointMul(params, BasePoint(params), k)
	if r.Infinity {
		return nil, ErrVerificationFailed
	}
	return append(r.X.Bytes(), r.Y.Bytes()...), nil
}

// GetCurveOrder returns the curve's group order n.
func GetCurveOrder(params *CurveParams) []byte {
	return params.N.Bytes()
}
