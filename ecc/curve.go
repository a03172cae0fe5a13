package ecc

import (
	"github.com/eth2030/goecc/ecc/internal/bigint"
	"github.com/eth2030/goecc/ecc/internal/modarith"
)

// PointAdd is the affine addition state machine, covering every
// degenerate case: either operand at infinity, equal-x opposite-y
// (result infinity), equal point (doubling), and the general case.
func PointAdd(params *CurveParams, p, q Point) Point {
	if p.Infinity {
		return q
	}
	if q.Infinity {
		return p
	}

	p256 := params.P
	var lambda bigint.Word

	if bigint.Cmp(p.X, q.X) != 0 {
		num, _ := modarith.ModSub(q.Y, p.Y, p256)
		den, _ := modarith.ModSub(q.X, p.X, p256)
		denInv, err := modarith.ModInv(den, p256)
		if err != nil {
			return InfinityPoint
		}
		lambda, _ = modarith.ModMul(num, denInv, p256)
	} else {
		sum, _ := modarith.ModAdd(p.Y, q.Y, p256)
		if sum.IsZero() {
			return InfinityPoint
		}
		// Doubling: lambda = (3x^2 + a) / (2y) mod p.
		xx, _ := modarith.ModMul(p.X, p.X, p256)
		three := bigint.Word{}
		three[bigint.Size-1] = 3
		threeXX, _ := modarith.ModMul(three, xx, p256)
		num, _ := modarith.ModAdd(threeXX, params.A, p256)

		two := bigint.Word{}
		two[bigint.Size-1] = 2
		den, _ := modarith.ModMul(two, p.Y, p256)
		denInv, err := modarith.ModInv(den, p256)
		if err != nil {
			return InfinityPoint
		}
		lambda, _ = modarith.ModMul(num, denInv, p256)
	}

	lambda2, _ := modarith.ModMul(lambda, lambda, p256)
	xr, _ := modarith.ModSub(lambda2, p.X, p256)
	xr, _ = modarith.ModSub(xr, q.X, p256)

	xDiff, _ := modarith.ModSub(p.X, xr, p256)
	yr, _ := modarith.ModMul(lambda, xDiff, p256)
	yr, _ = modarith.ModSub(yr, p.Y, p256)

	return NewPoint(xr, yr)
}

// PointMul computes [k]P via binary left-to-right double-and-add. Not
// constant-time in k; see the design notes for the side-channel caveat
// this engine accepts.
func PointMul(params *CurveParams, p Point, k bigint.Word) Point {
	acc := InfinityPoint
	bits := bigint.BitLen(k)
	for i := bits - 1; i >= 0; i-- {
		acc = PointAdd(params, acc, acc)
		if bigint.Bit(k, i) == 1 {
			acc = PointAdd(params, acc, p)
		}
	}
	return acc
}

// BasePoint returns the curve's generator G as a Point.
func BasePoint(params *CurveParams) Point {
	return NewPoint(params.Gx, params.Gy)
}
