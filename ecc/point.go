package ecc

import (
	"github.com/eth2030/goecc/ecc/internal/bigint"
	"github.com/eth2030/goecc/ecc/internal/modarith"
)

// Point is an affine point with an infinity flag: Infinity is true
// exactly when the point is the group identity, and X/Y are only
// meaningful when it is false. The struct does not prevent a caller from
// building Infinity=true with non-zero X/Y; the functions in this package
// ignore X/Y whenever Infinity is set.
type Point struct {
	X, Y     bigint.Word
	Infinity bool
}

// InfinityPoint is the group identity O.
var InfinityPoint = Point{Infinity: true}

// NewPoint builds a finite affine point.
func NewPoint(x, y bigint.Word) Point {
	return Point{X: x, Y: y}
}

// onCurve reports whether (x,y) satisfies y^2 = x^3 + a*x + b mod p.
func onCurve(params *CurveParams, x, y bigint.Word) bool {
	if bigint.Cmp(x, params.P) >= 0 || bigint.Cmp(y, params.P) >= 0 {
		return false
	}
	lhs, err := modarith.ModMul(y, y, params.P)
	if err != nil {
		return false
	}
	x2, err := modarith.ModMul(x, x, params.P)
	if err != nil {
		return false
	}
	x3, err := modarith.ModMul(x2, x, params.P)
	if err != nil {
		return false
	}
	ax, err := modarith.ModMul(params.A, x, params.P)
	if err != nil {
		return false
	}
	rhs, err := modarith.ModAdd(x3, ax, params.P)
	if err != nil {
		return false
	}
	rhs, err = modarith.ModAdd(rhs, params.B, params.P)
	if err != nil {
		return false
	}
	return bigint.Cmp(lhs, rhs) == 0
}

// IsPrivateKeyLegal reports 1 <= d < n.
func IsPrivateKeyLegal(params *CurveParams, d bigint.Word) bool {
	one := bigint.Word{}
	one[bigint.Size-1] = 1
	return bigint.Cmp(d, one) >= 0 && bigint.Cmp(d, params.N) < 0
}

// IsPublicKeyLegal reports 0 <= x,y < p, P on-curve and [n]P = O.
func IsPublicKeyLegal(params *CurveParams, p Point) bool {
	if p.Infinity {
		return false
	}
	if bigint.Cmp(p.X, params.P) >= 0 || bigint.Cmp(p.Y, params.P) >= 0 {
		return false
	}
	if !onCurve(params, p.X, p.Y) {
		return false
	}
	r := PointMul(params, p, params.N)
	return r.Infinity
}

// sqrt3mod4 computes a square root of t mod p for p == 3 (mod 4), the
// branch all three supported Weierstrass curves fall into (secp256k1
// and secp256r1 are 7 mod 8, SM2's p is 3 mod 4).
// y = t^((p+1)/4) mod p, verified by squaring back.
func sqrt3mod4(params *CurveParams, t bigint.Word) (bigint.Word, bool) {
	p := params.P
	if t.IsZero() {
		return bigint.Word{}, true
	}
	one := bigint.Word{}
	one[bigint.Size-1] = 1
	pPlus1, carry := bigint.Add(p, one)
	if carry != 0 {
		return bigint.Word{}, false
	}
	exp := shr2(pPlus1)

	y, err := modarith.ModExp(t, exp, p)
	if err != nil {
		return bigint.Word{}, false
	}
	check, err := modarith.ModMul(y, y, p)
	if err != nil {
		return bigint.Word{}, false
	}
	if bigint.Cmp(check, t) != 0 {
		return bigint.Word{}, false
	}
	return y, true
}

// shr2 divides a by 4, i.e. right-shifts by two bits. Used to compute
// (p+1)/4 from p+1, which is always exactly divisible by 4 for the
// p == 3 (mod 4) branch.
func shr2(a bigint.Word) bigint.Word {
	return bigint.Shr1(bigint.Shr1(a))
}

// PointCompress accepts a 64-byte x||y or 65-byte 04||x||y point and
// returns the 33-byte 0x02/0x03||x compressed form.
func PointCompress(point []byte) ([]byte, error) {
	x, y, err := decodePoint(point)
	if err != nil {
		return nil, err
	}
	prefix := byte(0x02)
	if y[bigint.Size-1]&1 == 1 {
		prefix = 0x03
	}
	out := make([]byte, 1+bigint.Size)
	out[0] = prefix
	copy(out[1:], x.Bytes())
	return out, nil
}

// PointDecompress reconstructs the 65-byte 04||x||y point from a 33-byte
// compressed point, using the p == 3 (mod 4) square-root branch.
func PointDecompress(params *CurveParams, compressed []byte) ([]byte, error) {
	if len(compressed) != 1+bigint.Size {
		return nil, ErrMalformedInput
	}
	prefix := compressed[0]
	if prefix != 0x02 && prefix != 0x03 {
		return nil, ErrMalformedInput
	}
	x := bigint.FromBytes(compressed[1:])
	if bigint.Cmp(x, params.P) >= 0 {
		return nil, ErrMalformedInput
	}

	x2, err := modarith.ModMul(x, x, params.P)
	if err != nil {
		return nil, ErrArithmetic
	}
	x3, err := modarith.ModMul(x2, x, params.P)
	if err != nil {
		return nil, ErrArithmetic
	}
	ax, err := modarith.ModMul(params.A, x, params.P)
	if err != nil {
		return nil, ErrArithmetic
	}
	t, err := modarith.ModAdd(x3, ax, params.P)
	if err != nil {
		return nil, ErrArithmetic
	}
	t, err = modarith.ModAdd(t, params.B, params.P)
	if err != nil {
		return nil, ErrArithmetic
	}

	if params.sqrtFn == nil {
		return nil, ErrWrongType
	}
	y, ok := params.sqrtFn(params, t)
	if !ok {
		return nil, ErrMalformedInput
	}

	wantOdd := prefix == 0x03
	isOdd := y[bigint.Size-1]&1 == 1
	if wantOdd != isOdd {
		y = modNeg(y, params.P)
	}

	out := make([]byte, 1+2*bigint.Size)
	out[0] = 0x04
	copy(out[1:1+bigint.Size], x.Bytes())
	copy(out[1+bigint.Size:], y.Bytes())
	return out, nil
}

// modNeg computes (p - y) mod p, used to select the parity-matching root
// during decompression.
func modNeg(y, p bigint.Word) bigint.Word {
	if y.IsZero() {
		return y
	}
	r, _ := modarith.ModSub(p, y, p)
	return r
}

// decodePoint parses a 64-byte x||y or 65-byte 04||x||y buffer.
func decodePoint(point []byte) (x, y bigint.Word, err error) {
	switch len(point) {
	case 2 * bigint.Size:
		return bigint.FromBytes(point[:bigint.Size]), bigint.FromBytes(point[bigint.Size:]), nil
	case 1 + 2*bigint.Size:
		if point[0] != 0x04 {
			return x, y, ErrMalformedInput
		}
		return bigint.FromBytes(point[1 : 1+bigint.Size]), bigint.FromBytes(point[1+bigint.Size:]), nil
	default:
		return x, y, ErrMalformedInput
	}
}
