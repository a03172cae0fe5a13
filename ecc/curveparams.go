package ecc

import (
	"encoding/hex"

	"github.com/eth2030/goecc/ecc/internal/bigint"
)

// CurveParams is the immutable record {p, a, b, Gx, Gy, n} for one
// short-Weierstrass curve. Instances are compile-time constants; there is
// no dynamic construction.
type CurveParams struct {
	Name   string
	P      bigint.Word
	A      bigint.Word
	B      bigint.Word
	Gx     bigint.Word
	Gy     bigint.Word
	N      bigint.Word
	sqrtFn func(p *CurveParams, t bigint.Word) (bigint.Word, bool)
}

func mustWord(h string) bigint.Word {
	b, err := hex.DecodeString(h)
	if err != nil || len(b) != bigint.Size {
		panic("ecc: bad curve constant " + h)
	}
	return bigint.FromBytes(b)
}

// Secp256k1 is the Bitcoin curve (SEC 2, section 2.4.1).
var Secp256k1 = &CurveParams{
	Name: "secp256k1",
	P:    mustWord("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
	A:    mustWord("0000000000000000000000000000000000000000000000000000000000000000"),
	B:    mustWord("0000000000000000000000000000000000000000000000000000000000000007"),
	Gx:   mustWord("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
	Gy:   mustWord("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
	N:    mustWord("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
}

// Secp256r1 is NIST P-256 / GF(p) curve from FIPS 186-4.
var Secp256r1 = &CurveParams{
	Name: "secp256r1",
	P:    mustWord("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF"),
	A:    mustWord("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFC"),
	B:    mustWord("5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B"),
	Gx:   mustWord("6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296"),
	Gy:   mustWord("4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5"),
	N:    mustWord("FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551"),
}

// SM2Curve is the GB/T 32918 recommended curve.
var SM2Curve = &CurveParams{
	Name: "sm2",
	P:    mustWord("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFF"),
	A:    mustWord("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFC"),
	B:    mustWord("28E9FA9E9D9F5E344D5A9E4BCF6509A7F39789F515AB8F92DDBCBD414D940E93"),
	Gx:   mustWord("32C4AE2C1F1981195F9904466A39C9948FE30BBFF2660BE1715A4589334C74C7"),
	Gy:   mustWord("BC3736A2F4F6779C59BDCEE36B692153D0A9877CC62A474002DF32E52139F0A0"),
	N:    mustWord("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFF7203DF6B21C6052B53BBF40939D54123"),
}

func init() {
	// secp256k1 and secp256r1 both have p ≡ 3 (mod 4); SM2's p also
	// reduces to the p ≡ 3 (mod 4) branch. All three supported curves
	// land in the "easy" decompression branch.
	Secp256k1.sqrtFn = sqrt3mod4
	Secp256r1.sqrtFn = sqrt3mod4
	SM2Curve.sqrtFn = sqrt3mod4
}
