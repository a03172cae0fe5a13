package ecc

// Ed25519 is treated as an external collaborator rather than a curve
// this package implements: DispatchGenPubkey/Sign/Verify forward to
// crypto/ed25519 unchanged, with inputs/outputs handled little-endian.
// This file only carries the one piece Ed25519 needs that the stdlib
// package does not expose directly: its group order, for
// DispatchGetCurveOrder.

// ed25519Order returns the order of the Ed25519 base point's prime-order
// subgroup: 2^252 + 27742317777372353535851937790883648493, little-endian
// to match the rest of this file's Ed25519 byte order convention.
func ed25519Order() []byte {
	be := mustWord("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED").Bytes()
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return le
}
