package ecc

import (
	"crypto/ed25519"
	"io"

	"github.com/eth2030/goecc/ecc/internal/bigint"
)

// Curve tags identifying each supported curve across the dispatch layer.
const (
	SECP256K1   uint32 = 0xECC00000
	SECP256R1   uint32 = 0xECC00001
	PRIMEV1     uint32 = SECP256R1
	NISTP256    uint32 = SECP256R1
	SM2STANDARD uint32 = 0xECC00002
	ED25519     uint32 = 0xECC00003
)

// paramsFor resolves a Weierstrass tag to its CurveParams. ED25519 has
// no CurveParams (it is delegated wholesale); callers must branch on the
// tag before reaching here.
func paramsFor(tag uint32) (*CurveParams, error) {
	switch tag {
	case SECP256K1:
		return Secp256k1, nil
	case SECP256R1:
		return Secp256r1, nil
	case SM2STANDARD:
		return SM2Curve, nil
	default:
		return nil, ErrWrongType
	}
}

// DispatchGenPubkey accepts all four tags (genPubkey, sign, verify,
// mul_baseG, get_curve_order all do).
func DispatchGenPubkey(tag uint32, d []byte) ([]byte, error) {
	if tag == ED25519 {
		if len(d) != ed25519.SeedSize {
			return nil, ErrMalformedInput
		}
		return ed25519.NewKeyFromSeed(d)[32:], nil
	}
	params, err := paramsFor(tag)
	if err != nil {
		return nil, err
	}
	scalar := bigint.FromBytes(d)
	p, err := GenPubkey(params, scalar)
	if err != nil {
		return nil, err
	}
	return append(p.X.Bytes(), p.Y.Bytes()...), nil
}

// DispatchSign accepts all four tags; SM2 additionally requires id.
func DispatchSign(tag uint32, d, id, msg []byte, preHashed bool, rng io.Reader) ([]byte, error) {
	if tag == ED25519 {
		if len(d) != ed25519.SeedSize {
			return nil, ErrMalformedInput
		}
		sig := ed25519.Sign(ed25519.NewKeyFromSeed(d), msg)
		return sig, nil
	}
	if tag == SM2STANDARD {
		scalar := bigint.FromBytes(d)
		sig, err := SM2Sign(scalar, id, msg, preHashed, rng, nil)
		if err != nil {
			return nil, err
		}
		return append(sig.R.Bytes(), sig.S.Bytes()...), nil
	}
	params, err := paramsFor(tag)
	if err != nil {
		return nil, err
	}
	scalar := bigint.FromBytes(d)
	sig, err := Sign(params, scalar, msg, preHashed, rng, nil)
	if err != nil {
		return nil, err
	}
	return append(sig.R.Bytes(), sig.S.Bytes()...), nil
}

// DispatchVerify accepts all four tags; SM2 additionally requires id,
// returning ErrMissingID (rather than a bare false) when id is empty so
// a caller can distinguish a missing ID from a genuine verify failure.
func DispatchVerify(tag uint32, pub, id, msg []byte, preHashed bool, sig []byte) (bool, error) {
	if tag == ED25519 {
		if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
			return false, nil
		}
		return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
	}
	if len(sig) != 2*bigint.Size {
		return false, nil
	}
	s := Signature{R: bigint.FromBytes(sig[:bigint.Size]), S: bigint.FromBytes(sig[bigint.Size:])}

	if tag == SM2STANDARD {
		if len(pub) != 2*bigint.Size {
			return false, nil
		}
		p := NewPoint(bigint.FromBytes(pub[:bigint.Size]), bigint.FromBytes(pub[bigint.Size:]))
		return SM2Verify(p, id, msg, preHashed, s)
	}
	params, err := paramsFor(tag)
	if err != nil || len(pub) != 2*bigint.Size {
		return false, err
	}
	p := NewPoint(bigint.FromBytes(pub[:bigint.Size]), bigint.FromBytes(pub[bigint.Size:]))
	return Verify(params, p, msg, preHashed, s), nil
}

// DispatchEncrypt/DispatchDecrypt accept only SM2_STANDARD.
func DispatchEncrypt(tag uint32, pub, msg []byte, rng io.Reader) ([]byte, error) {
	if tag != SM2STANDARD {
		return nil, ErrWrongType
	}
	if len(pub) != 2*bigint.Size {
		return nil, ErrMalformedInput
	}
	p := NewPoint(bigint.FromBytes(pub[:bigint.Size]), bigint.FromBytes(pub[bigint.Size:]))
	return SM2Encrypt(p, msg, rng)
}

func DispatchDecrypt(tag uint32, d, ciphertext []byte) ([]byte, error) {
	if tag != SM2STANDARD {
		return nil, ErrWrongType
	}
	scalar := bigint.FromBytes(d)
	return SM2Decrypt(scalar, ciphertext)
}

// DispatchPointCompress/Decompress accept only the three Weierstrass
// curves.
func DispatchPointCompress(tag uint32, point []byte) ([]byte, error) {
	if _, err := paramsFor(tag); err != nil {
		return nil, err
	}
	return PointCompress(point)
}

func DispatchPointDecompress(tag uint32, compressed []byte) ([]byte, error) {
	params, err := paramsFor(tag)
	if err != nil {
		return nil, err
	}
	return PointDecompress(params, compressed)
}

// DispatchGetCurveOrder accepts all four tags.
func DispatchGetCurveOrder(tag uint32) ([]byte, error) {
	if tag == ED25519 {
		return ed25519Order(), nil
	}
	params, err := paramsFor(tag)
	if err != nil {
		return nil, err
	}
	return params.N.Bytes(), nil
}
