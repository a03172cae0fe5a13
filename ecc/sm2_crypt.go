package ecc

import (
	"encoding/binary"
	"io"

	"github.com/eth2030/goecc/ecc/internal/bigint"
)

// sm2KDF is the GB/T 32918 counter-mode SM3 key derivation function:
// for i = 1..ceil(klen/256), T_i = SM3(Z || ct_i) with ct_i a
// 4-byte big-endian counter; concatenate and truncate to klenBytes.
func sm2KDF(z []byte, klenBytes int) []byte {
	out := make([]byte, 0, klenBytes+sm3Size)
	var ctr [4]byte
	for i := uint32(1); len(out) < klenBytes; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		out = append(out, sm3Sum(z, ctr[:])...)
	}
	return out[:klenBytes]
}

const sm3Size = 32

// SM2Encrypt is the GB/T 32918 public-key encryption operation, retrying
// with a fresh ephemeral k if the KDF output is all-zero.
func SM2Encrypt(pub Point, msg []byte, rng io.Reader) ([]byte, error) {
	params := SM2Curve
	if !IsPublicKeyLegal(params, pub) {
		return nil, ErrPublicKeyIllegal
	}

	for {
		k, err := randScalar(rng, params.N)
		if err != nil {
			return nil, err
		}
		C1 := PointMul(params, BasePoint(params), k)
		if C1.Infinity {
			continue
		}
		kP := PointMul(params, pub, k)
		if kP.Infinity {
			continue
		}

		kPx, kPy := kP.X.Bytes(), kP.Y.Bytes()
		zBytes := append(append([]byte{}, kPx...), kPy...)
		t := sm2KDF(zBytes, len(msg))
		defer zeroBytes(zBytes)
		defer zeroBytes(t)
		defer zeroBytes(kPx)
		defer zeroBytes(kPy)
		defer bigint.Zero(&k)
		if allZero(t) {
			continue
		}

		c2 := make([]byte, len(msg))
		for i := range msg {
			c2[i] = msg[i] ^ t[i]
		}
		c3 := sm3Sum(kPx, msg, kPy)

		out := make([]byte, 0, 1+2*bigint.Size+sm3Size+len(msg))
		out = append(out, 0x04)
		out = append(out, C1.X.Bytes()...)
		out = append(out, C1.Y.Bytes()...)
		out = append(out, c3...)
		out = append(out, c2...)
		return out, nil
	}
}

// SM2Decrypt is the GB/T 32918 public-key decryption operation. Every
// rejection path (illegal C1, zero KDF output, MAC mismatch) returns the
// same FAILURE-shaped error so a caller can never distinguish the cause.
func SM2Decrypt(d bigint.Word, ciphertext []byte) ([]byte, error) {
	params := SM2Curve
	if !IsPrivateKeyLegal(params, d) {
		return nil, ErrPrivateKeyIllegal
	}
	if len(ciphertext) < 1+2*bigint.Size+sm3Size || ciphertext[0] != 0x04 {
		return nil, ErrVerificationFailed
	}

	c1x := bigint.FromBytes(ciphertext[1 : 1+bigint.Size])
	c1y := bigint.FromBytes(ciphertext[1+bigint.Size : 1+2*bigint.Size])
	c3 := ciphertext[1+2*bigint.Size : 1+2*bigint.Size+sm3Size]
	c2 := ciphertext[1+2*bigint.Size+sm3Size:]

	C1 := NewPoint(c1x, c1y)
	if !IsPublicKeyLegal(params, C1) {
		return nil, ErrVerificationFailed
	}

	P := PointMul(params, C1, d)
	if P.Infinity {
		return nil, ErrVerificationFailed
	}

	Px, Py := P.X.Bytes(), P.Y.Bytes()
	zBytes := append(append([]byte{}, Px...), Py...)
	t := sm2KDF(zBytes, len(c2))
	defer zeroBytes(zBytes)
	defer zeroBytes(t)
	defer zeroBytes(Px)
	defer zeroBytes(Py)
	if allZero(t) {
		return nil, ErrVerificationFailed
	}

	m := make([]byte, len(c2))
	for i := range c2 {
		m[i] = c2[i] ^ t[i]
	}

	c3Prime := sm3Sum(Px, m, Py)
	if !bytesEqual(c3Prime, c3) {
		return nil, ErrVerificationFailed
	}
	return m, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
