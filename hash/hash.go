// Package hash is the uniform digest menu: a single Algorithm tag
// dispatches to the collaborator hash implementations, with
// variadic-data Sum helpers.
package hash

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"

	"github.com/emmansun/gmsm/sm3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Algorithm names one digest function or fixed hash composition.
type Algorithm string

const (
	SHA1        Algorithm = "SHA1"
	SHA256      Algorithm = "SHA256"
	SHA512      Algorithm = "SHA512"
	SHA3_256    Algorithm = "SHA3_256"
	KECCAK256   Algorithm = "KECCAK256"
	SM3         Algorithm = "SM3"
	MD4         Algorithm = "MD4"
	MD5         Algorithm = "MD5"
	RIPEMD160   Algorithm = "RIPEMD160"
	BLAKE2B_256 Algorithm = "BLAKE2B_256"
	BLAKE2B_512 Algorithm = "BLAKE2B_512"
	BLAKE2S_256 Algorithm = "BLAKE2S_256"
	BLAKE256    Algorithm = "BLAKE256"
	BLAKE512    Algorithm = "BLAKE512"

	// Compound forms: fixed compositions of two of the above digests.
	DoubleSHA256       Algorithm = "DOUBLE_SHA256"
	Hash160            Algorithm = "HASH160"
	Keccak256Ripemd160 Algorithm = "KECCAK256_RIPEMD160"
	SHA3_256Ripemd160  Algorithm = "SHA3_256_RIPEMD160"
)

// ErrUnknownAlgorithm is returned for an Algorithm tag with no registered
// collaborator.
var ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")

// New returns a streaming hash.Hash for the simple (non-compound)
// algorithms. Compound forms are only available through Sum, since they
// are fixed two-stage compositions rather than a single streaming state.
func New(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case KECCAK256:
		return sha3.NewLegacyKeccak256(), nil
	case SM3:
		return sm3.New(), nil
	case MD4:
		return md4.New(), nil
	case MD5:
		return md5.New(), nil
	case RIPEMD160:
		return ripemd160.New(), nil
	case BLAKE2B_256:
		h, err := blake2b.New256(nil)
		return h, err
	case BLAKE2B_512:
		h, err := blake2b.New512(nil)
		return h, err
	case BLAKE2S_256:
		h, err := blake2s.New256(nil)
		return h, err
	case BLAKE256:
		return newBlake256(), nil
	case BLAKE512:
		return newBlake512(), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// Sum hashes the concatenation of parts under alg, including the four
// compound forms (DOUBLE_SHA256, HASH160, KECCAK256_RIPEMD160,
// SHA3_256_RIPEMD160) that chain two simple digests.
func Sum(alg Algorithm, parts ...[]byte) ([]byte, error) {
	switch alg {
	case DoubleSHA256:
		first, err := Sum(SHA256, parts...)
		if err != nil {
			return nil, err
		}
		return Sum(SHA256, first)
	case Hash160:
		first, err := Sum(SHA256, parts...)
		if err != nil {
			return nil, err
		}
		return Sum(RIPEMD160, first)
	case Keccak256Ripemd160:
		first, err := Sum(KECCAK256, parts...)
		if err != nil {
			return nil, err
		}
		return Sum(RIPEMD160, first)
	case SHA3_256Ripemd160:
		first, err := Sum(SHA3_256, parts...)
		if err != nil {
			return nil, err
		}
		return Sum(RIPEMD160, first)
	}

	h, err := New(alg)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil), nil
}

// HMACSum computes HMAC(alg, key, parts...) for any simple (streaming)
// algorithm.
func HMACSum(alg Algorithm, key []byte, parts ...[]byte) ([]byte, error) {
	newHash := func() hash.Hash {
		h, _ := New(alg)
		return h
	}
	if _, err := New(alg); err != nil {
		return nil, err
	}
	mac := hmac.New(newHash, key)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil), nil
}
