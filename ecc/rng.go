package ecc

import (
	"crypto/rand"
	"io"

	"github.com/eth2030/goecc/ecc/internal/bigint"
)

// randScalar draws a uniform scalar in [1, n-1] from r, defaulting to
// crypto/rand.Reader when r is nil.
func randScalar(r io.Reader, n bigint.Word) (bigint.Word, error) {
	if r == nil {
		r = rand.Reader
	}
	one := bigint.Word{}
	one[bigint.Size-1] = 1
	nMinus1, _ := bigint.Sub(n, one)

	for {
		var buf [bigint.Size]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return bigint.Word{}, err
		}
		k := bigint.FromBytes(buf[:])
		if k.IsZero() {
			continue
		}
		if bigint.Cmp(k, nMinus1) > 0 {
			continue
		}
		return k, nil
	}
}
