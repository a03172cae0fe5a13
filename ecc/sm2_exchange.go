package ecc

import (
	"io"

	"github.com/eth2030/goecc/ecc/internal/bigint"
	"github.com/eth2030/goecc/ecc/internal/modarith"
	"github.com/eth2030/goecc/internal/log"
)

var exchangeLog = log.Default().Subsystem("sm2-exchange")

// w is ceil(ceil(log2 n)/2) - 1 for the SM2 curve, where n is ~256 bits:
// ceil(256/2) - 1 = 127. xBar forces bit w.
const sm2ExchangeW = 127

// xBar computes x̄ = 2^w + (x mod 2^w): the low 16 bytes of x with the
// high bit of byte 16 (from the right) set.
func xBar(x bigint.Word) bigint.Word {
	var out bigint.Word
	// Keep only the low 128 bits (16 bytes) of x.
	copy(out[bigint.Size-16:], x[bigint.Size-16:])
	// Force bit 127 (the top bit of the kept 16-byte window).
	out[bigint.Size-16] |= 0x80
	return out
}

// ExchangeEphemeral is one party's ephemeral key pair for the four-
// message key-agreement protocol: field R holds the ephemeral private
// scalar r, and field P holds the public point [r]G.
type ExchangeEphemeral struct {
	R bigint.Word
	P Point
}

// NewExchangeEphemeral draws a fresh ephemeral scalar and computes its
// public point.
func NewExchangeEphemeral(rng io.Reader) (ExchangeEphemeral, error) {
	params := SM2Curve
	r, err := randScalar(rng, params.N)
	if err != nil {
		return ExchangeEphemeral{}, err
	}
	return ExchangeEphemeral{R: r, P: PointMul(params, BasePoint(params), r)}, nil
}

// ExchangeResult is the per-party output of one step of the protocol:
// the derived shared key and the two confirmation hashes (the one this
// party sends, and the one it expects from its peer).
type ExchangeResult struct {
	Key        []byte
	Send       []byte
	ExpectRecv []byte
}

// ExchangeStep computes the shared secret and confirmation tags for one
// party. selfD is this party's long-term private key and self its
// ephemeral pair; peerPub/peerEphemeral are the peer's long-term public
// key and ephemeral public point; selfID/peerID are the SM2 identity
// strings; selfIsResponder selects which confirmation hash this party
// sends: the responder sends S_B with the 0x02 prefix and expects the
// 0x03 hash; the initiator is the mirror image.
func ExchangeStep(selfD bigint.Word, self ExchangeEphemeral, selfID []byte,
	peerPub, peerEphemeral Point, peerID []byte, keylenBytes int, selfIsResponder bool) (ExchangeResult, error) {

	params := SM2Curve
	selfPub := PointMul(params, BasePoint(params), selfD)

	xBarSelf := xBar(self.P.X)
	xBarPeer := xBar(peerEphemeral.X)

	// t = (d + xBar_self * r) mod n
	xr, err := modarith.ModMul(xBarSelf, self.R, params.N)
	if err != nil {
		return ExchangeResult{}, ErrArithmetic
	}
	defer bigint.Zero(&xr)
	t, err := modarith.ModAdd(selfD, xr, params.N)
	if err != nil {
		return ExchangeResult{}, ErrArithmetic
	}
	defer bigint.Zero(&t)

	// U = [t] * (peerPub + [xBar_peer] peerEphemeral)
	scaled := PointMul(params, peerEphemeral, xBarPeer)
	sum := PointAdd(params, peerPub, scaled)
	U := PointMul(params, sum, t)
	if U.Infinity {
		exchangeLog.Warn("key agreement derived point at infinity", "responder", selfIsResponder)
		return ExchangeResult{}, ErrVerificationFailed
	}

	var zInit, zResp []byte
	var rInit, rResp Point
	if selfIsResponder {
		zInit, zResp = ZA(params, peerID, peerPub), ZA(params, selfID, selfPub)
		rInit, rResp = peerEphemeral, self.P
	} else {
		zInit, zResp = ZA(params, selfID, selfPub), ZA(params, peerID, peerPub)
		rInit, rResp = self.P, peerEphemeral
	}
	defer zeroBytes(zInit)
	defer zeroBytes(zResp)

	Ux, Uy := U.X.Bytes(), U.Y.Bytes()
	rInitX, rInitY := rInit.X.Bytes(), rInit.Y.Bytes()
	rRespX, rRespY := rResp.X.Bytes(), rResp.Y.Bytes()
	defer zeroBytes(Ux)
	defer zeroBytes(Uy)
	defer zeroBytes(rInitX)
	defer zeroBytes(rInitY)
	defer zeroBytes(rRespX)
	defer zeroBytes(rRespY)

	kdfInput := concatAll(Ux, Uy, zInit, zResp)
	defer zeroBytes(kdfInput)
	key := sm2KDF(kdfInput, keylenBytes)

	inner := sm3Sum(Ux, zInit, zResp, rInitX, rInitY, rRespX, rRespY)
	defer zeroBytes(inner)

	hashWithPrefix := func(prefix byte) []byte {
		return sm3Sum([]byte{prefix}, Uy, inner)
	}

	var send, expectRecv []byte
	if selfIsResponder {
		send = hashWithPrefix(0x02)
		expectRecv = hashWithPrefix(0x03)
	} else {
		// Initiator checks the responder's S_B (0x02) then sends S_A (0x03).
		expectRecv = hashWithPrefix(0x02)
		send = hashWithPrefix(0x03)
	}

	return ExchangeResult{Key: key, Send: send, ExpectRecv: expectRecv}, nil
}

func concatAll(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
