package ecc

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestSM2SignVerifyRoundTrip(t *testing.T) {
	d, err := randScalar(rand.Reader, SM2Curve.N)
	if err != nil {
		t.Fatal(err)
	}
	pub := PointMul(SM2Curve, BasePoint(SM2Curve), d)
	id := []byte("1234567812345678")
	msg := []byte("message digest")

	sig, err := SM2Sign(d, id, msg, false, rand.Reader, nil)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := SM2Verify(pub, id, msg, false, sig)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("sm2 verify failed for honest signature")
	}
}

// SM2 sign with an empty ID must fail with ErrMissingID.
func TestSM2MissingID(t *testing.T) {
	d, _ := randScalar(rand.Reader, SM2Curve.N)
	_, err := SM2Sign(d, nil, []byte("m"), false, rand.Reader, nil)
	if err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if ResultCode(err) != CodeMissingID {
		t.Fatalf("expected CodeMissingID")
	}

	pub := PointMul(SM2Curve, BasePoint(SM2Curve), d)
	if _, err := SM2Verify(pub, nil, []byte("m"), false, Signature{}); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestSM2EncryptDecryptRoundTrip(t *testing.T) {
	d, err := randScalar(rand.Reader, SM2Curve.N)
	if err != nil {
		t.Fatal(err)
	}
	pub := PointMul(SM2Curve, BasePoint(SM2Curve), d)

	msg := []byte("hello, sm2 world")
	ct, err := SM2Encrypt(pub, msg, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := SM2Decrypt(d, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("decrypt(encrypt(M)) != M")
	}
}

// A bit-flip tamper in C3 or C2 must yield a decrypt failure.
func TestSM2EncryptionTamperDetected(t *testing.T) {
	d, _ := randScalar(rand.Reader, SM2Curve.N)
	pub := PointMul(SM2Curve, BasePoint(SM2Curve), d)

	msg := []byte("hello")
	ct, err := SM2Encrypt(pub, msg, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	tamperedC3 := append([]byte{}, ct...)
	tamperedC3[1+2*32] ^= 0x01 // flip a bit inside C3
	if _, err := SM2Decrypt(d, tamperedC3); err == nil {
		t.Fatalf("decrypt should fail with tampered C3")
	}

	tamperedC2 := append([]byte{}, ct...)
	tamperedC2[len(tamperedC2)-1] ^= 0x01 // flip a bit inside C2
	if _, err := SM2Decrypt(d, tamperedC2); err == nil {
		t.Fatalf("decrypt should fail with tampered C2")
	}
}

// Key agreement between two independent parties must yield identical
// derived keys and matching confirmation hashes.
func TestSM2KeyAgreement(t *testing.T) {
	dA, _ := randScalar(rand.Reader, SM2Curve.N)
	dB, _ := randScalar(rand.Reader, SM2Curve.N)
	pubA := PointMul(SM2Curve, BasePoint(SM2Curve), dA)
	pubB := PointMul(SM2Curve, BasePoint(SM2Curve), dB)
	idA := []byte("alice@example.com")
	idB := []byte("bob@example.com")

	ephA, err := NewExchangeEphemeral(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	ephB, err := NewExchangeEphemeral(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	resB, err := ExchangeStep(dB, ephB, idB, pubA, ephA.P, idA, 16, true)
	if err != nil {
		t.Fatal(err)
	}
	resA, err := ExchangeStep(dA, ephA, idA, pubB, ephB.P, idB, 16, false)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(resA.Key, resB.Key) {
		t.Fatalf("derived keys differ: %x vs %x", resA.Key, resB.Key)
	}
	if !bytes.Equal(resA.Send, resB.ExpectRecv) {
		t.Fatalf("A's sent confirmation doesn't match B's expectation")
	}
	if !bytes.Equal(resB.Send, resA.ExpectRecv) {
		t.Fatalf("B's sent confirmation doesn't match A's expectation")
	}
}
