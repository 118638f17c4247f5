package ecsvc

import (
	"bytes"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := DeriveKeyPair([]byte("TestPassword"))
	if err != nil {
		t.Fatalf("DeriveKeyPair: %v", err)
	}

	msg := bytes.Repeat([]byte{0xFF}, 100)
	sig, err := Sign(kp.PrvScalar, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(sig, kp.Pub, msg)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	kp, err := DeriveKeyPair([]byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	sig, err := Sign(kp.PrvScalar, []byte("message one"))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Verify(sig, kp.Pub, []byte("message two"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verification to fail for a different message")
	}
}

func TestSignatureTamperFlipsVerify(t *testing.T) {
	kp, err := DeriveKeyPair([]byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("sign me")
	sig, err := Sign(kp.PrvScalar, msg)
	if err != nil {
		t.Fatal(err)
	}
	enc := sig.Bytes()
	if len(enc) != sigLen {
		t.Fatalf("signature length = %d, want %d", len(enc), sigLen)
	}
	enc[0] ^= 0x01
	tampered, err := SignatureFromBytes(enc)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Verify(tampered, kp.Pub, msg)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected tampered signature to fail verification")
	}
}

func TestSignatureEncodeDecodeRoundTrip(t *testing.T) {
	kp, err := DeriveKeyPair([]byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	sig, err := Sign(kp.PrvScalar, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	dec, err := SignatureFromBytes(sig.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if dec.H.Cmp(sig.H) != 0 || dec.Z.Cmp(sig.Z) != 0 {
		t.Fatal("signature round trip mismatch")
	}
}

func TestEncryptDecryptECRoundTrip(t *testing.T) {
	kp, err := DeriveKeyPair([]byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("a message for the recipient's eyes only")
	record, err := EncryptEC(kp.Pub, msg)
	if err != nil {
		t.Fatalf("EncryptEC: %v", err)
	}
	valid, pt, err := DecryptEC(kp.PrvScalar, record)
	if err != nil {
		t.Fatalf("DecryptEC: %v", err)
	}
	if !valid {
		t.Fatal("expected valid ECDHIES record")
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("plaintext mismatch: got %q want %q", pt, msg)
	}
}

func TestDecryptECWrongKeyFailsTag(t *testing.T) {
	kp1, err := DeriveKeyPair([]byte("pw1"))
	if err != nil {
		t.Fatal(err)
	}
	kp2, err := DeriveKeyPair([]byte("pw2"))
	if err != nil {
		t.Fatal(err)
	}
	record, err := EncryptEC(kp1.Pub, []byte("msg"))
	if err != nil {
		t.Fatal(err)
	}
	valid, _, err := DecryptEC(kp2.PrvScalar, record)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Fatal("expected wrong-key decrypt to fail")
	}
}

func TestDecryptECMalformedRecord(t *testing.T) {
	_, _, err := DecryptEC(nil, make([]byte, 10))
	if err != ErrMalformedRecord {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
