package ske

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pw := []byte("correct horse battery staple")
	msg := []byte("the quick brown fox jumps over the lazy dog")

	record, err := Encrypt(pw, msg)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(record) != nonceLen+len(msg)+tagLen {
		t.Fatalf("record length = %d, want %d", len(record), nonceLen+len(msg)+tagLen)
	}

	valid, pt, err := Decrypt(pw, record)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !valid {
		t.Fatal("expected valid tag")
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("plaintext mismatch: got %q want %q", pt, msg)
	}
}

func TestEmptyPlaintextRecordLength(t *testing.T) {
	pw := []byte("pw")
	record, err := Encrypt(pw, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(record) != minRecordLen {
		t.Fatalf("empty-plaintext record length = %d, want %d", len(record), minRecordLen)
	}
	valid, pt, err := Decrypt(pw, record)
	if err != nil {
		t.Fatal(err)
	}
	if !valid || len(pt) != 0 {
		t.Fatalf("expected valid empty plaintext, got valid=%v pt=%x", valid, pt)
	}
}

func TestWrongPasswordFailsTag(t *testing.T) {
	msg := []byte("secret message")
	record, err := Encrypt([]byte("pw1"), msg)
	if err != nil {
		t.Fatal(err)
	}
	valid, _, err := Decrypt([]byte("pw2"), record)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Fatal("expected invalid tag under wrong password")
	}
}

func TestTamperedByteFlipsValid(t *testing.T) {
	pw := []byte("pw")
	msg := []byte("message content long enough to matter")
	record, err := Encrypt(pw, msg)
	if err != nil {
		t.Fatal(err)
	}
	record[nonceLen] ^= 0x01 // flip a ciphertext byte
	valid, _, err := Decrypt(pw, record)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Fatal("expected tampered record to fail tag check")
	}
}

func TestMalformedRecordTooShort(t *testing.T) {
	_, _, err := Decrypt([]byte("pw"), make([]byte, minRecordLen-1))
	if err != ErrMalformedRecord {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
