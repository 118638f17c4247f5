// Package ske implements a password-keyed symmetric authenticated
// encryption scheme: a record of the form
// nonce(64B) || ciphertext(|msg|B) || tag(64B), keyed via KMACXOF256.
package ske

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/lukechampine/fastxor"

	"github.com/NWc0de/KeccakUtils/keccak"
)

const (
	nonceLen = 64
	tagLen   = 64
	minRecordLen = nonceLen + tagLen
)

// ErrMalformedRecord is returned when a record is too short to contain
// a nonce and tag.
var ErrMalformedRecord = errors.New("ske: record shorter than nonce+tag")

// Encrypt produces an AE record of plaintext under password: draws a
// fresh 64-byte nonce, derives key1/key2 via KMACXOF256, masks the
// plaintext with key1, and tags the plaintext (not the ciphertext)
// with key2. Returns nonce || ciphertext || tag.
func Encrypt(password, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("ske: draw nonce: %w", err)
	}

	key1, key2, err := deriveKeys(nonce, password)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(plaintext))
	if len(plaintext) > 0 {
		mask, err := keccak.KMACXOF256(key1, nil, 8*len(plaintext), "SKE")
		if err != nil {
			return nil, fmt.Errorf("ske: derive mask: %w", err)
		}
		fastxor.Bytes(ciphertext, plaintext, mask)
	}

	tag, err := keccak.KMACXOF256(key2, plaintext, 8*tagLen, "SKA")
	if err != nil {
		return nil, fmt.Errorf("ske: derive tag: %w", err)
	}

	out := make([]byte, 0, nonceLen+len(ciphertext)+tagLen)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// Decrypt splits record into nonce/ciphertext/tag, re-derives the
// keys, recovers the plaintext, and recomputes the tag over it. It
// returns whether the recomputed tag matches (using a constant-time
// comparison) alongside the recovered plaintext; a tag mismatch is
// reported as valid=false, not an error.
func Decrypt(password, record []byte) (valid bool, plaintext []byte, err error) {
	if len(record) < minRecordLen {
		return false, nil, ErrMalformedRecord
	}
	nonce := record[:nonceLen]
	ct := record[nonceLen : len(record)-tagLen]
	tag := record[len(record)-tagLen:]

	key1, key2, err := deriveKeys(nonce, password)
	if err != nil {
		return false, nil, err
	}

	pt := make([]byte, len(ct))
	if len(ct) > 0 {
		mask, err := keccak.KMACXOF256(key1, nil, 8*len(ct), "SKE")
		if err != nil {
			return false, nil, fmt.Errorf("ske: derive mask: %w", err)
		}
		fastxor.Bytes(pt, ct, mask)
	}

	wantTag, err := keccak.KMACXOF256(key2, pt, 8*tagLen, "SKA")
	if err != nil {
		return false, nil, fmt.Errorf("ske: derive tag: %w", err)
	}

	return subtle.ConstantTimeCompare(tag, wantTag) == 1, pt, nil
}

// deriveKeys implements keys <- KMACXOF256(nonce||password, "", 1024, "S"),
// split into key1 (first 64B) and key2 (next 64B).
func deriveKeys(nonce, password []byte) (key1, key2 []byte, err error) {
	combined := append(append([]byte{}, nonce...), password...)
	keys, err := keccak.KMACXOF256(combined, nil, 1024, "S")
	if err != nil {
		return nil, nil, fmt.Errorf("ske: derive session keys: %w", err)
	}
	return keys[:64], keys[64:128], nil
}
