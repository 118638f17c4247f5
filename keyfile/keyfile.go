// Package keyfile implements persistence of E_521 key pairs to disk: a
// raw 132-byte public key file, an AE-wrapped private key file, and a
// small self-signed metadata record (owner, creation time, a signature
// over the key's own public fields).
package keyfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/NWc0de/KeccakUtils/curve"
	"github.com/NWc0de/KeccakUtils/ecsvc"
	"github.com/NWc0de/KeccakUtils/ske"
)

// ErrAuthFailed is returned when a loaded private key's AE tag fails to
// verify: a fatal condition, unlike the AE/ECDHIES decrypt flag, which
// reports tag mismatches as booleans, since loading a private key from
// disk has no other way to signal the wrong passphrase was supplied.
var ErrAuthFailed = errors.New("keyfile: private key authentication failed")

// KeyRecord is the metadata attached to a freshly generated key pair:
// owner name, creation time, and a self-signature over
// (owner || pubX || pubY || dateCreated) under the same password,
// serving as a simple provenance record.
type KeyRecord struct {
	Owner       string `json:"owner"`
	DateCreated string `json:"date_created"`
	Signature   string `json:"signature"` // hex-encoded 129-byte Schnorr signature (ecsvc.Sign under the key's PrvScalar)
}

// WriteFileFunc is the single file-system interface this package
// consumes: file I/O is plumbing owned by the CLI layer, not the
// cryptographic core.
type WriteFileFunc func(path string, data []byte) error

// GenerateAndWrite derives a key pair from password, signs its own
// metadata, and writes the public key (raw StdBLen bytes), the
// encrypted private key (an AE record over prvBytes under
// filePassword), and the JSON metadata record to the three given paths.
// If filePassword is empty, password is reused for the private-key
// encryption.
func GenerateAndWrite(password []byte, owner, filePassword, pubPath, prvPath, metaPath string, writeFile WriteFileFunc) (ecsvc.KeyPair, KeyRecord, error) {
	kp, err := ecsvc.DeriveKeyPair(password)
	if err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: derive key pair: %w", err)
	}

	if len(filePassword) == 0 {
		filePassword = string(password)
	}

	prvRecord, err := ske.Encrypt([]byte(filePassword), kp.PrvBytes)
	if err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: encrypt private key: %w", err)
	}

	rec := KeyRecord{
		Owner:       owner,
		DateCreated: time.Now().Format(time.RFC1123),
	}
	sigInput := []byte(rec.Owner + kp.Pub.X().String() + kp.Pub.Y().String() + rec.DateCreated)
	sig, err := ecsvc.Sign(kp.PrvScalar, sigInput)
	if err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: self-sign metadata: %w", err)
	}
	rec.Signature = fmt.Sprintf("%x", sig.Bytes())

	metaJSON, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: marshal metadata: %w", err)
	}

	if err := writeFile(pubPath, kp.Pub.Bytes()); err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: write public key: %w", err)
	}
	if err := writeFile(prvPath, prvRecord); err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: write private key: %w", err)
	}
	if err := writeFile(metaPath, metaJSON); err != nil {
		return ecsvc.KeyPair{}, KeyRecord{}, fmt.Errorf("keyfile: write metadata: %w", err)
	}

	return kp, rec, nil
}

// LoadPublicKey deserializes a public key from its raw 132-byte
// encoding.
func LoadPublicKey(raw []byte) (curve.Point, error) {
	pub, err := curve.FromBytes(raw)
	if err != nil {
		return curve.Point{}, fmt.Errorf("keyfile: load public key: %w", err)
	}
	return pub, nil
}

// LoadPrivateKey decrypts an AE-wrapped private key record under
// filePassword and reconstructs the full key pair via the same
// derivation DeriveKeyPair uses. Returns ErrAuthFailed if the AE tag
// does not verify.
func LoadPrivateKey(filePassword []byte, record []byte) (ecsvc.KeyPair, error) {
	valid, prvBytes, err := ske.Decrypt(filePassword, record)
	if err != nil {
		return ecsvc.KeyPair{}, fmt.Errorf("keyfile: decrypt private key: %w", err)
	}
	if !valid {
		return ecsvc.KeyPair{}, ErrAuthFailed
	}

	s := new(big.Int).SetBytes(prvBytes)
	prvScalar := new(big.Int).Mul(s, big.NewInt(4))
	pub := curve.Generator().ScalarMult(prvScalar)

	return ecsvc.KeyPair{PrvBytes: prvBytes, PrvScalar: prvScalar, Pub: pub}, nil
}
