// Package ecsvc implements ECDHIES-style asymmetric encryption and a
// Schnorr-style signature scheme over E_521, exposed as a small set of
// pure functions operating on key pairs, records, and signatures.
package ecsvc

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"github.com/lukechampine/fastxor"

	"github.com/NWc0de/KeccakUtils/curve"
	"github.com/NWc0de/KeccakUtils/internal/bigint"
	"github.com/NWc0de/KeccakUtils/keccak"
)

// ErrMalformedRecord is returned when an ECDHIES record is too short
// to contain a serialized point and a tag.
var ErrMalformedRecord = errors.New("ecsvc: record shorter than point+tag")

// ErrMalformedEncoding is returned when a signature byte slice is not
// exactly 129 bytes.
var ErrMalformedEncoding = errors.New("ecsvc: malformed signature encoding")

const (
	hLen     = 64
	zLen     = 65
	sigLen   = hLen + zLen
	tagLen   = 64
	minECRecordLen = curve.StdBLen + tagLen
)

// KeyPair holds the private scalar material and derived public point
// for the EC services. PrvBytes is the sensitive KMACXOF256 output the
// scalar was derived from; it is kept only to support re-deriving the
// same key pair deterministically from a password and for at-rest
// encryption in the keyfile package.
type KeyPair struct {
	PrvBytes  []byte
	PrvScalar *big.Int
	Pub       curve.Point
}

// DeriveKeyPair derives a key pair from a password:
//
//	prv_bytes <- KMACXOF256(pwd, "", 512, "K")
//	prv_scalar <- 4 * int(prv_bytes)
//	pub <- G * prv_scalar
//
// The public point is derived from the cofactor-multiplied PrvScalar,
// the same scalar every subsequent private-key operation uses, so that
// pub*k == (G*k)*PrvScalar for ECDHIES and G*z + pub*h == G*k for
// Schnorr verification.
func DeriveKeyPair(password []byte) (KeyPair, error) {
	prvBytes, err := keccak.KMACXOF256(password, nil, 512, "K")
	if err != nil {
		return KeyPair{}, fmt.Errorf("ecsvc: derive private bytes: %w", err)
	}
	s := new(big.Int).SetBytes(prvBytes)
	prvScalar := new(big.Int).Mul(s, big.NewInt(4))

	pub := curve.Generator().ScalarMult(prvScalar)
	return KeyPair{PrvBytes: prvBytes, PrvScalar: prvScalar, Pub: pub}, nil
}

// EncryptEC implements ECDHIES encryption under the recipient's public
// point: draws an ephemeral cofactor-multiplied scalar k, computes the
// shared point W = pub*k and the ephemeral public point Z = G*k,
// derives session keys from W's x coordinate, masks the plaintext, and
// tags it. Returns serialize(Z) || ciphertext || tag.
func EncryptEC(pub curve.Point, plaintext []byte) ([]byte, error) {
	kBytes := make([]byte, 65)
	if _, err := rand.Read(kBytes); err != nil {
		return nil, fmt.Errorf("ecsvc: draw ephemeral scalar: %w", err)
	}
	kBytes[0] = 0x00 // force non-negative interpretation
	k := new(big.Int).SetBytes(kBytes)
	k.Mul(k, big.NewInt(4))

	w := pub.ScalarMult(k)
	z := curve.Generator().ScalarMult(k)

	key1, key2, err := deriveSessionKeys(w.X().Bytes(), "P")
	if err != nil {
		return nil, err
	}

	mask, err := keccak.KMACXOF256(key1, nil, 8*len(plaintext), "PKE")
	if err != nil {
		return nil, fmt.Errorf("ecsvc: derive mask: %w", err)
	}
	ciphertext := make([]byte, len(plaintext))
	fastxor.Bytes(ciphertext, plaintext, mask)

	tag, err := keccak.KMACXOF256(key2, plaintext, 8*tagLen, "PKA")
	if err != nil {
		return nil, fmt.Errorf("ecsvc: derive tag: %w", err)
	}

	out := make([]byte, 0, curve.StdBLen+len(ciphertext)+tagLen)
	out = append(out, z.Bytes()...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// DecryptEC reverses EncryptEC under the recipient's private scalar.
// A tag mismatch is reported via valid=false, not an error.
func DecryptEC(prvScalar *big.Int, record []byte) (valid bool, plaintext []byte, err error) {
	if len(record) < minECRecordLen {
		return false, nil, ErrMalformedRecord
	}
	zBytes := record[:curve.StdBLen]
	ct := record[curve.StdBLen : len(record)-tagLen]
	tag := record[len(record)-tagLen:]

	z, err := curve.FromBytes(zBytes)
	if err != nil {
		return false, nil, fmt.Errorf("ecsvc: decode ephemeral point: %w", err)
	}
	w := z.ScalarMult(prvScalar)

	key1, key2, err := deriveSessionKeys(w.X().Bytes(), "P")
	if err != nil {
		return false, nil, err
	}

	mask, err := keccak.KMACXOF256(key1, nil, 8*len(ct), "PKE")
	if err != nil {
		return false, nil, fmt.Errorf("ecsvc: derive mask: %w", err)
	}
	pt := make([]byte, len(ct))
	fastxor.Bytes(pt, ct, mask)

	wantTag, err := keccak.KMACXOF256(key2, pt, 8*tagLen, "PKA")
	if err != nil {
		return false, nil, fmt.Errorf("ecsvc: derive tag: %w", err)
	}

	return subtle.ConstantTimeCompare(tag, wantTag) == 1, pt, nil
}

// Signature is the Schnorr-style (h, z) pair: h (64 bytes) and z (65
// bytes), a fixed 129 bytes total once serialized.
type Signature struct {
	H *big.Int
	Z *big.Int
}

// Sign produces a Schnorr signature of msg under prvScalar:
//
//	k <- 4 * int(KMACXOF256(prvScalar.Bytes(), msg, 512, "N"))
//	U <- G*k
//	h <- int(KMACXOF256(U.x, msg, 512, "T"))
//	z <- (k - h*prvScalar) mod r
//
// z is reduced modulo the subgroup order r, not p: the verification
// equation only holds as an identity when z and h are scalars in the
// exponent group of order r, so reducing mod p instead would produce a
// z that fails to verify almost every time.
func Sign(prvScalar *big.Int, msg []byte) (Signature, error) {
	kBytes, err := keccak.KMACXOF256(prvScalar.Bytes(), msg, 512, "N")
	if err != nil {
		return Signature{}, fmt.Errorf("ecsvc: derive nonce: %w", err)
	}
	k := new(big.Int).SetBytes(kBytes)
	k.Mul(k, big.NewInt(4))

	u := curve.Generator().ScalarMult(k)

	hBytes, err := keccak.KMACXOF256(u.X().Bytes(), msg, 512, "T")
	if err != nil {
		return Signature{}, fmt.Errorf("ecsvc: derive challenge: %w", err)
	}
	h := bigint.FromSignedBytes(hBytes)

	z := new(big.Int).Sub(k, new(big.Int).Mul(h, prvScalar))
	z.Mod(z, curve.Order())

	return Signature{H: h, Z: z}, nil
}

// Verify checks a Schnorr signature against pub and msg:
//
//	U' <- G*z + pub*h
//	accept iff int(KMACXOF256(U'.x, msg, 512, "T")) == h
func Verify(sig Signature, pub curve.Point, msg []byte) (bool, error) {
	uPrime := curve.Generator().ScalarMult(sig.Z).Add(pub.ScalarMult(sig.H))

	hPrimeBytes, err := keccak.KMACXOF256(uPrime.X().Bytes(), msg, 512, "T")
	if err != nil {
		return false, fmt.Errorf("ecsvc: derive challenge: %w", err)
	}
	hPrime := bigint.FromSignedBytes(hPrimeBytes)

	return hPrime.Cmp(sig.H) == 0, nil
}

// Bytes serializes a signature into its fixed 129-byte form: h in the
// first 64 bytes, z in the last 65, both signed two's complement,
// sign-extended where negative.
func (s Signature) Bytes() []byte {
	out := make([]byte, sigLen)
	copy(out[:hLen], bigint.SignedBytes(s.H, hLen))
	copy(out[hLen:], bigint.SignedBytes(s.Z, zLen))
	return out
}

// SignatureFromBytes parses a 129-byte signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != sigLen {
		return Signature{}, ErrMalformedEncoding
	}
	h := bigint.FromSignedBytes(b[:hLen])
	z := bigint.FromSignedBytes(b[hLen:])
	return Signature{H: h, Z: z}, nil
}

func deriveSessionKeys(xBytes []byte, custom string) (key1, key2 []byte, err error) {
	keys, err := keccak.KMACXOF256(xBytes, nil, 1024, custom)
	if err != nil {
		return nil, nil, fmt.Errorf("ecsvc: derive session keys: %w", err)
	}
	return keys[:64], keys[64:128], nil
}
