// Package bigint holds the two's-complement big-integer encoding shared
// by the curve and ecsvc packages: point coordinates and Schnorr
// signature fields are both signed two's-complement big-endian
// integers.
package bigint

import "math/big"

// SignedBytes encodes v as an n-byte two's-complement big-endian
// integer: left-padded with 0x00 if non-negative, sign-extended with
// 0xFF if negative. Equivalent to v mod 2^(8n) written big-endian,
// since Go's big.Int.Mod is Euclidean (always non-negative for a
// positive modulus).
func SignedBytes(v *big.Int, n int) []byte {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	wrapped := new(big.Int).Mod(v, mod)
	out := make([]byte, n)
	b := wrapped.Bytes()
	copy(out[n-len(b):], b)
	return out
}

// FromSignedBytes parses an n-byte two's-complement big-endian integer:
// negative iff the top bit of the first byte is set. A 64-byte hash
// whose top bit happens to be 1 therefore parses as negative; this is
// intentional, and the serializers rely on it.
func FromSignedBytes(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, mod)
	}
	return v
}
