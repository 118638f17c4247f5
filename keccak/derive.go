package keccak

// Functions built on top of the sponge: SHA3-{224,256,384,512}, SHAKE256,
// cSHAKE256, KMACXOF256, and the NIST SP 800-185 §2.3 encoding helpers.

// SHA3 computes the SHA3-n digest of in, for n in {224,256,384,512}.
func SHA3(in []byte, n int) ([]byte, error) {
	switch n {
	case 224, 256, 384, 512:
	default:
		return nil, ErrInvalidLength
	}
	msg := append(append([]byte{}, in...), 0x06)
	return sponge(msg, n, 2*n)
}

// SHAKE256 squeezes outBits bits of SHAKE256 output from in.
func SHAKE256(in []byte, outBits int) ([]byte, error) {
	msg := append(append([]byte{}, in...), 0x1F)
	return sponge(msg, outBits, 512)
}

// CShake256 computes cSHAKE256(in, outBits, fnName, customStr). When
// both fnName and customStr are empty it falls through to SHAKE256, per
// NIST SP 800-185 §3.3.
func CShake256(in []byte, outBits int, fnName, customStr string) ([]byte, error) {
	if fnName == "" && customStr == "" {
		return SHAKE256(in, outBits)
	}
	prefix := BytePad(append(EncodeString([]byte(fnName)), EncodeString([]byte(customStr))...), 136)
	msg := append(prefix, in...)
	msg = append(msg, 0x04)
	return sponge(msg, outBits, 512)
}

// KMACXOF256 computes the extended-output KMAC defined by NIST SP
// 800-185 §4, keyed by key, customized by customStr.
func KMACXOF256(key, in []byte, outBits int, customStr string) ([]byte, error) {
	newIn := BytePad(EncodeString(key), 136)
	newIn = append(newIn, in...)
	newIn = append(newIn, RightEncode(0)...)
	return CShake256(newIn, outBits, "KMAC", customStr)
}

// LeftEncode implements NIST SP 800-185 §2.3.1: the minimal big-endian
// encoding of x prefixed by its own byte length.
func LeftEncode(x uint64) []byte {
	n := byteLen(x)
	out := make([]byte, 1+n)
	out[0] = byte(n)
	putBigEndian(out[1:], x, n)
	return out
}

// RightEncode implements NIST SP 800-185 §2.3.1, suffixed instead of
// prefixed by the byte length.
func RightEncode(x uint64) []byte {
	n := byteLen(x)
	out := make([]byte, n+1)
	putBigEndian(out[:n], x, n)
	out[n] = byte(n)
	return out
}

// EncodeString implements NIST SP 800-185 §2.3.2: left_encode(|s|*8) || s.
func EncodeString(s []byte) []byte {
	return append(LeftEncode(uint64(len(s))*8), s...)
}

// BytePad implements NIST SP 800-185 §2.3.3: left_encode(w) || s,
// zero-padded to a multiple of w bytes.
func BytePad(s []byte, w int) []byte {
	out := append(LeftEncode(uint64(w)), s...)
	if rem := len(out) % w; rem != 0 {
		out = append(out, make([]byte, w-rem)...)
	}
	return out
}

// byteLen returns the minimal byte count n such that x < 2^(8n), with
// n=1 for x=0.
func byteLen(x uint64) int {
	if x == 0 {
		return 1
	}
	n := 0
	for v := x; v > 0; v >>= 8 {
		n++
	}
	return n
}

func putBigEndian(dst []byte, x uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		dst[i] = byte(x)
		x >>= 8
	}
}
