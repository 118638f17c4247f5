// Package keccak implements the Keccak-p[1600,24] permutation and the
// sponge construction it drives, plus the NIST-derived functions built
// on top of it (SHA3, SHAKE256, cSHAKE256, KMACXOF256).
//
// Reference: NIST FIPS 202, NIST SP 800-185.
package keccak

// roundConstants are the 24 ι-step round constants for Keccak-p[1600,24].
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets are the 24 ρ rotation amounts, in the traversal order
// visited by the combined rho/pi step (see piLanes below).
var rotationOffsets = [24]uint{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// piLanes gives, in traversal order, the flat lane index (x+5y) that
// receives the rotated value of the previous lane in the sequence. The
// traversal starts from lane (x=1,y=0) held in `current`.
var piLanes = [24]uint{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

func rotl64(x uint64, n uint) uint64 {
	n %= 64
	if n == 0 {
		return x
	}
	return (x << n) | (x >> (64 - n))
}

// permute applies the Keccak-p[1600,24] permutation in place to the
// 25-word lattice a, word at (x, y) stored at index x+5y.
func permute(a *[25]uint64) {
	var c [5]uint64
	var d [5]uint64

	for round := 0; round < 24; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// rho + pi, combined
		current := a[1]
		for i := 0; i < 24; i++ {
			idx := piLanes[i]
			temp := a[idx]
			a[idx] = rotl64(current, rotationOffsets[i])
			current = temp
		}

		// chi
		for y := 0; y < 5; y++ {
			row := [5]uint64{a[5*y], a[5*y+1], a[5*y+2], a[5*y+3], a[5*y+4]}
			for x := 0; x < 5; x++ {
				a[5*y+x] = row[x] ^ ((^row[(x+1)%5]) & row[(x+2)%5])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}
