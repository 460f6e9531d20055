// Package bits provides low-level bit manipulation primitives.
package bits

import "math/bits"

// FastRange32 maps a 64-bit hash uniformly to [0, n) returning uint32.
// Uses the "fastrange" technique: multiply and take high bits.
func FastRange32(hash uint64, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, uint64(n))
	return uint32(hi)
}

// ByteWidth returns the number of bytes needed to hold v, at least 1.
func ByteWidth(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 7) / 8
}

// PutBigEndian writes the low width bytes of v into dst, most significant first.
// Precondition: len(dst) >= width.
func PutBigEndian(dst []byte, v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}
