// Package phf implements the byte perfect hash used by wide branch nodes.
//
// A branch over n distinct selector bytes stores its hash as one block:
//
//	Offset  Size  Field
//	0       1     p      first-level parameter (bucket function)
//	1       n     q[i]   second-level pilot for bucket i
//	1+n     n     k[j]   selector byte stored in slot j
//
// Lookup is a single probe: bucket l1 = F1(b, p), slot l2 = F2(b, q[l1]), and
// b is present only if k[l2] == b. The function is collision-free for the
// bytes it was built from; any other byte lands on some slot and fails the
// equality check.
package phf

import (
	"github.com/zeebo/xxh3"

	intbits "github.com/tamirms/zerotrie/internal/bits"
)

// MinKeys is the smallest fan-out stored with a perfect hash. Narrower
// branches use a sorted search array instead.
const MinKeys = 16

// numParams is the number of values an 8-bit parameter or pilot can take.
const numParams = 256

// pilotHashC is the PTRHash mixing constant, also used for parameter hashing.
const pilotHashC = 0x517cc1b727220a95

// Fixed seeds for the per-byte base hashes. Changing them changes the
// serialized form of every wide branch.
const (
	bucketSeed = 0x7a65726f74726965 // "zerotrie"
	slotSeed   = 0x6272616e63686573 // "branches"
	paramSeed  = 0x9e3779b97f4a7c15
)

var (
	bucketHashes [256]uint64
	slotHashes   [256]uint64
	paramHashes  [numParams]uint64
)

func init() {
	var b [1]byte
	for i := range 256 {
		b[0] = byte(i)
		bucketHashes[i] = fold(xxh3.HashSeed(b[:], bucketSeed))
		slotHashes[i] = fold(xxh3.HashSeed(b[:], slotSeed))
		paramHashes[i] = paramHash(uint8(i))
	}
}

// fold precomputes h ^ (h >> 32) so the per-parameter cost is one multiply.
func fold(h uint64) uint64 {
	return h ^ (h >> 32)
}

// paramHash derives a well-mixed odd multiplier from an 8-bit parameter.
// The SplitMix64 finalizer makes the 256 parameters behave as independent
// trials; "| 1" keeps the multiplication bijective and never zero.
func paramHash(p uint8) uint64 {
	x := pilotHashC * (uint64(p) ^ paramSeed)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x | 1
}

// F1 maps b to its bucket in [0, n) under first-level parameter p.
func F1(b, p byte, n int) int {
	return int(intbits.FastRange32(bucketHashes[b]*paramHashes[p], uint32(n)))
}

// F2 maps b to its slot in [0, n) under pilot q.
func F2(b, q byte, n int) int {
	return int(intbits.FastRange32(slotHashes[b]*paramHashes[q], uint32(n)))
}

// Size returns the encoded size of a perfect hash over n keys.
func Size(n int) int {
	return 1 + 2*n
}

// Keys returns the slot-ordered key array of an encoded block.
// Precondition: len(data) >= Size(n).
func Keys(data []byte, n int) []byte {
	return data[1+n : 1+2*n]
}

// Lookup returns the slot holding b in an encoded block for n keys.
// It reports false when b is not one of the keys or data is too short.
func Lookup(data []byte, n int, b byte) (int, bool) {
	if n <= 0 || len(data) < Size(n) {
		return 0, false
	}
	l1 := F1(b, data[0], n)
	l2 := F2(b, data[1+l1], n)
	if data[1+n+l2] != b {
		return 0, false
	}
	return l2, true
}
