package bits

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// TestFastRange32Range verifies that the result is always in [0, n) for the
// branch sizes a trie can produce.
func TestFastRange32Range(t *testing.T) {
	rng := newTestRNG(t)
	const iterations = 10000

	for i := 0; i < iterations; i++ {
		n := uint32(rng.IntN(256)) + 1
		h := rng.Uint64()

		got := FastRange32(h, n)
		if got >= n {
			t.Fatalf("iter %d: FastRange32(0x%X, %d)=%d >= %d", i, h, n, got, n)
		}
	}
}

func TestFastRange32EdgeCases(t *testing.T) {
	for _, h := range []uint64{0, 1, math.MaxUint64, 0xDEADBEEF} {
		if got := FastRange32(h, 0); got != 0 {
			t.Errorf("FastRange32(0x%X, 0) = %d, want 0", h, got)
		}
		if got := FastRange32(h, 1); got != 0 {
			t.Errorf("FastRange32(0x%X, 1) = %d, want 0", h, got)
		}
	}

	// h=MaxUint64 maps to n-1 for any n >= 2
	for n := uint32(2); n <= 256; n++ {
		if got := FastRange32(math.MaxUint64, n); got != n-1 {
			t.Errorf("FastRange32(MaxUint64, %d) = %d, want %d", n, got, n-1)
		}
	}
}

func TestByteWidth(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
		{1<<24 - 1, 3},
		{1 << 24, 4},
		{math.MaxUint32, 4},
		{math.MaxUint32 + 1, 5},
		{math.MaxUint64, 8},
	}
	for _, tc := range tests {
		if got := ByteWidth(tc.v); got != tc.want {
			t.Errorf("ByteWidth(%d) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

// TestPutBigEndianRoundtrip checks PutBigEndian against encoding/binary for
// every width a branch offset table can use.
func TestPutBigEndianRoundtrip(t *testing.T) {
	rng := newTestRNG(t)

	for i := 0; i < 1000; i++ {
		width := rng.IntN(4) + 1
		v := rng.Uint64() & (uint64(1)<<(8*width) - 1)

		var buf [8]byte
		PutBigEndian(buf[8-width:], v, width)
		if got := binary.BigEndian.Uint64(buf[:]); got != v {
			t.Fatalf("iter %d: width=%d: got 0x%X, want 0x%X", i, width, got, v)
		}
	}
}
