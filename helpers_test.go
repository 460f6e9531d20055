package zerotrie

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"testing"

	intbits "github.com/tamirms/zerotrie/internal/bits"
	"github.com/tamirms/zerotrie/internal/keygen"
	"github.com/tamirms/zerotrie/internal/varint"
)

const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

// newTestRNG returns a PCG generator seeded from the test name, so every
// test gets its own reproducible stream.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// kinds lists both flavours for table-driven tests.
var kinds = []Kind{KindSimpleASCII, KindPerfectHash}

func mustBuild(t testing.TB, kind Kind, entries []Entry, opts ...BuildOption) Reader {
	t.Helper()
	r, err := Build(kind, entries, opts...)
	if err != nil {
		t.Fatalf("Build(%s, %d entries): %v", kind, len(entries), err)
	}
	return r
}

// rankEntries pairs sorted keys with their rank.
func rankEntries(keys [][]byte) []Entry {
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Value: uint64(i)}
	}
	return entries
}

// syntheticEntries returns n locale-like entries suited to kind.
func syntheticEntries(kind Kind, n int, seed uint32) []Entry {
	if kind == KindPerfectHash {
		return rankEntries(keygen.UTF8(n, seed))
	}
	return rankEntries(keygen.ASCII(n, seed))
}

// randomEntries returns up to n random keys over alphabet with random values.
func randomEntries(rng *rand.Rand, n, maxLen int, alphabet []byte) []Entry {
	seen := make(map[string]bool)
	var entries []Entry
	for range n {
		key := make([]byte, rng.IntN(maxLen+1))
		for i := range key {
			key[i] = alphabet[rng.IntN(len(alphabet))]
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		entries = append(entries, Entry{Key: key, Value: rng.Uint64() >> rng.IntN(64)})
	}
	slices.SortFunc(entries, compareEntries)
	return entries
}

func asciiAlphabet() []byte {
	a := make([]byte, 0x80)
	for i := range a {
		a[i] = byte(i)
	}
	return a
}

func byteAlphabet() []byte {
	a := make([]byte, 256)
	for i := range a {
		a[i] = byte(i)
	}
	return a
}

// entryMap indexes entries by key.
func entryMap(entries []Entry) map[string]uint64 {
	m := make(map[string]uint64, len(entries))
	for _, e := range entries {
		m[string(e.Key)] = e.Value
	}
	return m
}

func sortedCopy(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortFunc(out, func(a, b Entry) int { return bytes.Compare(a.Key, b.Key) })
	return out
}

// encodedLen returns the size of the canonical encoding of sorted, non-empty
// entries sharing their first depth bytes, counted from the node grammar
// alone: minimal varints, maximal spans and the narrowest offsets that fit.
func encodedLen(kind Kind, entries []Entry, depth int) int {
	size := 0
	for {
		if len(entries[0].Key) == depth {
			size += varint.Len(entries[0].Value, varint.Meta3)
			entries = entries[1:]
			if len(entries) == 0 {
				return size
			}
		}
		first, last := entries[0].Key, entries[len(entries)-1].Key
		if first[depth] != last[depth] {
			return size + encodedBranchLen(kind, entries, depth)
		}
		if kind == KindSimpleASCII || first[depth] < 0x80 {
			size++
			depth++
			continue
		}
		end := depth
		for end < len(first) && end < len(last) && first[end] == last[end] && first[end] >= 0x80 {
			end++
		}
		size += varint.Len(uint64(end-depth), varint.Meta3) + end - depth
		depth = end
	}
}

func encodedBranchLen(kind Kind, entries []Entry, depth int) int {
	var children []int
	for lo := 0; lo < len(entries); {
		hi := lo + 1
		for hi < len(entries) && entries[hi].Key[depth] == entries[lo].Key[depth] {
			hi++
		}
		children = append(children, encodedLen(kind, entries[lo:hi], depth+1))
		lo = hi
	}
	n := len(children)
	total, lastStart := 0, 0
	for _, c := range children {
		lastStart = total
		total += c
	}
	width := intbits.ByteWidth(uint64(lastStart))
	header := branchHeader(n, width-1)
	return varint.Len(header, varint.Meta2) + searchLen(kind == KindPerfectHash, n) + (n-1)*width + total
}
