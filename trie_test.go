package zerotrie

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkRoundTrip(t *testing.T, r Reader, entries []Entry) {
	t.Helper()
	for _, e := range entries {
		v, ok := r.Get(e.Key)
		if !ok || v != e.Value {
			t.Fatalf("%s Get(%q) = %d, %v; want %d", r.Kind(), e.Key, v, ok, e.Value)
		}
		v, ok = r.GetString(string(e.Key))
		if !ok || v != e.Value {
			t.Fatalf("%s GetString(%q) = %d, %v; want %d", r.Kind(), e.Key, v, ok, e.Value)
		}
	}

	got := r.Entries()
	if r.Kind() == KindPerfectHash {
		got = sortedCopy(got)
	}
	if diff := cmp.Diff(entries, got, cmp.Comparer(bytes.Equal)); diff != "" {
		t.Fatalf("%s Entries() mismatch (-want +got):\n%s", r.Kind(), diff)
	}
}

// checkNeighboursAbsent mutates every byte of every key to every other byte
// value and checks that keys not in the set are absent. For hashed branches
// this probes every possible false-positive slot.
func checkNeighboursAbsent(t *testing.T, r Reader, entries []Entry, limit int) {
	t.Helper()
	present := entryMap(entries)
	for n, e := range entries {
		if n >= limit {
			break
		}
		probe := bytes.Clone(e.Key)
		for i := range probe {
			orig := probe[i]
			for b := range 256 {
				probe[i] = byte(b)
				want, wantOK := present[string(probe)]
				got, ok := r.Get(probe)
				if ok != wantOK || got != want {
					t.Fatalf("%s Get(%q) = %d, %v; want %d, %v", r.Kind(), probe, got, ok, want, wantOK)
				}
			}
			probe[i] = orig
		}
		for _, extra := range [][]byte{append(bytes.Clone(e.Key), 0), append(bytes.Clone(e.Key), 0xff)} {
			if _, in := present[string(extra)]; !in {
				if _, ok := r.Get(extra); ok {
					t.Fatalf("%s Get(%q) found an absent extension", r.Kind(), extra)
				}
			}
		}
	}
}

func TestRoundTripSynthetic(t *testing.T) {
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			entries := syntheticEntries(kind, 3000, 11)
			r := mustBuild(t, kind, entries)
			checkRoundTrip(t, r, entries)
			checkNeighboursAbsent(t, r, entries, 150)
		})
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := newTestRNG(t)
	alphabets := map[string][]byte{
		"small": []byte("abc"),
		"ascii": asciiAlphabet(),
		"bytes": byteAlphabet(),
		"mixed": []byte("ab\x00\x7f\x80\xc3\xa9\xff"),
	}
	for name, alphabet := range alphabets {
		for range 20 {
			entries := randomEntries(rng, 1+rng.IntN(300), 1+rng.IntN(12), alphabet)
			ascii := name == "small" || name == "ascii"
			for _, kind := range kinds {
				if kind == KindSimpleASCII && !ascii {
					continue
				}
				r := mustBuild(t, kind, entries)
				checkRoundTrip(t, r, entries)
				checkNeighboursAbsent(t, r, entries, 10)
				require.NoError(t, Validate(kind, r.Bytes()), "alphabet %s", name)
			}
		}
	}
}

func TestSimpleASCIIIteratesInOrder(t *testing.T) {
	entries := syntheticEntries(KindSimpleASCII, 1000, 5)
	trie, err := BuildSimpleASCII(entries)
	require.NoError(t, err)

	var prev []byte
	i := 0
	for k, v := range trie.All() {
		if i > 0 && bytes.Compare(prev, k) >= 0 {
			t.Fatalf("keys out of order: %q then %q", prev, k)
		}
		require.Equal(t, entries[i].Value, v)
		prev = k
		i++
	}
	require.Equal(t, len(entries), i)
}

func TestAllStopsEarly(t *testing.T) {
	for _, kind := range kinds {
		r := mustBuild(t, kind, syntheticEntries(kind, 100, 2))
		n := 0
		for range r.All() {
			n++
			if n == 10 {
				break
			}
		}
		require.Equal(t, 10, n)
	}
}

func TestAllYieldsFreshKeys(t *testing.T) {
	trie, err := BuildSimpleASCII(FromMap(map[string]uint64{"ab": 1, "abc": 2}))
	require.NoError(t, err)
	var keys [][]byte
	for k := range trie.All() {
		keys = append(keys, k)
	}
	keys[0][0] = 'z'
	require.Equal(t, []byte("abc"), keys[1])
	v, ok := trie.GetString("ab")
	require.True(t, ok)
	require.EqualValues(t, 1, v)
}

func TestEmptyTrie(t *testing.T) {
	for _, kind := range kinds {
		r := mustBuild(t, kind, nil)
		assert.True(t, r.IsEmpty())
		assert.Zero(t, r.ByteLen())
		_, ok := r.Get(nil)
		assert.False(t, ok)
		_, ok = r.GetString("a")
		assert.False(t, ok)
		assert.Empty(t, r.Entries())
	}
	var zero SimpleASCII
	_, ok := zero.GetString("")
	assert.False(t, ok)
}

func TestEmptyKey(t *testing.T) {
	for _, kind := range kinds {
		r := mustBuild(t, kind, []Entry{{Key: nil, Value: 5}})
		require.Equal(t, []byte{0x85}, r.Bytes())
		v, ok := r.GetString("")
		require.True(t, ok)
		require.EqualValues(t, 5, v)
		_, ok = r.GetString("a")
		require.False(t, ok)
	}
}

func TestPrefixKeysDoNotLeak(t *testing.T) {
	for _, kind := range kinds {
		r := mustBuild(t, kind, FromMap(map[string]uint64{"x": 1, "xy": 2}))
		v, ok := r.GetString("x")
		require.True(t, ok)
		require.EqualValues(t, 1, v)
		v, ok = r.GetString("xy")
		require.True(t, ok)
		require.EqualValues(t, 2, v)
		for _, absent := range []string{"", "y", "xx", "xyz", "xz"} {
			_, ok := r.GetString(absent)
			require.False(t, ok, "%s Get(%q)", kind, absent)
		}
	}
}

func TestFullFanOut(t *testing.T) {
	var entries []Entry
	for b := range 256 {
		entries = append(entries, Entry{Key: []byte{byte(b)}, Value: uint64(b)})
		entries = append(entries, Entry{Key: []byte{byte(b), 'x'}, Value: uint64(1000 + b)})
	}
	r := mustBuild(t, KindPerfectHash, entries)
	checkRoundTrip(t, r, entries)
	checkNeighboursAbsent(t, r, entries, len(entries))
	require.NoError(t, Validate(KindPerfectHash, r.Bytes()))
}

func TestScaleRegression(t *testing.T) {
	for _, kind := range kinds {
		for _, seed := range []uint32{7, 99, 2024} {
			t.Run(fmt.Sprintf("%s-seed%d", kind, seed), func(t *testing.T) {
				entries := syntheticEntries(kind, 20000, seed)
				r := mustBuild(t, kind, entries)
				checkRoundTrip(t, r, entries)

				// The encoding is canonical, so its size is fixed by the
				// grammar: any extra byte is a regression.
				require.Equal(t, encodedLen(kind, entries, 0), r.ByteLen())

				keyBytes := 0
				for _, e := range entries {
					keyBytes += len(e.Key)
				}
				require.Less(t, r.ByteLen(), keyBytes+10*len(entries))
				t.Logf("%d entries, %d key bytes, %d trie bytes", len(entries), keyBytes, r.ByteLen())
			})
		}
	}
}

func TestEncodedLenMatchesKnownEncodings(t *testing.T) {
	tests := []struct {
		kind    Kind
		entries map[string]uint64
		want    int
	}{
		{KindSimpleASCII, map[string]uint64{"": 5000}, 3},
		{KindSimpleASCII, map[string]uint64{"ax": 1, "bx": 2, "cx": 3}, 12},
		{KindSimpleASCII, map[string]uint64{"a" + strings.Repeat("z", 300): 1, "b": 2}, 308},
		{KindPerfectHash, map[string]uint64{"aé": 1, "aë": 2}, 9},
		{KindPerfectHash, map[string]uint64{"é": 1, "éé": 2}, 8},
	}
	for _, tt := range tests {
		entries := FromMap(tt.entries)
		assert.Equal(t, tt.want, encodedLen(tt.kind, entries, 0), "%v", tt.entries)
		assert.Equal(t, tt.want, mustBuild(t, tt.kind, entries).ByteLen(), "%v", tt.entries)
	}
}

func TestDeterministicOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zerotrie")
	defer teardown()

	for _, kind := range kinds {
		entries := syntheticEntries(kind, 2000, 3)
		a := mustBuild(t, kind, entries)
		b := mustBuild(t, kind, entries)
		require.Equal(t, a.Bytes(), b.Bytes())
	}
}

func TestAllASCIIKeysBuildIdenticallyInBothKinds(t *testing.T) {
	// Without non-ASCII bytes or wide branches the two encodings coincide.
	entries := FromMap(map[string]uint64{"ab": 1, "ac": 2, "b": 3, "bcd": 4})
	a := mustBuild(t, KindSimpleASCII, entries)
	p := mustBuild(t, KindPerfectHash, entries)
	require.Equal(t, a.Bytes(), p.Bytes())
}

func TestParseRejectsCorruptBytes(t *testing.T) {
	_, err := ParseSimpleASCII([]byte{0x61})
	require.Error(t, err)
	_, err = ParsePerfectHash([]byte{0x90})
	require.Error(t, err)

	trie, err := ParseSimpleASCII([]byte{0x61, 0x80})
	require.NoError(t, err)
	v, ok := trie.GetString("a")
	require.True(t, ok)
	require.Zero(t, v)

	r, err := Parse(KindPerfectHash, []byte{0xA2, 0xC3, 0xA9, 0x81})
	require.NoError(t, err)
	v, ok = r.GetString("é")
	require.True(t, ok)
	require.EqualValues(t, 1, v)
}

func TestKindNames(t *testing.T) {
	for _, kind := range kinds {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}
	_, err := ParseKind("radix")
	require.Error(t, err)
	require.Equal(t, "unknown", Kind(9).String())
	_, err = Build(Kind(9), nil)
	require.Error(t, err)
}
