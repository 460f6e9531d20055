package zerotrie

import (
	"bytes"
	"fmt"
	"slices"

	streamerrors "github.com/tamirms/zerotrie/errors"
)

// Entry is one key-value pair.
type Entry struct {
	Key   []byte
	Value uint64
}

// FromMap returns the entries of m in ascending key order.
func FromMap(m map[string]uint64) []Entry {
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: []byte(k), Value: v})
	}
	slices.SortFunc(entries, compareEntries)
	return entries
}

// SortEntries sorts entries in place by key and rejects duplicate keys.
func SortEntries(entries []Entry) error {
	slices.SortStableFunc(entries, compareEntries)
	for i := 1; i < len(entries); i++ {
		if bytes.Equal(entries[i-1].Key, entries[i].Key) {
			return fmt.Errorf("%w: %q", streamerrors.ErrDuplicateKey, entries[i].Key)
		}
	}
	return nil
}

func compareEntries(a, b Entry) int {
	return bytes.Compare(a.Key, b.Key)
}

// checkEntries verifies builder preconditions: strictly ascending keys and,
// for ASCII tries, no byte above 0x7F.
func checkEntries(entries []Entry, asciiOnly bool) error {
	for i, e := range entries {
		if asciiOnly {
			if j := bytes.IndexFunc(e.Key, isNonASCII); j >= 0 {
				return fmt.Errorf("%w: entry %d (%q) byte %d", streamerrors.ErrNonASCIIKey, i, e.Key, j)
			}
		}
		if i == 0 {
			continue
		}
		switch c := bytes.Compare(entries[i-1].Key, e.Key); {
		case c == 0:
			return fmt.Errorf("%w: entry %d (%q)", streamerrors.ErrDuplicateKey, i, e.Key)
		case c > 0:
			return fmt.Errorf("%w: entry %d (%q) after %q", streamerrors.ErrUnsortedInput, i, e.Key, entries[i-1].Key)
		}
	}
	return nil
}

func isNonASCII(r rune) bool {
	return r >= 0x80
}
