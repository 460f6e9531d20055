package zerotrie

import (
	"slices"

	"github.com/tamirms/zerotrie/internal/phf"
)

// usesPHF reports whether a branch of n children stores a perfect hash
// instead of a sorted byte array.
func usesPHF(perfectHash bool, n int) bool {
	return perfectHash && n >= phf.MinKeys
}

// searchLen returns the size of a branch's search data.
func searchLen(perfectHash bool, n int) int {
	if usesPHF(perfectHash, n) {
		return phf.Size(n)
	}
	return n
}

// selectChild finds the child index for b. trie starts at the search data;
// the returned slice starts at the offset tables.
func selectChild(trie []byte, n int, b byte, perfectHash bool) (int, []byte, bool) {
	size := searchLen(perfectHash, n)
	if len(trie) < size {
		return 0, nil, false
	}
	search, rest := trie[:size], trie[size:]
	if usesPHF(perfectHash, n) {
		i, ok := phf.Lookup(search, n, b)
		return i, rest, ok
	}
	i, ok := slices.BinarySearch(search, b)
	return i, rest, ok
}

// selectors returns the child bytes of a branch in child order.
// Precondition: len(search) >= searchLen(perfectHash, n).
func selectors(search []byte, n int, perfectHash bool) []byte {
	if usesPHF(perfectHash, n) {
		return phf.Keys(search, n)
	}
	return search[:n]
}

// branchChild returns child i. trie starts at the offset tables: w+1 tables
// of n-1 bytes each, most significant table first, then the children. Child
// 0 starts at 0 and the last child runs to the end of trie.
func branchChild(trie []byte, i, n, w int) ([]byte, bool) {
	tableLen := (n - 1) * (w + 1)
	if len(trie) < tableLen || i < 0 || i >= n {
		return nil, false
	}
	children := trie[tableLen:]
	var start uint64
	end := uint64(len(children))
	for t := 0; t <= w; t++ {
		table := trie[t*(n-1) : (t+1)*(n-1)]
		if i > 0 {
			start = start<<8 | uint64(table[i-1])
		}
		if i < n-1 {
			if t == 0 {
				end = 0
			}
			end = end<<8 | uint64(table[i])
		}
	}
	if start > end || end > uint64(len(children)) {
		return nil, false
	}
	return children[start:end], true
}
