package zerotrie

import (
	"bytes"
	"unsafe"

	"github.com/tamirms/zerotrie/internal/varint"
)

// lookup walks trie for key. Malformed or truncated data reads as absent.
func lookup(trie, key []byte, perfectHash bool) (uint64, bool) {
	for len(trie) > 0 {
		lead := trie[0]
		trie = trie[1:]

		switch kindOf(lead) {
		case nodeLiteral:
			if len(key) == 0 || key[0] != lead {
				return 0, false
			}
			key = key[1:]

		case nodeValue:
			v, rest, ok := varint.Read(lead, trie, varint.Meta3)
			if !ok {
				return 0, false
			}
			if len(key) == 0 {
				return v, true
			}
			trie = rest

		case nodeSpan:
			l, rest, ok := varint.Read(lead, trie, varint.Meta3)
			if !ok || l > uint64(len(rest)) || l > uint64(len(key)) {
				return 0, false
			}
			if !bytes.Equal(rest[:l], key[:l]) {
				return 0, false
			}
			trie, key = rest[l:], key[l:]

		case nodeBranch:
			if len(key) == 0 {
				return 0, false
			}
			x, rest, ok := varint.Read(lead, trie, varint.Meta2)
			if !ok {
				return 0, false
			}
			n, w := splitBranchHeader(x)
			i, tables, ok := selectChild(rest, n, key[0], perfectHash)
			if !ok {
				return 0, false
			}
			if trie, ok = branchChild(tables, i, n, w); !ok {
				return 0, false
			}
			key = key[1:]
		}
	}
	return 0, false
}

// stringBytes views s as a byte slice without copying. The result must not
// be modified.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
