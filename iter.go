package zerotrie

import (
	"bytes"
	"iter"

	"github.com/tamirms/zerotrie/internal/varint"
)

// iterFrame is a pending sub-trie. keyLen is the key length at the parent
// branch and sel the byte selecting this child, or -1 for the root.
type iterFrame struct {
	trie   []byte
	keyLen int
	sel    int
}

// iterate walks trie depth first with an explicit stack and yields a copy of
// each key. Children of a branch are visited in storage order. It stops
// silently at malformed data.
func iterate(trie []byte, perfectHash bool, yield func([]byte, uint64) bool) {
	if len(trie) == 0 {
		return
	}
	key := make([]byte, 0, 32)
	stack := []iterFrame{{trie: trie, sel: -1}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		key = key[:f.keyLen]
		if f.sel >= 0 {
			key = append(key, byte(f.sel))
		}

		t := f.trie
	walk:
		for len(t) > 0 {
			lead := t[0]
			t = t[1:]

			switch kindOf(lead) {
			case nodeLiteral:
				key = append(key, lead)

			case nodeValue:
				v, rest, ok := varint.Read(lead, t, varint.Meta3)
				if !ok {
					return
				}
				if !yield(bytes.Clone(key), v) {
					return
				}
				t = rest

			case nodeSpan:
				l, rest, ok := varint.Read(lead, t, varint.Meta3)
				if !ok || l > uint64(len(rest)) {
					return
				}
				key = append(key, rest[:l]...)
				t = rest[l:]

			case nodeBranch:
				x, rest, ok := varint.Read(lead, t, varint.Meta2)
				if !ok {
					return
				}
				n, w := splitBranchHeader(x)
				size := searchLen(perfectHash, n)
				if len(rest) < size {
					return
				}
				sels := selectors(rest, n, perfectHash)
				tables := rest[size:]
				// Push in reverse so child 0 is visited first.
				for i := n - 1; i >= 0; i-- {
					child, ok := branchChild(tables, i, n, w)
					if !ok {
						return
					}
					stack = append(stack, iterFrame{trie: child, keyLen: len(key), sel: int(sels[i])})
				}
				break walk
			}
		}
	}
}

func collect(seq iter.Seq2[[]byte, uint64]) []Entry {
	var entries []Entry
	for k, v := range seq {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries
}
