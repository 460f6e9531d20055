package zerotrie

import (
	"fmt"

	streamerrors "github.com/tamirms/zerotrie/errors"
	"github.com/tamirms/zerotrie/internal/phf"
	"github.com/tamirms/zerotrie/internal/varint"
)

// Validate checks that data is a well-formed trie of the given kind. After
// Validate succeeds every lookup, iteration and cursor step over data stays
// within bounds and every key reachable by iteration is found by Get.
//
// It checks varint encodings, node types allowed for the kind, span lengths,
// branch headers, search data ordering or perfect-hash consistency, and that
// child offsets are strictly increasing and in range. Errors wrap
// ErrCorruptedTrie and report the byte offset of the offending node.
func Validate(kind Kind, data []byte) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, kind)
	}
	v := validator{
		perfectHash: kind.perfectHash(),
		data:        data,
	}
	if len(data) == 0 {
		return nil
	}
	stack := [][]byte{data}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var err error
		if stack, err = v.node(t, stack); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	perfectHash bool
	data        []byte
}

// offset returns the position of sub within data. sub is always a reslice
// of data with the same end capacity.
func (v *validator) offset(sub []byte) int {
	return cap(v.data) - cap(sub)
}

func (v *validator) fail(at []byte, format string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", streamerrors.ErrCorruptedTrie, v.offset(at), fmt.Sprintf(format, args...))
}

// node checks one sub-trie and pushes the children of its branch, if any.
func (v *validator) node(t []byte, stack [][]byte) ([][]byte, error) {
	afterValue := false
	for len(t) > 0 {
		at := t
		lead := t[0]
		t = t[1:]

		switch kindOf(lead) {
		case nodeLiteral:
			if len(t) == 0 {
				return nil, v.fail(at, "literal %#02x ends the trie without a value", lead)
			}
			afterValue = false

		case nodeValue:
			if afterValue {
				return nil, v.fail(at, "two consecutive values")
			}
			_, rest, ok := varint.ReadChecked(lead, t, varint.Meta3)
			if !ok {
				return nil, v.fail(at, "malformed value varint")
			}
			t = rest
			afterValue = true

		case nodeSpan:
			if !v.perfectHash {
				return nil, v.fail(at, "span node in an ASCII trie")
			}
			l, rest, ok := varint.ReadChecked(lead, t, varint.Meta3)
			if !ok {
				return nil, v.fail(at, "malformed span length")
			}
			if l == 0 || l > uint64(len(rest)) {
				return nil, v.fail(at, "span length %d with %d bytes left", l, len(rest))
			}
			t = rest[l:]
			if len(t) == 0 {
				return nil, v.fail(at, "span ends the trie without a value")
			}
			afterValue = false

		case nodeBranch:
			return v.branch(at, lead, t, stack)
		}
	}
	return stack, nil
}

func (v *validator) branch(at []byte, lead byte, t []byte, stack [][]byte) ([][]byte, error) {
	x, rest, ok := varint.ReadChecked(lead, t, varint.Meta2)
	if !ok {
		return nil, v.fail(at, "malformed branch header")
	}
	if x > branchHeaderMax {
		return nil, v.fail(at, "branch header %#x has unknown bits", x)
	}
	n, w := splitBranchHeader(x)

	size := searchLen(v.perfectHash, n)
	if len(rest) < size {
		return nil, v.fail(at, "branch search data needs %d bytes, %d left", size, len(rest))
	}
	if err := v.search(at, rest[:size], n); err != nil {
		return nil, err
	}
	tables := rest[size:]

	tableLen := (n - 1) * (w + 1)
	if len(tables) < tableLen {
		return nil, v.fail(at, "offset tables need %d bytes, %d left", tableLen, len(tables))
	}
	children := uint64(len(tables) - tableLen)
	var prev uint64
	for i := 1; i < n; i++ {
		var start uint64
		for t := 0; t <= w; t++ {
			start = start<<8 | uint64(tables[t*(n-1)+i-1])
		}
		if start <= prev {
			return nil, v.fail(at, "child %d starts at %d, not after %d", i, start, prev)
		}
		prev = start
	}
	if prev >= children {
		return nil, v.fail(at, "last child starts at %d of %d bytes", prev, children)
	}

	for i := range n {
		child, ok := branchChild(tables, i, n, w)
		if !ok {
			return nil, v.fail(at, "child %d out of range", i)
		}
		stack = append(stack, child)
	}
	return stack, nil
}

// search checks sorted search data, or perfect-hash data consistency.
func (v *validator) search(at, search []byte, n int) error {
	if !usesPHF(v.perfectHash, n) {
		for i := range n {
			if !v.perfectHash && search[i] >= 0x80 {
				return v.fail(at, "non-ASCII branch byte %#02x", search[i])
			}
			if i > 0 && search[i] <= search[i-1] {
				return v.fail(at, "branch bytes not strictly ascending at %d", i)
			}
		}
		return nil
	}
	keys := phf.Keys(search, n)
	for slot, k := range keys {
		got, ok := phf.Lookup(search, n, k)
		if !ok || got != slot {
			return v.fail(at, "perfect hash sends %#02x to slot %d, stored in %d", k, got, slot)
		}
	}
	return nil
}
