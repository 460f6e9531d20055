package zerotrie

import (
	"fmt"

	streamerrors "github.com/tamirms/zerotrie/errors"
	intbits "github.com/tamirms/zerotrie/internal/bits"
	"github.com/tamirms/zerotrie/internal/varint"
)

// BuildSimpleASCIIStatic builds the same bytes as BuildSimpleASCII with a
// non-recursive algorithm: a single output buffer filled from the back, an
// explicit frame stack, and no maps or per-node allocations. It suits
// generators that emit tries as constant byte literals.
func BuildSimpleASCIIStatic(entries []Entry, opts ...BuildOption) (SimpleASCII, error) {
	cfg := newBuildConfig(opts)
	if err := checkEntries(entries, true); err != nil {
		return SimpleASCII{}, err
	}
	if len(entries) == 0 {
		return SimpleASCII{}, nil
	}
	data, err := buildStatic(entries)
	if err != nil {
		return SimpleASCII{}, err
	}
	if err := checkByteLen(len(data), cfg); err != nil {
		return SimpleASCII{}, err
	}
	return SimpleASCII{data: data}, nil
}

// staticFrame is the sub-trie of entries[lo:hi], which share depth bytes.
// Children are emitted last to first; next is the end of the children not
// yet emitted.
type staticFrame struct {
	lo, hi   int
	depth    int
	next     int
	first    int // first entry belonging to a child
	end      int // output length when the frame was pushed
	lensBase int
	selsBase int
}

func buildStatic(entries []Entry) ([]byte, error) {
	var (
		out    backBuffer
		stack  []staticFrame
		lens   []int  // lengths of finished children, last child first
		sels   []byte // child bytes, last child first
		starts []uint64
		tables []byte
	)
	push := func(lo, hi, depth int) {
		f := staticFrame{lo: lo, hi: hi, depth: depth, next: hi, first: lo,
			end: out.len(), lensBase: len(lens), selsBase: len(sels)}
		if len(entries[lo].Key) == depth {
			f.first++
		}
		stack = append(stack, f)
	}
	push(0, len(entries), 0)

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.next > f.first {
			c := entries[f.next-1].Key[f.depth]
			j := f.next - 1
			for j > f.first && entries[j-1].Key[f.depth] == c {
				j--
			}
			hi, depth := f.next, f.depth+1
			f.next = j
			sels = append(sels, c)
			push(j, hi, depth)
			continue
		}

		k := len(lens) - f.lensBase
		switch {
		case k == 1:
			out.prepend(sels[f.selsBase])
		case k > 1:
			// Children were finished last to first.
			starts = starts[:0]
			var total uint64
			for i := k - 1; i >= 0; i-- {
				starts = append(starts, total)
				total += uint64(lens[f.lensBase+i])
			}
			width := intbits.ByteWidth(starts[k-1])
			if width > maxOffsetWidth {
				return nil, fmt.Errorf("%w: child offset %d needs %d bytes", streamerrors.ErrCapacityExceeded, starts[k-1], width)
			}
			w := width - 1
			tables = appendOffsetTables(tables[:0], starts[1:], width)
			out.prepend(tables...)
			for i := f.selsBase; i < f.selsBase+k; i++ {
				out.prepend(sels[i])
			}
			out.prependVarint(tagBranch, branchHeader(k, w), varint.Meta2)
		}
		if f.first > f.lo {
			out.prependVarint(tagValue, entries[f.lo].Value, varint.Meta3)
		}

		length := out.len() - f.end
		lens = lens[:f.lensBase]
		sels = sels[:f.selsBase]
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			lens = append(lens, length)
		}
	}
	return out.bytes(), nil
}

// backBuffer grows toward the front. The written bytes are buf[pos:].
type backBuffer struct {
	buf []byte
	pos int
}

func (b *backBuffer) len() int { return len(b.buf) - b.pos }

func (b *backBuffer) bytes() []byte { return b.buf[b.pos:] }

func (b *backBuffer) prepend(p ...byte) {
	if b.pos < len(p) {
		b.grow(len(p))
	}
	b.pos -= len(p)
	copy(b.buf[b.pos:], p)
}

func (b *backBuffer) grow(n int) {
	used := b.len()
	size := max(2*len(b.buf), used+n, 64)
	buf := make([]byte, size)
	copy(buf[size-used:], b.bytes())
	b.buf, b.pos = buf, size-used
}

func (b *backBuffer) prependVarint(tag byte, v uint64, m varint.Meta) {
	var tmp [varint.MaxLen]byte
	i := varint.Put(&tmp, v, m)
	tmp[i] |= tag
	b.prepend(tmp[i:]...)
}
