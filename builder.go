package zerotrie

import (
	"fmt"
	"slices"

	streamerrors "github.com/tamirms/zerotrie/errors"
	intbits "github.com/tamirms/zerotrie/internal/bits"
	"github.com/tamirms/zerotrie/internal/phf"
	"github.com/tamirms/zerotrie/internal/varint"
)

// maxOffsetWidth is the widest child offset a branch can store, in bytes.
const maxOffsetWidth = branchWidthMax + 1

// BuildSimpleASCII builds an ASCII trie from entries sorted by key.
//
// Keys must be unique, strictly ascending in byte order, and contain only
// bytes 0x00-0x7F. The output is canonical: equal inputs give identical
// bytes, and BuildSimpleASCIIStatic produces the same bytes.
func BuildSimpleASCII(entries []Entry, opts ...BuildOption) (SimpleASCII, error) {
	data, err := build(KindSimpleASCII, entries, newBuildConfig(opts))
	if err != nil {
		return SimpleASCII{}, err
	}
	return SimpleASCII{data: data}, nil
}

// BuildPerfectHash builds a trie over arbitrary byte keys from entries sorted
// by key. Keys must be unique and strictly ascending in byte order.
func BuildPerfectHash(entries []Entry, opts ...BuildOption) (PerfectHash, error) {
	data, err := build(KindPerfectHash, entries, newBuildConfig(opts))
	if err != nil {
		return PerfectHash{}, err
	}
	return PerfectHash{data: data}, nil
}

func build(kind Kind, entries []Entry, cfg *buildConfig) ([]byte, error) {
	if err := checkEntries(entries, kind == KindSimpleASCII); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	b := &trieBuilder{
		kind: kind,
		cfg:  cfg,
	}
	if kind.perfectHash() {
		b.solver = phf.NewSolver(cfg.phfAttempts)
	}
	data, err := b.node(entries, 0)
	if err != nil {
		return nil, err
	}
	if err := checkByteLen(len(data), cfg); err != nil {
		return nil, err
	}
	tracer().Debugf("built %s trie: %d entries, %d bytes, %d branches (%d hashed)",
		kind, len(entries), len(data), b.branches, b.hashed)
	return data, nil
}

func checkByteLen(n int, cfg *buildConfig) error {
	if cfg.maxByteLen > 0 && n > cfg.maxByteLen {
		return fmt.Errorf("%w: %d bytes, limit %d", streamerrors.ErrCapacityExceeded, n, cfg.maxByteLen)
	}
	return nil
}

// trieBuilder encodes sorted entries recursively, children before parents.
type trieBuilder struct {
	kind   Kind
	cfg    *buildConfig
	solver *phf.Solver

	branches int
	hashed   int
}

// node encodes the sub-trie for entries, which all share their first depth
// bytes. entries is non-empty.
func (b *trieBuilder) node(entries []Entry, depth int) ([]byte, error) {
	var out []byte
	for {
		if len(entries[0].Key) == depth {
			out = varint.Append(out, tagValue, entries[0].Value, varint.Meta3)
			entries = entries[1:]
			if len(entries) == 0 {
				return out, nil
			}
		}

		first := entries[0].Key[depth]
		if entries[len(entries)-1].Key[depth] != first {
			branch, err := b.branch(entries, depth)
			if err != nil {
				return nil, err
			}
			return append(out, branch...), nil
		}

		if first < 0x80 || !b.kind.perfectHash() {
			out = append(out, first)
			depth++
			continue
		}

		end := spanEnd(entries, depth)
		out = varint.Append(out, tagSpan, uint64(end-depth), varint.Meta3)
		out = append(out, entries[0].Key[depth:end]...)
		depth = end
	}
}

// spanEnd returns the end of the run of non-ASCII bytes starting at depth
// that every entry shares and at which no entry ends.
func spanEnd(entries []Entry, depth int) int {
	first, last := entries[0].Key, entries[len(entries)-1].Key
	end := depth
	for end < len(first) && end < len(last) && first[end] >= 0x80 && first[end] == last[end] {
		end++
	}
	return end
}

// branch encodes a branch node over the distinct bytes at depth.
func (b *trieBuilder) branch(entries []Entry, depth int) ([]byte, error) {
	var (
		sels   []byte
		groups [][]Entry
	)
	start := 0
	for i := 1; i <= len(entries); i++ {
		if i == len(entries) || entries[i].Key[depth] != entries[start].Key[depth] {
			sels = append(sels, entries[start].Key[depth])
			groups = append(groups, entries[start:i])
			start = i
		}
	}
	n := len(groups)

	children := make([][]byte, n)
	for i, g := range groups {
		child, err := b.node(g, depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	search := sels
	if usesPHF(b.kind.perfectHash(), n) {
		block, attempts, err := b.solver.Build(nil, sels)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("hashed branch at depth %d: %d children, %d attempts", depth, n, attempts)
		ordered := make([][]byte, n)
		for slot, k := range phf.Keys(block, n) {
			i, _ := slices.BinarySearch(sels, k)
			ordered[slot] = children[i]
		}
		search, children = block, ordered
		b.hashed++
	}
	b.branches++

	starts := make([]uint64, n)
	var total uint64
	for i, c := range children {
		starts[i] = total
		total += uint64(len(c))
	}
	width := intbits.ByteWidth(starts[n-1])
	if width > maxOffsetWidth {
		return nil, fmt.Errorf("%w: child offset %d needs %d bytes", streamerrors.ErrCapacityExceeded, starts[n-1], width)
	}
	w := width - 1

	out := varint.Append(nil, tagBranch, branchHeader(n, w), varint.Meta2)
	out = append(out, search...)
	out = appendOffsetTables(out, starts[1:], width)
	for _, c := range children {
		out = append(out, c...)
	}
	return out, nil
}

// appendOffsetTables appends width tables of len(starts) bytes: table t holds
// byte t of each big-endian offset.
func appendOffsetTables(dst []byte, starts []uint64, width int) []byte {
	base := len(dst)
	dst = append(dst, make([]byte, width*len(starts))...)
	tables := dst[base:]
	var digits [8]byte
	for i, s := range starts {
		intbits.PutBigEndian(digits[:width], s, width)
		for t := range width {
			tables[t*len(starts)+i] = digits[t]
		}
	}
	return dst
}
