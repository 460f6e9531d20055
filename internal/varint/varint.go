// Package varint implements the tagged variable-length integers stored inline
// in trie nodes.
//
// The lead byte of a node carries the node-type tag in its high bits, followed
// by a continuation bit and the low value bits. Values that do not fit the lead
// byte spill into trailing bytes of 7 bits each (0x80 = another byte follows).
// Every step adds a bias equal to the lead byte's inline range, so each value
// has exactly one encoding:
//
//	Meta3 (value, span):  1 0 x c v v v v   inline 0-15, bias 16
//	Meta2 (branch):       1 1 c v v v v v   inline 0-31, bias 32
//
// Examples with the value tag 0x80: 15 -> 8F, 100 -> 90 54, 5000 -> 90 96 78.
package varint

import "math"

// Meta is the number of tag bits in the lead byte.
type Meta uint8

const (
	// Meta3 is used by value and span nodes.
	Meta3 Meta = 3
	// Meta2 is used by branch headers.
	Meta2 Meta = 2
)

// MaxLen is the maximum encoded length of any uint64, lead byte included.
const MaxLen = 11

const (
	trailContinue = 0x80
	trailMask     = 0x7f
)

func (m Meta) continueBit() byte { return 1 << (7 - m) }

func (m Meta) mask() byte { return m.continueBit() - 1 }

func (m Meta) bias() uint64 { return uint64(m.continueBit()) }

// Put writes the encoding of v into the tail of buf and returns the index of
// the lead byte. The lead byte holds only the continuation and value bits;
// the caller ORs in the node tag.
func Put(buf *[MaxLen]byte, v uint64, m Meta) int {
	i := MaxLen - 1
	last := true
	bias := m.bias()
	for {
		if v < bias {
			buf[i] = byte(v)
			if !last {
				buf[i] |= m.continueBit()
			}
			return i
		}
		v -= bias
		buf[i] = byte(v & trailMask)
		if !last {
			buf[i] |= trailContinue
		}
		last = false
		v >>= 7
		i--
	}
}

// Append appends the encoding of v with tag ORed into the lead byte.
func Append(dst []byte, tag byte, v uint64, m Meta) []byte {
	var buf [MaxLen]byte
	i := Put(&buf, v, m)
	buf[i] |= tag
	return append(dst, buf[i:]...)
}

// Len returns the encoded length of v, lead byte included.
func Len(v uint64, m Meta) int {
	n := 1
	bias := m.bias()
	for v >= bias {
		v = (v - bias) >> 7
		n++
	}
	return n
}

// Read decodes a varint whose lead byte has already been consumed. rest holds
// the bytes after the lead; the unconsumed remainder is returned.
// ok is false when rest ends before the final trailing byte. Malformed input
// that overflows uint64 wraps silently; use ReadChecked for untrusted data.
func Read(lead byte, rest []byte, m Meta) (v uint64, remainder []byte, ok bool) {
	v = uint64(lead & m.mask())
	if lead&m.continueBit() == 0 {
		return v, rest, true
	}
	bias := m.bias()
	for i, b := range rest {
		v = v<<7 + uint64(b&trailMask) + bias
		if b&trailContinue == 0 {
			return v, rest[i+1:], true
		}
	}
	return 0, nil, false
}

// ReadChecked is Read with overflow detection. It reports ok=false for
// truncated input, encodings longer than MaxLen, and values beyond uint64.
func ReadChecked(lead byte, rest []byte, m Meta) (v uint64, remainder []byte, ok bool) {
	v = uint64(lead & m.mask())
	if lead&m.continueBit() == 0 {
		return v, rest, true
	}
	bias := m.bias()
	for i, b := range rest {
		if i+1 >= MaxLen || v > math.MaxUint64>>7 {
			return 0, nil, false
		}
		next := v<<7 + uint64(b&trailMask)
		if next > math.MaxUint64-bias {
			return 0, nil, false
		}
		v = next + bias
		if b&trailContinue == 0 {
			return v, rest[i+1:], true
		}
	}
	return 0, nil, false
}
