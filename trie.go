package zerotrie

import "iter"

// SimpleASCII is a trie over ASCII keys whose branches are sorted byte
// arrays. Iteration yields keys in ascending byte order.
//
// A SimpleASCII is a view over its bytes and is safe for concurrent reads.
// The zero value is an empty trie.
type SimpleASCII struct {
	data []byte
}

// SimpleASCIIFromBytes wraps data without copying or validating it. Use it
// for bytes produced by a builder; malformed data never panics a lookup but
// may yield wrong answers. Use ParseSimpleASCII for untrusted input.
func SimpleASCIIFromBytes(data []byte) SimpleASCII {
	return SimpleASCII{data: data}
}

// ParseSimpleASCII validates data and wraps it without copying.
func ParseSimpleASCII(data []byte) (SimpleASCII, error) {
	if err := Validate(KindSimpleASCII, data); err != nil {
		return SimpleASCII{}, err
	}
	return SimpleASCII{data: data}, nil
}

// Get returns the value stored for key.
func (t SimpleASCII) Get(key []byte) (uint64, bool) {
	return lookup(t.data, key, false)
}

// GetString returns the value stored for key.
func (t SimpleASCII) GetString(key string) (uint64, bool) {
	return lookup(t.data, stringBytes(key), false)
}

// All yields every entry in ascending key order.
func (t SimpleASCII) All() iter.Seq2[[]byte, uint64] {
	return func(yield func([]byte, uint64) bool) {
		iterate(t.data, false, yield)
	}
}

// Entries returns all entries in ascending key order.
func (t SimpleASCII) Entries() []Entry {
	return collect(t.All())
}

// Cursor returns a cursor positioned at the root.
func (t SimpleASCII) Cursor() Cursor {
	return Cursor{trie: t.data}
}

func (t SimpleASCII) Bytes() []byte { return t.data }
func (t SimpleASCII) ByteLen() int  { return len(t.data) }
func (t SimpleASCII) IsEmpty() bool { return len(t.data) == 0 }
func (t SimpleASCII) Kind() Kind    { return KindSimpleASCII }

// PerfectHash is a trie over arbitrary byte keys. Runs of non-ASCII bytes are
// stored as spans and wide branches dispatch through a perfect hash, so
// lookups cost O(1) per branch. Iteration order is unspecified.
//
// A PerfectHash is a view over its bytes and is safe for concurrent reads.
// The zero value is an empty trie.
type PerfectHash struct {
	data []byte
}

// PerfectHashFromBytes wraps data without copying or validating it.
func PerfectHashFromBytes(data []byte) PerfectHash {
	return PerfectHash{data: data}
}

// ParsePerfectHash validates data and wraps it without copying.
func ParsePerfectHash(data []byte) (PerfectHash, error) {
	if err := Validate(KindPerfectHash, data); err != nil {
		return PerfectHash{}, err
	}
	return PerfectHash{data: data}, nil
}

// Get returns the value stored for key.
func (t PerfectHash) Get(key []byte) (uint64, bool) {
	return lookup(t.data, key, true)
}

// GetString returns the value stored for key.
func (t PerfectHash) GetString(key string) (uint64, bool) {
	return lookup(t.data, stringBytes(key), true)
}

// All yields every entry. Keys sharing a prefix are yielded together, but
// siblings under a hashed branch come in slot order.
func (t PerfectHash) All() iter.Seq2[[]byte, uint64] {
	return func(yield func([]byte, uint64) bool) {
		iterate(t.data, true, yield)
	}
}

// Entries returns all entries in iteration order.
func (t PerfectHash) Entries() []Entry {
	return collect(t.All())
}

func (t PerfectHash) Bytes() []byte { return t.data }
func (t PerfectHash) ByteLen() int  { return len(t.data) }
func (t PerfectHash) IsEmpty() bool { return len(t.data) == 0 }
func (t PerfectHash) Kind() Kind    { return KindPerfectHash }
