// Package keygen produces deterministic synthetic key sets for tests,
// benchmarks and the gen command. Keys look like BCP-47 locale identifiers
// ("en", "sr-Latn", "zh-Hant-TW") so that they share prefixes the way real
// trie inputs do.
package keygen

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/spaolacci/murmur3"
)

const (
	lower = "abcdefghijklmnopqrstuvwxyz"
	upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digit = "0123456789"
)

// Non-ASCII fragments mixed into UTF-8 keys: Latin with diacritics, Greek,
// Cyrillic, CJK and one supplementary-plane rune.
var runes = []string{"é", "ü", "ß", "ø", "α", "ω", "ж", "я", "中", "文", "日", "한", "🙂"}

// source turns a seed and a counter into a stream of 64-bit words.
type source struct {
	seed    uint32
	counter uint64
	word    uint64
	left    int
}

func (s *source) next(n int) int {
	if s.left < 8 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], s.counter)
		s.counter++
		s.word = murmur3.Sum64WithSeed(buf[:], s.seed)
		s.left = 64
	}
	v := int(s.word % uint64(n))
	s.word >>= 8
	s.left -= 8
	return v
}

func (s *source) pick(alphabet string, n int, dst []byte) []byte {
	for range n {
		dst = append(dst, alphabet[s.next(len(alphabet))])
	}
	return dst
}

// ASCII returns n distinct ASCII keys in ascending order.
func ASCII(n int, seed uint32) [][]byte {
	return generate(n, seed, false)
}

// UTF8 returns n distinct keys in ascending byte order. Most keys contain
// multi-byte UTF-8 sequences.
func UTF8(n int, seed uint32) [][]byte {
	return generate(n, seed, true)
}

func generate(n int, seed uint32, utf8 bool) [][]byte {
	src := &source{seed: seed}
	seen := make(map[string]struct{}, n)
	keys := make([][]byte, 0, n)
	var key []byte
	for len(keys) < n {
		key = locale(src, key[:0], utf8)
		if _, dup := seen[string(key)]; dup {
			continue
		}
		seen[string(key)] = struct{}{}
		keys = append(keys, bytes.Clone(key))
	}
	slices.SortFunc(keys, bytes.Compare)
	return keys
}

// locale appends one key: a language, then optional script, region and
// variant subtags.
func locale(src *source, dst []byte, utf8 bool) []byte {
	dst = src.pick(lower, 2+src.next(2), dst)
	if utf8 && src.next(4) != 0 {
		for range 1 + src.next(3) {
			dst = append(dst, runes[src.next(len(runes))]...)
		}
	}
	if src.next(3) == 0 {
		dst = append(dst, '-')
		dst = src.pick(upper, 1, dst)
		dst = src.pick(lower, 3, dst)
	}
	switch src.next(4) {
	case 0:
		dst = append(dst, '-')
		dst = src.pick(upper, 2, dst)
	case 1:
		dst = append(dst, '-')
		dst = src.pick(digit, 3, dst)
	}
	if src.next(8) == 0 {
		dst = append(dst, '-')
		dst = src.pick(lower+digit, 5+src.next(4), dst)
	}
	return dst
}
