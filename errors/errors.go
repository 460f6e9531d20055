// Package errors defines all exported error sentinels for the zerotrie library.
//
// This is the single source of truth for error values. Both the top-level
// zerotrie package and internal packages import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Build errors
var (
	ErrUnsortedInput         = errors.New("zerotrie: input keys are not sorted")
	ErrDuplicateKey          = errors.New("zerotrie: duplicate key detected")
	ErrNonASCIIKey           = errors.New("zerotrie: key contains a non-ASCII byte")
	ErrCapacityExceeded      = errors.New("zerotrie: trie exceeds representable size")
	ErrPerfectHashUnsolvable = errors.New("zerotrie: no collision-free perfect hash found within retry budget")
	ErrInvalidKind           = errors.New("zerotrie: unknown trie kind")
	ErrBuilderClosed         = errors.New("zerotrie: builder is closed")
)

// Input errors
var (
	ErrValueOutOfRange = errors.New("zerotrie: value is not representable as uint64")
	ErrMalformedInput  = errors.New("zerotrie: malformed input line")
)

// Trie data errors
var (
	ErrCorruptedTrie = errors.New("zerotrie: trie data is corrupted")
)

// Container file errors
var (
	ErrInvalidMagic   = errors.New("zerotrie: invalid magic number")
	ErrInvalidVersion = errors.New("zerotrie: unsupported version")
	ErrTruncatedFile  = errors.New("zerotrie: trie file is truncated")
	ErrChecksumFailed = errors.New("zerotrie: file checksum verification failed")
	ErrWrongKind      = errors.New("zerotrie: file holds a different trie kind")
	ErrFileClosed     = errors.New("zerotrie: file is closed")
)
