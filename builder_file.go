package zerotrie

import (
	"bytes"
	"context"
	"fmt"

	streamerrors "github.com/tamirms/zerotrie/errors"
)

// contextCheckInterval is how often AddKey checks for cancellation.
const contextCheckInterval = 10000

// Builder collects entries one at a time and writes a container file in
// Finish.
//
// Usage:
//
//	builder, err := zerotrie.NewBuilder(ctx, "locales.ztrie", zerotrie.KindSimpleASCII)
//	if err != nil { return err }
//	defer builder.Close()
//
//	for key, value := range sortedData {
//	    if err := builder.AddKey(key, value); err != nil { return err }
//	}
//	return builder.Finish()
//
// By default keys must arrive in ascending order, and ordering errors are
// reported by the AddKey call that causes them. With WithUnsortedInput keys
// may arrive in any order and are sorted in Finish.
type Builder struct {
	ctx        context.Context
	cfg        *buildConfig
	kind       Kind
	output     string
	entries    []Entry
	keyCounter int
	closed     bool
}

// NewBuilder creates a builder that writes a trie of the given kind to
// output.
func NewBuilder(ctx context.Context, output string, kind Kind, opts ...BuildOption) (*Builder, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, kind)
	}
	return &Builder{
		ctx:    ctx,
		cfg:    newBuildConfig(opts),
		kind:   kind,
		output: output,
	}, nil
}

// AddKey adds one entry. The key is copied, so the caller can reuse it.
func (b *Builder) AddKey(key []byte, value uint64) error {
	if b.closed {
		return streamerrors.ErrBuilderClosed
	}
	b.keyCounter++
	if b.keyCounter%contextCheckInterval == 0 {
		if err := b.ctx.Err(); err != nil {
			return err
		}
	}

	if b.kind == KindSimpleASCII {
		for i, c := range key {
			if c >= 0x80 {
				return fmt.Errorf("%w: %q byte %d", streamerrors.ErrNonASCIIKey, key, i)
			}
		}
	}
	if !b.cfg.unsortedInput && len(b.entries) > 0 {
		last := b.entries[len(b.entries)-1].Key
		switch c := bytes.Compare(last, key); {
		case c == 0:
			return fmt.Errorf("%w: %q", streamerrors.ErrDuplicateKey, key)
		case c > 0:
			return fmt.Errorf("%w: %q after %q", streamerrors.ErrUnsortedInput, key, last)
		}
	}

	b.entries = append(b.entries, Entry{Key: bytes.Clone(key), Value: value})
	return nil
}

// Finish builds the trie and writes the file. The builder is closed
// afterwards whether or not Finish succeeds.
func (b *Builder) Finish() error {
	if b.closed {
		return streamerrors.ErrBuilderClosed
	}
	defer b.Close()

	if err := b.ctx.Err(); err != nil {
		return err
	}
	if b.cfg.unsortedInput {
		if err := SortEntries(b.entries); err != nil {
			return err
		}
	}
	data, err := build(b.kind, b.entries, b.cfg)
	if err != nil {
		return err
	}
	return WriteFile(b.output, b.kind, data, uint64(len(b.entries)))
}

// Close discards buffered entries. It is safe to call after Finish.
func (b *Builder) Close() error {
	b.closed = true
	b.entries = nil
	return nil
}
