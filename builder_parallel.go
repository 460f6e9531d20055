package zerotrie

import (
	"context"
	"fmt"

	streamerrors "github.com/tamirms/zerotrie/errors"
	"golang.org/x/sync/errgroup"
)

// BuildParallel builds one trie per entry set using up to workers
// goroutines. Results are in the order of sets. The first failure cancels
// the remaining builds and is returned with the index of its set.
//
// workers <= 0 builds on a single goroutine.
func BuildParallel(ctx context.Context, kind Kind, sets [][]Entry, workers int, opts ...BuildOption) ([]Reader, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", streamerrors.ErrInvalidKind, kind)
	}
	cfg := newBuildConfig(opts)
	results := make([]Reader, len(sets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, set := range sets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := build(kind, set, cfg)
			if err != nil {
				return fmt.Errorf("entry set %d: %w", i, err)
			}
			results[i] = fromBytes(kind, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tracer().Infof("built %d %s tries with %d workers", len(sets), kind, max(workers, 1))
	return results, nil
}
