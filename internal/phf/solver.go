package phf

import (
	"cmp"
	"fmt"
	"slices"

	streamerrors "github.com/tamirms/zerotrie/errors"
)

// DefaultAttempts is the default number of first-level parameters tried
// before giving up. Every parameter value is tried once.
const DefaultAttempts = numParams

// Solver finds perfect hashes for successive key sets, reusing its buffers.
// A Solver is not safe for concurrent use.
type Solver struct {
	attempts int

	n       int
	buckets [][]byte // keys per bucket, in input order
	order   []int    // bucket indices, largest bucket first
	taken   []bool   // slot occupancy for the current attempt
	pilots  []byte   // output: q per bucket
	slots   []int    // candidate slots for the bucket being placed
}

// NewSolver returns a solver that tries at most attempts first-level
// parameters per key set. Values above 256 are clamped to 256; a budget of
// zero fails every build.
func NewSolver(attempts int) *Solver {
	return &Solver{attempts: max(0, min(attempts, numParams))}
}

// Build solves a perfect hash for keys, which must be distinct, and appends
// the encoded block to dst. It also returns the number of first-level
// parameters tried. Identical keys in identical order always produce
// identical output.
func (s *Solver) Build(dst []byte, keys []byte) ([]byte, int, error) {
	n := len(keys)
	if n == 0 {
		return dst, 0, fmt.Errorf("%w: empty key set", streamerrors.ErrPerfectHashUnsolvable)
	}
	s.reset(n)

	for attempt := range s.attempts {
		p := byte(attempt)
		if !s.solve(keys, p) {
			continue
		}
		dst = append(dst, p)
		dst = append(dst, s.pilots...)
		start := len(dst)
		dst = append(dst, make([]byte, n)...)
		slotKeys := dst[start:]
		for _, k := range keys {
			l1 := F1(k, p, n)
			slotKeys[F2(k, s.pilots[l1], n)] = k
		}
		return dst, attempt + 1, nil
	}
	return dst, s.attempts, fmt.Errorf("%w: %d keys after %d attempts", streamerrors.ErrPerfectHashUnsolvable, n, s.attempts)
}

func (s *Solver) reset(n int) {
	s.n = n
	if cap(s.buckets) < n {
		s.buckets = make([][]byte, n)
		s.order = make([]int, n)
		s.taken = make([]bool, n)
		s.pilots = make([]byte, n)
	}
	s.buckets = s.buckets[:n]
	s.order = s.order[:n]
	s.taken = s.taken[:n]
	s.pilots = s.pilots[:n]
}

// solve tries first-level parameter p. On success s.pilots holds q per bucket.
func (s *Solver) solve(keys []byte, p byte) bool {
	n := s.n
	for i := range s.buckets {
		s.buckets[i] = s.buckets[i][:0]
		s.order[i] = i
		s.taken[i] = false
		s.pilots[i] = 0
	}
	for _, k := range keys {
		l1 := F1(k, p, n)
		s.buckets[l1] = append(s.buckets[l1], k)
	}

	// Largest buckets first, while the slot pool is still empty.
	slices.SortFunc(s.order, func(a, b int) int {
		if c := cmp.Compare(len(s.buckets[b]), len(s.buckets[a])); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	for _, idx := range s.order {
		bucket := s.buckets[idx]
		if len(bucket) == 0 {
			break
		}
		q, ok := s.findPilot(bucket)
		if !ok {
			return false
		}
		s.pilots[idx] = q
		for _, slot := range s.slots {
			s.taken[slot] = true
		}
	}
	return true
}

// findPilot returns the first pilot placing every key of bucket in a distinct
// free slot. On success s.slots holds the chosen slots.
func (s *Solver) findPilot(bucket []byte) (byte, bool) {
	n := s.n
next:
	for pilot := range numParams {
		q := byte(pilot)
		s.slots = s.slots[:0]
		for _, k := range bucket {
			slot := F2(k, q, n)
			if s.taken[slot] || slices.Contains(s.slots, slot) {
				continue next
			}
			s.slots = append(s.slots, slot)
		}
		return q, true
	}
	return 0, false
}
