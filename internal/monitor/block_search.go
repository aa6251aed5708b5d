package monitor

import (
	"context"
	"time"

	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/metrics"
)

type blockSearch struct {
	cache      *BlockCache
	target     time.Time
	iterations int
	lo, hi     common.BlockTimeEntry
}

// GetBlockForUtc returns the highest block whose timestamp is at or before utc.
//
// The search keeps a bracket lo.Utc <= utc < hi.Utc, seeded from the closest cached blocks
// (or the chain head), and shrinks it with secant steps, falling back to bisection whenever
// a secant step fails to halve the bracket. It stops once the bracket is one block wide, so
// the answer is exact and lies less than one block duration before utc. A target at or after
// the head returns the head. Every probed block counts as one iteration and ends up in the cache.
func (c *BlockCache) GetBlockForUtc(ctx context.Context, utc time.Time) (common.BlockTimeEntry, error) {
	s := &blockSearch{cache: c, target: utc}
	entry, err := s.run(ctx)
	metrics.BlockSearchIterations.Observe(float64(s.iterations))
	if err != nil {
		metrics.BlockSearchFailures.Inc()
		return common.BlockTimeEntry{}, err
	}
	c.logger.Debug().
		Time("target", utc).
		Uint64("block", entry.Number).
		Int("iterations", s.iterations).
		Msg("resolved block for timestamp")
	return entry, nil
}

func (s *blockSearch) run(ctx context.Context) (common.BlockTimeEntry, error) {
	lo, hi, haveLo, haveHi := s.cache.bracket(s.target)
	if haveLo && haveHi && lo.Number >= hi.Number {
		haveLo = false
	}

	if !haveHi {
		head, err := s.cache.headEntry(ctx)
		if err != nil {
			return common.BlockTimeEntry{}, err
		}
		if !s.target.Before(head.Utc) {
			return head, nil
		}
		hi = head
		if haveLo && lo.Number >= hi.Number {
			haveLo = false
		}
	}
	s.hi = hi

	if haveLo {
		s.lo = lo
	} else if err := s.extendDown(ctx); err != nil {
		return common.BlockTimeEntry{}, err
	}

	return s.refine(ctx)
}

func (s *blockSearch) probe(ctx context.Context, number uint64) (common.BlockTimeEntry, error) {
	if s.iterations >= s.cache.maxSearchIterations {
		return common.BlockTimeEntry{}, &SearchBoundExceededError{Target: s.target, Iterations: s.iterations, Low: s.lo, High: s.hi}
	}
	s.iterations++
	return s.cache.GetBlockForNumber(ctx, number)
}

// extendDown walks below hi until it finds a block at or before the target.
func (s *blockSearch) extendDown(ctx context.Context) error {
	upper := s.hi
	step := s.cache.referenceSpan
	for {
		if upper.Number == 0 {
			return ErrTimeBeforeFirstBlock
		}
		if step > upper.Number {
			step = upper.Number
		}
		candidate, err := s.probe(ctx, upper.Number-step)
		if err != nil {
			return err
		}
		if !candidate.Utc.After(s.target) {
			s.lo, s.hi = candidate, upper
			return nil
		}
		// overshoot the estimate by a quarter so the next probe lands below the target
		estimate := uint64(candidate.Utc.Sub(s.target)/averageBlockTime(candidate, upper)) + 1
		step = estimate + estimate/4 + 1
		upper = candidate
	}
}

func (s *blockSearch) refine(ctx context.Context) (common.BlockTimeEntry, error) {
	bisect := false
	for s.hi.Number-s.lo.Number > 1 {
		width := s.hi.Number - s.lo.Number

		var candidate uint64
		if bisect {
			candidate = s.lo.Number + width/2
		} else {
			fraction := float64(s.target.Sub(s.lo.Utc)) / float64(s.hi.Utc.Sub(s.lo.Utc))
			candidate = s.lo.Number + uint64(fraction*float64(width))
		}
		if candidate <= s.lo.Number {
			candidate = s.lo.Number + 1
		}
		if candidate >= s.hi.Number {
			candidate = s.hi.Number - 1
		}

		entry, err := s.probe(ctx, candidate)
		if err != nil {
			return common.BlockTimeEntry{}, err
		}
		if entry.Utc.After(s.target) {
			s.hi = entry
		} else {
			s.lo = entry
		}
		bisect = s.hi.Number-s.lo.Number > width/2
	}
	return s.lo, nil
}

func averageBlockTime(from, to common.BlockTimeEntry) time.Duration {
	if to.Number <= from.Number || !to.Utc.After(from.Utc) {
		return time.Second
	}
	avg := to.Utc.Sub(from.Utc) / time.Duration(to.Number-from.Number)
	if avg <= 0 {
		return time.Nanosecond
	}
	return avg
}
