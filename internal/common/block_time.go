package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeRange     = errors.New("time range ends before it starts")
	ErrInvalidBlockInterval = errors.New("block interval ends before it starts")
)

// TimeRange is a closed wall-clock window. To is never before From.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func NewTimeRange(from, to time.Time) (TimeRange, error) {
	if to.Before(from) {
		return TimeRange{}, fmt.Errorf("%w: from=%s to=%s", ErrInvalidTimeRange, from.Format(time.RFC3339Nano), to.Format(time.RFC3339Nano))
	}
	return TimeRange{From: from.UTC(), To: to.UTC()}, nil
}

func (r TimeRange) Duration() time.Duration {
	return r.To.Sub(r.From)
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.From.Format(time.RFC3339Nano), r.To.Format(time.RFC3339Nano))
}

// BlockInterval states that FromBlock was produced at Range.From and ToBlock at Range.To.
// Range may be left zero when only the block numbers are known yet.
type BlockInterval struct {
	Range     TimeRange `json:"range"`
	FromBlock uint64    `json:"from_block"`
	ToBlock   uint64    `json:"to_block"`
}

// NewBlockInterval builds an interval from two boundary entries.
func NewBlockInterval(from, to BlockTimeEntry) (BlockInterval, error) {
	if to.Number < from.Number {
		return BlockInterval{}, fmt.Errorf("%w: from=%d to=%d", ErrInvalidBlockInterval, from.Number, to.Number)
	}
	timeRange, err := NewTimeRange(from.Utc, to.Utc)
	if err != nil {
		return BlockInterval{}, fmt.Errorf("blocks %d..%d: %w", from.Number, to.Number, err)
	}
	return BlockInterval{Range: timeRange, FromBlock: from.Number, ToBlock: to.Number}, nil
}

// NewBlockNumberInterval builds an interval whose boundary timestamps still have to be resolved.
func NewBlockNumberInterval(fromBlock, toBlock uint64) (BlockInterval, error) {
	if toBlock < fromBlock {
		return BlockInterval{}, fmt.Errorf("%w: from=%d to=%d", ErrInvalidBlockInterval, fromBlock, toBlock)
	}
	return BlockInterval{FromBlock: fromBlock, ToBlock: toBlock}, nil
}

// HasRange reports whether both boundary timestamps are known.
func (i BlockInterval) HasRange() bool {
	return !i.Range.From.IsZero() && !i.Range.To.IsZero()
}

func (i BlockInterval) Span() uint64 {
	if i.ToBlock < i.FromBlock {
		return 0
	}
	return i.ToBlock - i.FromBlock
}

func (i BlockInterval) Contains(number uint64) bool {
	return number >= i.FromBlock && number <= i.ToBlock
}

func (i BlockInterval) String() string {
	if !i.HasRange() {
		return fmt.Sprintf("blocks %d..%d", i.FromBlock, i.ToBlock)
	}
	return fmt.Sprintf("blocks %d..%d %s", i.FromBlock, i.ToBlock, i.Range)
}

// BlockTimeEntry is the time a single block was produced at. Exact entries were read
// from the chain, the others are interpolated estimates.
type BlockTimeEntry struct {
	Number uint64    `json:"number"`
	Utc    time.Time `json:"utc"`
	Exact  bool      `json:"exact"`
}

func (e BlockTimeEntry) SameBlock(other BlockTimeEntry) bool {
	return e.Number == other.Number
}

func (e BlockTimeEntry) Less(other BlockTimeEntry) bool {
	return e.Number < other.Number
}

func (e BlockTimeEntry) String() string {
	kind := "interpolated"
	if e.Exact {
		kind = "exact"
	}
	return fmt.Sprintf("block %d at %s (%s)", e.Number, e.Utc.Format(time.RFC3339Nano), kind)
}
