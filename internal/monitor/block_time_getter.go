package monitor

import (
	"math/big"
	"time"

	"github.com/thirdweb-dev/chain-monitor/internal/common"
)

// InterpolationTolerance is the error callers should allow for interpolated timestamps.
// Over a ~15 minute interval of a chain with a steady production rate the estimate stays
// well below it; it grows with the variance of the real block times inside the interval.
const InterpolationTolerance = 500 * time.Millisecond

// BlockTimeGetter estimates block timestamps inside an interval whose two boundary blocks
// have exact timestamps. It never performs I/O and is safe for concurrent use.
type BlockTimeGetter struct {
	interval common.BlockInterval
}

func NewBlockTimeGetter(interval common.BlockInterval) (*BlockTimeGetter, error) {
	if interval.ToBlock <= interval.FromBlock {
		return nil, &InvalidIntervalError{Interval: interval, Reason: "interval must span at least one block"}
	}
	if !interval.HasRange() {
		return nil, &InvalidIntervalError{Interval: interval, Reason: "boundary timestamps are unknown"}
	}
	if interval.Range.To.Before(interval.Range.From) {
		return nil, &InvalidIntervalError{Interval: interval, Reason: "time range ends before it starts"}
	}
	return &BlockTimeGetter{interval: interval}, nil
}

func (g *BlockTimeGetter) Interval() common.BlockInterval {
	return g.interval
}

func (g *BlockTimeGetter) AverageBlockTime() time.Duration {
	return g.interval.Range.Duration() / time.Duration(g.interval.Span())
}

// Get returns the boundary timestamps as they are and interpolates every block in between.
func (g *BlockTimeGetter) Get(number uint64) (common.BlockTimeEntry, error) {
	if !g.interval.Contains(number) {
		return common.BlockTimeEntry{}, &OutOfIntervalError{BlockNumber: number, Interval: g.interval}
	}
	switch number {
	case g.interval.FromBlock:
		return common.BlockTimeEntry{Number: number, Utc: g.interval.Range.From, Exact: true}, nil
	case g.interval.ToBlock:
		return common.BlockTimeEntry{Number: number, Utc: g.interval.Range.To, Exact: true}, nil
	}

	stepsFromStart := new(big.Int).SetUint64(number - g.interval.FromBlock)
	totalSteps := new(big.Int).SetUint64(g.interval.Span())
	// duration * steps can overflow int64 for long intervals
	offset := new(big.Int).Mul(big.NewInt(int64(g.interval.Range.Duration())), stepsFromStart)
	offset.Quo(offset, totalSteps)

	return common.BlockTimeEntry{
		Number: number,
		Utc:    g.interval.Range.From.Add(time.Duration(offset.Int64())),
	}, nil
}
