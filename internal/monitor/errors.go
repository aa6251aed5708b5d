package monitor

import (
	"errors"
	"fmt"
	"time"

	"github.com/thirdweb-dev/chain-monitor/internal/common"
)

var ErrTimeBeforeFirstBlock = errors.New("timestamp is before the first block of the chain")

// ChainQueryError reports a failed RPC query for a single block or for a block range.
type ChainQueryError struct {
	BlockNumber uint64
	Range       *common.BlockRange
	Cause       error
}

func (e *ChainQueryError) Error() string {
	if e.Range != nil {
		return fmt.Sprintf("chain query for blocks %d..%d failed: %v", e.Range.From, e.Range.To, e.Cause)
	}
	return fmt.Sprintf("chain query for block %d failed: %v", e.BlockNumber, e.Cause)
}

func (e *ChainQueryError) Unwrap() error {
	return e.Cause
}

type InvalidIntervalError struct {
	Interval common.BlockInterval
	Reason   string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid block interval %s: %s", e.Interval, e.Reason)
}

type OutOfIntervalError struct {
	BlockNumber uint64
	Interval    common.BlockInterval
}

func (e *OutOfIntervalError) Error() string {
	return fmt.Sprintf("block %d is outside of %s", e.BlockNumber, e.Interval)
}

// DecodeError is collected for an entry that matched a collector but could not be decoded.
type DecodeError struct {
	EntryID     string
	BlockNumber uint64
	Signature   string
	Cause       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s at block %d as %s: %v", e.EntryID, e.BlockNumber, e.Signature, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

type SearchBoundExceededError struct {
	Target     time.Time
	Iterations int
	Low        common.BlockTimeEntry
	High       common.BlockTimeEntry
}

func (e *SearchBoundExceededError) Error() string {
	return fmt.Sprintf("block search for %s did not converge after %d iterations (bracket %d..%d)",
		e.Target.Format(time.RFC3339Nano), e.Iterations, e.Low.Number, e.High.Number)
}
