package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	from := time.Date(2025, 10, 6, 7, 31, 54, 0, time.UTC)
	to := from.Add(15 * time.Minute)

	r, err := NewTimeRange(from, to)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, r.Duration())
	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(to.Add(time.Nanosecond)))

	_, err = NewTimeRange(to, from)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNewBlockInterval(t *testing.T) {
	from := BlockTimeEntry{Number: 10, Utc: time.Unix(1000, 0), Exact: true}
	to := BlockTimeEntry{Number: 20, Utc: time.Unix(1010, 0), Exact: true}

	interval, err := NewBlockInterval(from, to)
	require.NoError(t, err)
	assert.True(t, interval.HasRange())
	assert.Equal(t, uint64(10), interval.Span())
	assert.True(t, interval.Contains(15))
	assert.False(t, interval.Contains(21))

	_, err = NewBlockInterval(to, from)
	assert.ErrorIs(t, err, ErrInvalidBlockInterval)

	// block numbers in order but timestamps reversed
	_, err = NewBlockInterval(from, BlockTimeEntry{Number: 20, Utc: time.Unix(900, 0)})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNewBlockNumberInterval(t *testing.T) {
	interval, err := NewBlockNumberInterval(5, 5)
	require.NoError(t, err)
	assert.False(t, interval.HasRange())
	assert.Equal(t, uint64(0), interval.Span())

	_, err = NewBlockNumberInterval(6, 5)
	assert.ErrorIs(t, err, ErrInvalidBlockInterval)
}

func TestBlockTimeEntryOrdering(t *testing.T) {
	a := BlockTimeEntry{Number: 1, Utc: time.Unix(10, 0), Exact: true}
	b := BlockTimeEntry{Number: 2, Utc: time.Unix(10, 0)}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.SameBlock(BlockTimeEntry{Number: 1}))
}

func TestBlockRangeToChunks(t *testing.T) {
	assert.Equal(t, []BlockRange{{From: 0, To: 9}}, BlockRangeToChunks(0, 9, 10))
	assert.Equal(t, []BlockRange{{From: 0, To: 9}, {From: 10, To: 10}}, BlockRangeToChunks(0, 10, 10))
	assert.Equal(t, []BlockRange{{From: 5, To: 6}, {From: 7, To: 8}, {From: 9, To: 9}}, BlockRangeToChunks(5, 9, 2))
	assert.Equal(t, []BlockRange{{From: 3, To: 3}}, BlockRangeToChunks(3, 3, 0))
	assert.Nil(t, BlockRangeToChunks(4, 3, 10))
}
