package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticChain produces a block every 12s plus up to 5s of jitter.
type syntheticChain struct {
	head    uint64
	fetches atomic.Int64
	failAt  map[uint64]error
}

func (c *syntheticChain) timestamp(number uint64) time.Time {
	jitter := time.Duration(number*7919%6) * time.Second
	return genesis.Add(time.Duration(number)*12*time.Second + jitter)
}

func (c *syntheticChain) FetchBlockTimestamp(ctx context.Context, number uint64) (time.Time, error) {
	c.fetches.Add(1)
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	if number > c.head {
		return time.Time{}, fmt.Errorf("block %d not found", number)
	}
	if err, ok := c.failAt[number]; ok {
		return time.Time{}, err
	}
	return c.timestamp(number), nil
}

func (c *syntheticChain) FetchLatestBlockNumber(ctx context.Context) (uint64, error) {
	return c.head, ctx.Err()
}

// highestAtOrBefore is the brute force answer.
func (c *syntheticChain) highestAtOrBefore(utc time.Time) uint64 {
	n := sort.Search(int(c.head)+1, func(i int) bool {
		return c.timestamp(uint64(i)).After(utc)
	})
	return uint64(n - 1)
}

func TestGetBlockForUtcFindsHighestBlockAtOrBefore(t *testing.T) {
	chain := &syntheticChain{head: 1_000_000}

	targets := []time.Time{
		chain.timestamp(1),
		chain.timestamp(123_456),
		chain.timestamp(123_456).Add(time.Second),
		chain.timestamp(500_000).Add(-time.Millisecond),
		chain.timestamp(999_999).Add(3 * time.Second),
		genesis.Add(37 * 24 * time.Hour).Add(1234 * time.Millisecond),
	}

	for _, target := range targets {
		t.Run(target.Format(time.RFC3339Nano), func(t *testing.T) {
			cache := NewBlockCache(chain)
			entry, err := cache.GetBlockForUtc(context.Background(), target)
			require.NoError(t, err)

			expected := chain.highestAtOrBefore(target)
			assert.Equal(t, expected, entry.Number)
			assert.True(t, entry.Exact)
			assert.False(t, entry.Utc.After(target))
			assert.True(t, chain.timestamp(entry.Number+1).After(target))
		})
	}
}

func TestGetBlockForUtcReusesCachedBracket(t *testing.T) {
	chain := &syntheticChain{head: 1_000_000}
	cache := NewBlockCache(chain)
	target := chain.timestamp(250_000).Add(2 * time.Second)

	first, err := cache.GetBlockForUtc(context.Background(), target)
	require.NoError(t, err)
	fetched := chain.fetches.Load()

	second, err := cache.GetBlockForUtc(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, fetched, chain.fetches.Load())

	entry, ok := cache.Peek(first.Number)
	assert.True(t, ok)
	assert.Equal(t, first, entry)
}

func TestGetBlockForUtcAfterHeadReturnsHead(t *testing.T) {
	chain := &syntheticChain{head: 5_000}
	cache := NewBlockCache(chain)

	entry, err := cache.GetBlockForUtc(context.Background(), chain.timestamp(5_000).Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), entry.Number)
}

func TestGetBlockForUtcBeforeFirstBlock(t *testing.T) {
	chain := &syntheticChain{head: 5_000}
	cache := NewBlockCache(chain)

	_, err := cache.GetBlockForUtc(context.Background(), genesis.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrTimeBeforeFirstBlock)
}

func TestGetBlockForUtcSmallChain(t *testing.T) {
	chain := &syntheticChain{head: 3}
	cache := NewBlockCache(chain, WithReferenceSpan(100))

	for n := uint64(0); n <= 3; n++ {
		entry, err := cache.GetBlockForUtc(context.Background(), chain.timestamp(n))
		require.NoError(t, err)
		assert.Equal(t, n, entry.Number)
	}
}

func TestGetBlockForUtcSearchBoundExceeded(t *testing.T) {
	chain := &syntheticChain{head: 1_000_000}
	cache := NewBlockCache(chain, WithMaxSearchIterations(2))

	_, err := cache.GetBlockForUtc(context.Background(), chain.timestamp(300_000).Add(time.Second))
	var boundErr *SearchBoundExceededError
	require.True(t, errors.As(err, &boundErr))
	assert.Equal(t, 2, boundErr.Iterations)
	assert.Less(t, boundErr.Low.Number, boundErr.High.Number)
}

func TestGetBlockForUtcPropagatesChainErrors(t *testing.T) {
	rpcErr := errors.New("connection reset")
	chain := &syntheticChain{head: 1_000_000, failAt: map[uint64]error{1_000_000 - DefaultReferenceSpan: rpcErr}}
	cache := NewBlockCache(chain)

	_, err := cache.GetBlockForUtc(context.Background(), chain.timestamp(10))
	var queryErr *ChainQueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, uint64(1_000_000-DefaultReferenceSpan), queryErr.BlockNumber)
	assert.ErrorIs(t, err, rpcErr)
}

func TestGetBlockForUtcConcurrentCallersAgree(t *testing.T) {
	chain := &syntheticChain{head: 200_000}
	cache := NewBlockCache(chain)
	target := chain.timestamp(77_777).Add(4 * time.Second)
	expected := chain.highestAtOrBefore(target)

	results := make(chan uint64, 8)
	for i := 0; i < 8; i++ {
		go func() {
			entry, err := cache.GetBlockForUtc(context.Background(), target)
			if err != nil {
				results <- 0
				return
			}
			results <- entry.Number
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, expected, <-results)
	}
}
