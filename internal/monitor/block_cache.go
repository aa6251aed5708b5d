package monitor

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/metrics"
	"github.com/thirdweb-dev/chain-monitor/internal/rpc"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxSearchIterations = 100
	DefaultReferenceSpan       = 10_000
	DefaultFetchTimeout        = 30 * time.Second
)

// BlockCache holds exact block timestamps read from the chain. Entries are never evicted.
// A single instance is meant to be shared by every consumer in the process.
type BlockCache struct {
	client rpc.TimestampFetcher

	mu      sync.RWMutex
	entries map[uint64]common.BlockTimeEntry

	inflight singleflight.Group

	maxSearchIterations int
	referenceSpan       uint64
	fetchTimeout        time.Duration
	logger              zerolog.Logger
}

type BlockCacheOption func(*BlockCache)

func WithMaxSearchIterations(n int) BlockCacheOption {
	return func(c *BlockCache) {
		if n > 0 {
			c.maxSearchIterations = n
		}
	}
}

func WithReferenceSpan(span uint64) BlockCacheOption {
	return func(c *BlockCache) {
		if span > 0 {
			c.referenceSpan = span
		}
	}
}

func WithFetchTimeout(timeout time.Duration) BlockCacheOption {
	return func(c *BlockCache) {
		if timeout > 0 {
			c.fetchTimeout = timeout
		}
	}
}

func WithCacheLogger(logger zerolog.Logger) BlockCacheOption {
	return func(c *BlockCache) {
		c.logger = logger
	}
}

func NewBlockCache(client rpc.TimestampFetcher, opts ...BlockCacheOption) *BlockCache {
	c := &BlockCache{
		client:              client,
		entries:             make(map[uint64]common.BlockTimeEntry),
		maxSearchIterations: DefaultMaxSearchIterations,
		referenceSpan:       DefaultReferenceSpan,
		fetchTimeout:        DefaultFetchTimeout,
		logger:              log.With().Str("module", "block_cache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Peek returns a cached entry without touching the chain.
func (c *BlockCache) Peek(number uint64) (common.BlockTimeEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[number]
	return entry, ok
}

func (c *BlockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *BlockCache) store(entry common.BlockTimeEntry) {
	c.mu.Lock()
	c.entries[entry.Number] = entry
	size := len(c.entries)
	c.mu.Unlock()
	metrics.BlockCacheSize.Set(float64(size))
}

// GetBlockForNumber returns the exact timestamp of a block, fetching it at most once.
// Concurrent callers asking for the same uncached block share a single fetch.
func (c *BlockCache) GetBlockForNumber(ctx context.Context, number uint64) (common.BlockTimeEntry, error) {
	if entry, ok := c.Peek(number); ok {
		metrics.BlockCacheHits.Inc()
		return entry, nil
	}
	metrics.BlockCacheMisses.Inc()

	resultCh := c.inflight.DoChan(strconv.FormatUint(number, 10), func() (interface{}, error) {
		return c.fetch(ctx, number)
	})
	select {
	case result := <-resultCh:
		if result.Shared {
			metrics.BlockCacheCoalescedWaits.Inc()
		}
		if result.Err != nil {
			return common.BlockTimeEntry{}, result.Err
		}
		return result.Val.(common.BlockTimeEntry), nil
	case <-ctx.Done():
		return common.BlockTimeEntry{}, &ChainQueryError{BlockNumber: number, Cause: ctx.Err()}
	}
}

// fetch runs once per in-flight block number. It is detached from the caller's
// cancellation because other callers may be waiting on the same result.
func (c *BlockCache) fetch(ctx context.Context, number uint64) (common.BlockTimeEntry, error) {
	if entry, ok := c.Peek(number); ok {
		return entry, nil
	}
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()

	metrics.BlockCacheFetches.Inc()
	ts, err := c.client.FetchBlockTimestamp(fetchCtx, number)
	if err != nil {
		metrics.BlockCacheFetchErrors.Inc()
		c.logger.Debug().Err(err).Uint64("block", number).Msg("failed to fetch block timestamp")
		return common.BlockTimeEntry{}, &ChainQueryError{BlockNumber: number, Cause: err}
	}
	entry := common.BlockTimeEntry{Number: number, Utc: ts.UTC(), Exact: true}
	c.store(entry)
	return entry, nil
}

func (c *BlockCache) headEntry(ctx context.Context) (common.BlockTimeEntry, error) {
	head, err := c.client.FetchLatestBlockNumber(ctx)
	if err != nil {
		return common.BlockTimeEntry{}, &ChainQueryError{BlockNumber: head, Cause: fmt.Errorf("failed to get chain head: %w", err)}
	}
	return c.GetBlockForNumber(ctx, head)
}

// bracket returns the closest cached blocks at-or-before and after utc.
func (c *BlockCache) bracket(utc time.Time) (lo, hi common.BlockTimeEntry, haveLo, haveHi bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, entry := range c.entries {
		if entry.Utc.After(utc) {
			if !haveHi || entry.Number < hi.Number {
				hi, haveHi = entry, true
			}
		} else if !haveLo || entry.Number > lo.Number {
			lo, haveLo = entry, true
		}
	}
	return lo, hi, haveLo, haveHi
}
