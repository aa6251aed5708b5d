package monitor

import (
	"context"
	"errors"
	"strings"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/rpc"
	"golang.org/x/sync/errgroup"
)

// Engine scans a contract's logs or call traces over a block interval and routes
// every matching entry to the registered collectors.
type Engine struct {
	client    rpc.EntryFetcher
	cache     *BlockCache
	listeners listeners
	logger    zerolog.Logger
}

type EngineOption func(*Engine)

func WithListener(listener ScanListener) EngineOption {
	return func(e *Engine) {
		e.listeners = append(e.listeners, listener)
	}
}

func WithEngineLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithoutDefaultListeners drops the metrics listener every engine starts with.
func WithoutDefaultListeners() EngineOption {
	return func(e *Engine) {
		e.listeners = nil
	}
}

func NewEngine(client rpc.EntryFetcher, cache *BlockCache, opts ...EngineOption) *Engine {
	e := &Engine{
		client:    client,
		cache:     cache,
		listeners: listeners{MetricsListener()},
		logger:    log.With().Str("module", "engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddListener registers callbacks that run after the ones already registered.
// It must not be called while a scan is running.
func (e *Engine) AddListener(listener ScanListener) {
	e.listeners = append(e.listeners, listener)
}

// CollectEvents fetches every log the contract emitted in the interval and hands each one to
// the collectors whose topic matches. Logs nobody registered for are dropped. A log that matches
// but cannot be decoded yields a DecodeError and the scan goes on; a failed fetch aborts the scan.
func (e *Engine) CollectEvents(ctx context.Context, address gethCommon.Address, interval common.BlockInterval, collectors ...EventCollector) ([]EventCollector, []*DecodeError, error) {
	info := ScanInfo{Kind: ScanKindEvents, Address: address, Interval: interval}
	start := time.Now()
	e.listeners.scanStarted(info)

	stamper, err := e.prepare(ctx, interval)
	if err != nil {
		e.listeners.scanFailed(info, err)
		return collectors, nil, err
	}
	info.Interval = stamper.interval

	logs, err := e.client.FetchLogs(ctx, address, interval.FromBlock, interval.ToBlock)
	if err != nil {
		err = &ChainQueryError{Range: &common.BlockRange{From: interval.FromBlock, To: interval.ToBlock}, Cause: err}
		e.listeners.scanFailed(info, err)
		return collectors, nil, err
	}

	byTopic := make(map[gethCommon.Hash][]EventCollector, len(collectors))
	for _, c := range collectors {
		byTopic[c.Topic()] = append(byTopic[c.Topic()], c)
	}

	summary := ScanSummary{Entries: len(logs)}
	var decodeErrors []*DecodeError
	for _, entry := range logs {
		matching := byTopic[entry.Topic0()]
		if len(matching) == 0 {
			continue
		}
		for _, c := range matching {
			at, err := stamper.stamp(entry.BlockNumber)
			if err == nil {
				err = c.Accept(entry, at)
			}
			if err != nil {
				decodeErr := &DecodeError{EntryID: entry.ID(), BlockNumber: entry.BlockNumber, Signature: c.Signature(), Cause: err}
				decodeErrors = append(decodeErrors, decodeErr)
				e.listeners.decodeFailed(info, decodeErr)
				continue
			}
			summary.Records++
			e.listeners.recordCollected(info, c.Signature(), at)
		}
	}

	summary.DecodeErrors = len(decodeErrors)
	summary.Duration = time.Since(start)
	e.listeners.scanCompleted(info, summary)
	return collectors, decodeErrors, nil
}

// CollectFunctionCalls does for traced calls into the contract what CollectEvents does for logs.
// Calls are matched on their four byte selector.
func (e *Engine) CollectFunctionCalls(ctx context.Context, address gethCommon.Address, interval common.BlockInterval, collectors ...FunctionCollector) ([]FunctionCollector, []*DecodeError, error) {
	info := ScanInfo{Kind: ScanKindFunctionCalls, Address: address, Interval: interval}
	start := time.Now()
	e.listeners.scanStarted(info)

	stamper, err := e.prepare(ctx, interval)
	if err != nil {
		e.listeners.scanFailed(info, err)
		return collectors, nil, err
	}
	info.Interval = stamper.interval

	traces, err := e.client.FetchTraces(ctx, address, interval.FromBlock, interval.ToBlock)
	if err != nil {
		err = &ChainQueryError{Range: &common.BlockRange{From: interval.FromBlock, To: interval.ToBlock}, Cause: err}
		e.listeners.scanFailed(info, err)
		return collectors, nil, err
	}

	bySelector := make(map[[4]byte][]FunctionCollector, len(collectors))
	for _, c := range collectors {
		bySelector[c.Selector()] = append(bySelector[c.Selector()], c)
	}

	summary := ScanSummary{Entries: len(traces)}
	var decodeErrors []*DecodeError
	for _, entry := range traces {
		if !strings.EqualFold(entry.ToAddress, address.Hex()) {
			continue
		}
		selector, ok := entry.Selector()
		if !ok {
			continue
		}
		for _, c := range bySelector[selector] {
			at, err := stamper.stamp(entry.BlockNumber)
			if err == nil {
				err = c.Accept(entry, at)
			}
			if err != nil {
				decodeErr := &DecodeError{EntryID: entry.ID(), BlockNumber: entry.BlockNumber, Signature: c.Signature(), Cause: err}
				decodeErrors = append(decodeErrors, decodeErr)
				e.listeners.decodeFailed(info, decodeErr)
				continue
			}
			summary.Records++
			e.listeners.recordCollected(info, c.Signature(), at)
		}
	}

	summary.DecodeErrors = len(decodeErrors)
	summary.Duration = time.Since(start)
	e.listeners.scanCompleted(info, summary)
	return collectors, decodeErrors, nil
}

// CollectEventsBetween scans the blocks produced inside timeRange. An empty window,
// one that no block falls into, returns the collectors untouched.
func (e *Engine) CollectEventsBetween(ctx context.Context, address gethCommon.Address, timeRange common.TimeRange, collectors ...EventCollector) ([]EventCollector, []*DecodeError, error) {
	interval, ok, err := e.IntervalForTimeRange(ctx, timeRange)
	if err != nil || !ok {
		return collectors, nil, err
	}
	return e.CollectEvents(ctx, address, interval, collectors...)
}

// CollectFunctionCallsBetween is the time based counterpart of CollectFunctionCalls.
func (e *Engine) CollectFunctionCallsBetween(ctx context.Context, address gethCommon.Address, timeRange common.TimeRange, collectors ...FunctionCollector) ([]FunctionCollector, []*DecodeError, error) {
	interval, ok, err := e.IntervalForTimeRange(ctx, timeRange)
	if err != nil || !ok {
		return collectors, nil, err
	}
	return e.CollectFunctionCalls(ctx, address, interval, collectors...)
}

// IntervalForTimeRange returns the blocks whose timestamps fall inside timeRange, with their
// exact boundary timestamps. ok is false when no block was produced inside the window.
func (e *Engine) IntervalForTimeRange(ctx context.Context, timeRange common.TimeRange) (common.BlockInterval, bool, error) {
	last, err := e.cache.GetBlockForUtc(ctx, timeRange.To)
	if errors.Is(err, ErrTimeBeforeFirstBlock) {
		return common.BlockInterval{}, false, nil
	}
	if err != nil {
		return common.BlockInterval{}, false, err
	}

	first, err := e.cache.GetBlockForUtc(ctx, timeRange.From)
	switch {
	case errors.Is(err, ErrTimeBeforeFirstBlock):
		first, err = e.cache.GetBlockForNumber(ctx, 0)
		if err != nil {
			return common.BlockInterval{}, false, err
		}
	case err != nil:
		return common.BlockInterval{}, false, err
	case first.Utc.Before(timeRange.From):
		// first is the last block before the window
		if first.Number >= last.Number {
			return common.BlockInterval{}, false, nil
		}
		first, err = e.cache.GetBlockForNumber(ctx, first.Number+1)
		if err != nil {
			return common.BlockInterval{}, false, err
		}
	}
	if last.Number < first.Number || first.Utc.After(timeRange.To) {
		return common.BlockInterval{}, false, nil
	}

	interval, err := common.NewBlockInterval(first, last)
	if err != nil {
		return common.BlockInterval{}, false, &InvalidIntervalError{Interval: common.BlockInterval{FromBlock: first.Number, ToBlock: last.Number}, Reason: err.Error()}
	}
	return interval, true, nil
}

// prepare validates the interval, fills in missing boundary timestamps from the cache
// and returns what stamps entries inside it.
func (e *Engine) prepare(ctx context.Context, interval common.BlockInterval) (*blockStamper, error) {
	if interval.ToBlock < interval.FromBlock {
		return nil, &InvalidIntervalError{Interval: interval, Reason: "interval ends before it starts"}
	}
	if !interval.HasRange() {
		resolved, err := e.resolveInterval(ctx, interval)
		if err != nil {
			return nil, err
		}
		interval = resolved
	}
	return newBlockStamper(e.cache, interval)
}

func (e *Engine) resolveInterval(ctx context.Context, interval common.BlockInterval) (common.BlockInterval, error) {
	var from, to common.BlockTimeEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entry, err := e.cache.GetBlockForNumber(gctx, interval.FromBlock)
		from = entry
		return err
	})
	g.Go(func() error {
		entry, err := e.cache.GetBlockForNumber(gctx, interval.ToBlock)
		to = entry
		return err
	})
	if err := g.Wait(); err != nil {
		return common.BlockInterval{}, err
	}

	resolved, err := common.NewBlockInterval(from, to)
	if err != nil {
		return common.BlockInterval{}, &InvalidIntervalError{Interval: interval, Reason: err.Error()}
	}
	e.logger.Debug().Msgf("Resolved boundaries of %s", resolved)
	return resolved, nil
}

// blockStamper attaches a time to entries inside one interval. Blocks already in the
// cache get their exact time, the rest are interpolated.
type blockStamper struct {
	cache    *BlockCache
	interval common.BlockInterval
	getter   *BlockTimeGetter
}

func newBlockStamper(cache *BlockCache, interval common.BlockInterval) (*blockStamper, error) {
	s := &blockStamper{cache: cache, interval: interval}
	if interval.Span() == 0 {
		return s, nil
	}
	getter, err := NewBlockTimeGetter(interval)
	if err != nil {
		return nil, err
	}
	s.getter = getter
	return s, nil
}

func (s *blockStamper) stamp(number uint64) (common.BlockTimeEntry, error) {
	if !s.interval.Contains(number) {
		return common.BlockTimeEntry{}, &OutOfIntervalError{BlockNumber: number, Interval: s.interval}
	}
	if entry, ok := s.cache.Peek(number); ok {
		return entry, nil
	}
	if s.getter == nil {
		return common.BlockTimeEntry{Number: number, Utc: s.interval.Range.From, Exact: true}, nil
	}
	return s.getter.Get(number)
}
