package rpc

import (
	"context"
	"sync"
	"time"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/chain-monitor/internal/metrics"
)

type RPCFetchBatchResult[K any, T any] struct {
	Key    K
	Error  error
	Result T
}

// RPCFetchInBatches sends one call per key, grouped into JSON-RPC batches of at most batchSize calls.
// Results keep the order of keys.
func RPCFetchInBatches[K any, T any](rpc *Client, ctx context.Context, keys []K, batchSize int, batchDelay int, method string, argsFunc func(K) []interface{}) []RPCFetchBatchResult[K, T] {
	if batchSize <= 0 || len(keys) <= batchSize {
		return RPCFetchSingleBatch[K, T](rpc, ctx, keys, method, argsFunc)
	}
	chunks := sliceToChunks(keys, batchSize)

	log.Debug().Msgf("Fetching %s for %d ranges in %d batches of max %d requests", method, len(keys), len(chunks), batchSize)

	var wg sync.WaitGroup
	results := make([]RPCFetchBatchResult[K, T], len(keys))

	for i, chunk := range chunks {
		wg.Add(1)
		go func(offset int, chunk []K) {
			defer wg.Done()
			batchResults := RPCFetchSingleBatch[K, T](rpc, ctx, chunk, method, argsFunc)
			copy(results[offset:], batchResults)
			if batchDelay > 0 {
				time.Sleep(time.Duration(batchDelay) * time.Millisecond)
			}
		}(i*batchSize, chunk)
	}
	wg.Wait()

	return results
}

func RPCFetchSingleBatch[K any, T any](rpc *Client, ctx context.Context, keys []K, method string, argsFunc func(K) []interface{}) []RPCFetchBatchResult[K, T] {
	batch := make([]gethRpc.BatchElem, len(keys))
	results := make([]RPCFetchBatchResult[K, T], len(keys))

	for i, key := range keys {
		results[i] = RPCFetchBatchResult[K, T]{Key: key}
		batch[i] = gethRpc.BatchElem{
			Method: method,
			Args:   argsFunc(key),
			Result: new(T),
		}
	}

	if err := rpc.batchSem.Acquire(ctx, 1); err != nil {
		for i := range results {
			results[i].Error = err
		}
		return results
	}
	defer rpc.batchSem.Release(1)

	metrics.RPCRequests.WithLabelValues(method).Add(float64(len(keys)))
	err := rpc.RPCClient.BatchCallContext(ctx, batch)
	if err != nil {
		metrics.RPCErrors.WithLabelValues(method).Inc()
		for i := range results {
			results[i].Error = err
		}
		return results
	}

	for i, elem := range batch {
		if elem.Error != nil {
			metrics.RPCErrors.WithLabelValues(method).Inc()
			results[i].Error = elem.Error
		} else {
			results[i].Result = *elem.Result.(*T)
		}
	}

	return results
}

func sliceToChunks[K any](values []K, chunkSize int) [][]K {
	if chunkSize >= len(values) || chunkSize <= 0 {
		return [][]K{values}
	}
	var chunks [][]K
	for i := 0; i < len(values); i += chunkSize {
		end := i + chunkSize
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[i:end])
	}
	return chunks
}
