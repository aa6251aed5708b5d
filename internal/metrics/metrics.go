package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Block Cache Metrics
var (
	BlockCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "block_cache_hits_total",
		Help: "The number of block timestamp lookups answered from the cache",
	})

	BlockCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "block_cache_misses_total",
		Help: "The number of block timestamp lookups that needed an RPC fetch",
	})

	BlockCacheFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "block_cache_fetches_total",
		Help: "The number of block timestamp RPC fetches issued by the cache",
	})

	BlockCacheFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "block_cache_fetch_errors_total",
		Help: "The number of failed block timestamp RPC fetches",
	})

	BlockCacheCoalescedWaits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "block_cache_coalesced_waits_total",
		Help: "The number of lookups that shared another caller's in-flight fetch",
	})

	BlockCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "block_cache_entries",
		Help: "The number of exact block timestamps held in the cache",
	})
)

// Block Search Metrics
var (
	BlockSearchIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "block_search_iterations",
		Help:    "Refinement steps needed to find the block for a timestamp",
		Buckets: prometheus.LinearBuckets(0, 4, 12),
	})

	BlockSearchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "block_search_failures_total",
		Help: "The number of block-for-timestamp searches that did not converge",
	})
)

// Collection Metrics
var (
	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collection_scan_duration_seconds",
		Help:    "Time taken to scan a block interval for events or function calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	CollectedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_records_total",
		Help: "The number of decoded records handed to collectors",
	}, []string{"kind", "signature"})

	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_decode_errors_total",
		Help: "The number of entries that matched a collector but failed to decode",
	}, []string{"kind", "signature"})

	ScannedBlocks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_scanned_blocks_total",
		Help: "The number of blocks covered by scans",
	}, []string{"kind"})
)

// RPC Metrics
var (
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpc_requests_total",
		Help: "The number of JSON-RPC calls sent in batches",
	}, []string{"method"})

	RPCErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpc_errors_total",
		Help: "The number of failed JSON-RPC calls",
	}, []string{"method"})
)
