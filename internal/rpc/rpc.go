package rpc

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/chain-monitor/configs"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"golang.org/x/sync/semaphore"
)

type TimestampFetcher interface {
	FetchBlockTimestamp(ctx context.Context, number uint64) (time.Time, error)
	FetchLatestBlockNumber(ctx context.Context) (uint64, error)
}

type LogFetcher interface {
	FetchLogs(ctx context.Context, address gethCommon.Address, fromBlock, toBlock uint64) ([]common.Log, error)
}

type TraceFetcher interface {
	FetchTraces(ctx context.Context, address gethCommon.Address, fromBlock, toBlock uint64) ([]common.Trace, error)
}

// EntryFetcher reads the raw entries a contract produced over a block range.
type EntryFetcher interface {
	LogFetcher
	TraceFetcher
}

type IRPCClient interface {
	TimestampFetcher
	LogFetcher
	TraceFetcher
	GetURL() string
	GetBlocksPerRequest() BlocksPerRequestConfig
	SupportsTraceFilter() bool
	Close()
}

type BlocksPerRequestConfig struct {
	Logs   int
	Traces int
}

type Client struct {
	RPCClient           *gethRpc.Client
	EthClient           *ethclient.Client
	supportsTraceFilter bool
	url                 string
	chainID             *big.Int
	blocksPerRequest    BlocksPerRequestConfig
	batchSize           int
	batchSem            *semaphore.Weighted
}

func Initialize(ctx context.Context) (*Client, error) {
	rpcUrl := config.Cfg.RPC.URL
	if rpcUrl == "" {
		return nil, fmt.Errorf("RPC_URL environment variable is not set")
	}
	return InitializeWithUrl(ctx, rpcUrl)
}

func InitializeWithUrl(ctx context.Context, url string) (*Client, error) {
	log.Debug().Bool("websocket", isWebsocket(url)).Msg("Initializing RPC")
	rpcClient, dialErr := gethRpc.DialContext(ctx, url)
	if dialErr != nil {
		return nil, dialErr
	}
	rpc := NewClient(rpcClient, url)

	if err := rpc.checkSupportedMethods(ctx); err != nil {
		rpc.Close()
		return nil, err
	}
	if err := rpc.setChainID(ctx); err != nil {
		rpc.Close()
		return nil, err
	}
	return rpc, nil
}

// NewClient wraps an already dialed connection without probing the endpoint.
func NewClient(rpcClient *gethRpc.Client, url string) *Client {
	maxConcurrent := config.Cfg.RPC.MaxConcurrentBatches
	if maxConcurrent <= 0 {
		maxConcurrent = DEFAULT_MAX_CONCURRENT_BATCHES
	}
	return &Client{
		RPCClient:           rpcClient,
		EthClient:           ethclient.NewClient(rpcClient),
		url:                 url,
		blocksPerRequest:    GetBlockPerRequestConfig(),
		batchSize:           GetBatchSize(),
		batchSem:            semaphore.NewWeighted(int64(maxConcurrent)),
		supportsTraceFilter: config.Cfg.RPC.Traces.Enabled,
	}
}

func (rpc *Client) GetURL() string {
	return rpc.url
}

func (rpc *Client) GetChainID() *big.Int {
	return rpc.chainID
}

func (rpc *Client) GetBlocksPerRequest() BlocksPerRequestConfig {
	return rpc.blocksPerRequest
}

func (rpc *Client) SupportsTraceFilter() bool {
	return rpc.supportsTraceFilter
}

func (rpc *Client) Close() {
	rpc.EthClient.Close()
}

func (rpc *Client) checkSupportedMethods(ctx context.Context) error {
	var blockByNumberResult interface{}
	err := rpc.RPCClient.CallContext(ctx, &blockByNumberResult, "eth_getBlockByNumber", "latest", false)
	if err != nil {
		return fmt.Errorf("eth_getBlockByNumber method not supported: %v", err)
	}
	log.Debug().Msg("eth_getBlockByNumber method supported")

	var getLogsResult interface{}
	logsErr := rpc.RPCClient.CallContext(ctx, &getLogsResult, "eth_getLogs", map[string]string{"fromBlock": "0x0", "toBlock": "0x0"})
	if logsErr != nil {
		return fmt.Errorf("eth_getLogs method not supported: %v", logsErr)
	}
	log.Debug().Msg("eth_getLogs method supported")

	if !rpc.supportsTraceFilter {
		log.Debug().Msg("trace_filter method disabled")
		return nil
	}
	var traceFilterResult interface{}
	if traceErr := rpc.RPCClient.CallContext(ctx, &traceFilterResult, "trace_filter", map[string]interface{}{"fromBlock": "latest", "toBlock": "latest", "count": 1}); traceErr != nil {
		log.Warn().Err(traceErr).Msg("Optional method trace_filter not supported")
		rpc.supportsTraceFilter = false
	} else {
		log.Debug().Msg("trace_filter method supported")
	}
	return nil
}

func (rpc *Client) setChainID(ctx context.Context) error {
	chainID, err := rpc.EthClient.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %v", err)
	}
	rpc.chainID = chainID
	return nil
}

func (rpc *Client) FetchBlockTimestamp(ctx context.Context, number uint64) (time.Time, error) {
	header, err := rpc.EthClient.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header for block %d: %w", number, err)
	}
	return time.Unix(int64(header.Time), 0).UTC(), nil
}

func (rpc *Client) FetchLatestBlockNumber(ctx context.Context) (uint64, error) {
	blockNumber, err := rpc.EthClient.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	return blockNumber, nil
}

func (rpc *Client) FetchLogs(ctx context.Context, address gethCommon.Address, fromBlock, toBlock uint64) ([]common.Log, error) {
	chunks := common.BlockRangeToChunks(fromBlock, toBlock, rpc.blocksPerRequest.Logs)
	results := RPCFetchInBatches[common.BlockRange, RawLogs](rpc, ctx, chunks, rpc.batchSize, config.Cfg.RPC.Logs.BatchDelay, "eth_getLogs", GetLogsParams(address))

	logs := []common.Log{}
	for _, result := range results {
		if result.Error != nil {
			return nil, fmt.Errorf("eth_getLogs for blocks %d..%d: %w", result.Key.From, result.Key.To, result.Error)
		}
		serialized, err := serializeLogs(result.Result)
		if err != nil {
			return nil, fmt.Errorf("eth_getLogs for blocks %d..%d: %w", result.Key.From, result.Key.To, err)
		}
		logs = append(logs, serialized...)
	}
	return logs, nil
}

func (rpc *Client) FetchTraces(ctx context.Context, address gethCommon.Address, fromBlock, toBlock uint64) ([]common.Trace, error) {
	if !rpc.supportsTraceFilter {
		return nil, fmt.Errorf("trace_filter is not supported by %s", rpc.url)
	}
	chunks := common.BlockRangeToChunks(fromBlock, toBlock, rpc.blocksPerRequest.Traces)
	results := RPCFetchInBatches[common.BlockRange, RawTraces](rpc, ctx, chunks, rpc.batchSize, config.Cfg.RPC.Traces.BatchDelay, "trace_filter", TraceFilterParams(address))

	traces := []common.Trace{}
	for _, result := range results {
		if result.Error != nil {
			return nil, fmt.Errorf("trace_filter for blocks %d..%d: %w", result.Key.From, result.Key.To, result.Error)
		}
		serialized, err := serializeTraces(result.Result)
		if err != nil {
			return nil, fmt.Errorf("trace_filter for blocks %d..%d: %w", result.Key.From, result.Key.To, err)
		}
		traces = append(traces, serialized...)
	}
	return traces, nil
}

func isWebsocket(url string) bool {
	return strings.HasPrefix(url, "ws://") || strings.HasPrefix(url, "wss://")
}
