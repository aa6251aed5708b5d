package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/chain-monitor/configs"
	customLogger "github.com/thirdweb-dev/chain-monitor/internal/log"
	"github.com/thirdweb-dev/chain-monitor/internal/monitor"
	"github.com/thirdweb-dev/chain-monitor/internal/rpc"
)

type chainMonitor struct {
	client rpc.IRPCClient
	cache  *monitor.BlockCache
	engine *monitor.Engine
}

func newChainMonitor(ctx context.Context) (*chainMonitor, error) {
	startMetricsServer()

	client, err := rpc.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RPC: %w", err)
	}
	log.Info().Str("chain_id", chainIDString(client.GetChainID())).Bool("trace_filter", client.SupportsTraceFilter()).Msg("Connected to RPC")
	blocksPerRequest := client.GetBlocksPerRequest()
	log.Debug().Int("logs", blocksPerRequest.Logs).Int("traces", blocksPerRequest.Traces).Msg("Blocks per request")

	cache := monitor.NewBlockCache(client,
		monitor.WithMaxSearchIterations(config.Cfg.Monitor.MaxSearchIterations),
		monitor.WithReferenceSpan(config.Cfg.Monitor.ReferenceSpan),
		monitor.WithFetchTimeout(time.Duration(config.Cfg.Monitor.FetchTimeoutMs)*time.Millisecond),
		monitor.WithCacheLogger(customLogger.Component("block_cache")),
	)
	engine := monitor.NewEngine(client, cache,
		monitor.WithEngineLogger(customLogger.Component("engine")),
		monitor.WithListener(monitor.LoggingListener(customLogger.Component("scan"))),
	)
	return &chainMonitor{client: client, cache: cache, engine: engine}, nil
}

func (m *chainMonitor) Close() {
	m.client.Close()
}

func startMetricsServer() {
	if !config.Cfg.Metrics.Enabled {
		return
	}
	addr := config.Cfg.Metrics.Addr
	if addr == "" {
		addr = ":2112"
	}
	log.Info().Msgf("Starting Metrics Server on %s", addr)
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error().Err(err).Msg("Metrics server error")
		}
	}()
}

func chainIDString(chainID *big.Int) string {
	if chainID == nil {
		return ""
	}
	return chainID.String()
}

func parseBlockNumber(arg string) (uint64, error) {
	number, err := strconv.ParseUint(arg, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q: %w", arg, err)
	}
	return number, nil
}

func parseTime(arg string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339: %w", arg, err)
	}
	return t.UTC(), nil
}

func parseAddress(arg string) (gethCommon.Address, error) {
	if !gethCommon.IsHexAddress(arg) {
		return gethCommon.Address{}, fmt.Errorf("invalid contract address %q", arg)
	}
	return gethCommon.HexToAddress(arg), nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printDecodeErrors(decodeErrors []*monitor.DecodeError) {
	for _, decodeErr := range decodeErrors {
		log.Warn().Err(decodeErr.Cause).Str("entry", decodeErr.EntryID).Uint64("block", decodeErr.BlockNumber).Msgf("Skipped %s", decodeErr.Signature)
	}
}
