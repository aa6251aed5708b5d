package rpc

import (
	config "github.com/thirdweb-dev/chain-monitor/configs"
)

// TODO: probe the endpoint's eth_getLogs range limit instead of relying on configuration
const (
	DEFAULT_LOGS_PER_REQUEST       = 1000
	DEFAULT_TRACES_PER_REQUEST     = 100
	DEFAULT_BATCH_SIZE             = 50
	DEFAULT_MAX_CONCURRENT_BATCHES = 4
)

func GetBlockPerRequestConfig() BlocksPerRequestConfig {
	logsBlocksPerRequest := config.Cfg.RPC.Logs.BlocksPerRequest
	if logsBlocksPerRequest == 0 {
		logsBlocksPerRequest = DEFAULT_LOGS_PER_REQUEST
	}
	tracesBlocksPerRequest := config.Cfg.RPC.Traces.BlocksPerRequest
	if tracesBlocksPerRequest == 0 {
		tracesBlocksPerRequest = DEFAULT_TRACES_PER_REQUEST
	}
	return BlocksPerRequestConfig{
		Logs:   logsBlocksPerRequest,
		Traces: tracesBlocksPerRequest,
	}
}

func GetBatchSize() int {
	if config.Cfg.RPC.BatchSize > 0 {
		return config.Cfg.RPC.BatchSize
	}
	return DEFAULT_BATCH_SIZE
}
