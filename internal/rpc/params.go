package rpc

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
)

func GetLogsParams(address gethCommon.Address) func(common.BlockRange) []interface{} {
	return func(blockRange common.BlockRange) []interface{} {
		return []interface{}{map[string]interface{}{
			"address":   address.Hex(),
			"fromBlock": hexutil.EncodeUint64(blockRange.From),
			"toBlock":   hexutil.EncodeUint64(blockRange.To),
		}}
	}
}

func TraceFilterParams(address gethCommon.Address) func(common.BlockRange) []interface{} {
	return func(blockRange common.BlockRange) []interface{} {
		return []interface{}{map[string]interface{}{
			"fromBlock": hexutil.EncodeUint64(blockRange.From),
			"toBlock":   hexutil.EncodeUint64(blockRange.To),
			"toAddress": []string{address.Hex()},
		}}
	}
}
