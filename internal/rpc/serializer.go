package rpc

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/thirdweb-dev/chain-monitor/internal/common"
)

type RawLogs = []map[string]interface{}
type RawTraces = []map[string]interface{}

func serializeLogs(rawLogs RawLogs) ([]common.Log, error) {
	serializedLogs := make([]common.Log, 0, len(rawLogs))
	for _, rawLog := range rawLogs {
		serialized, err := serializeLog(rawLog)
		if err != nil {
			return nil, err
		}
		serializedLogs = append(serializedLogs, serialized)
	}
	return serializedLogs, nil
}

func serializeLog(rawLog map[string]interface{}) (common.Log, error) {
	rawTopics, ok := rawLog["topics"].([]interface{})
	if !ok {
		return common.Log{}, fmt.Errorf("log without topics list: %v", rawLog)
	}
	topics := make([]string, len(rawTopics))
	for i, topic := range rawTopics {
		topics[i] = interfaceToString(topic)
	}
	blockNumber, err := hexToUint64(rawLog["blockNumber"])
	if err != nil {
		return common.Log{}, fmt.Errorf("invalid log block number: %w", err)
	}
	// a missing index only hurts error reporting
	logIndex, _ := hexToUint64(rawLog["logIndex"])
	transactionIndex, _ := hexToUint64(rawLog["transactionIndex"])
	return common.Log{
		BlockNumber:      blockNumber,
		BlockHash:        interfaceToString(rawLog["blockHash"]),
		TransactionHash:  interfaceToString(rawLog["transactionHash"]),
		TransactionIndex: transactionIndex,
		LogIndex:         logIndex,
		Address:          interfaceToString(rawLog["address"]),
		Data:             interfaceToString(rawLog["data"]),
		Topics:           topics,
	}, nil
}

func serializeTraces(traces RawTraces) ([]common.Trace, error) {
	serializedTraces := make([]common.Trace, 0, len(traces))
	for _, trace := range traces {
		serialized, err := serializeTrace(trace)
		if err != nil {
			return nil, err
		}
		serializedTraces = append(serializedTraces, serialized)
	}
	return serializedTraces, nil
}

func serializeTrace(trace map[string]interface{}) (common.Trace, error) {
	action, ok := trace["action"].(map[string]interface{})
	if !ok {
		return common.Trace{}, fmt.Errorf("trace without action: %v", trace)
	}
	result := make(map[string]interface{})
	if resultVal, ok := trace["result"]; ok {
		if resultMap, ok := resultVal.(map[string]interface{}); ok {
			result = resultMap
		}
	}
	blockNumber, ok := trace["blockNumber"].(float64)
	if !ok {
		return common.Trace{}, fmt.Errorf("trace without block number: %v", trace)
	}
	return common.Trace{
		BlockNumber:      uint64(blockNumber),
		BlockHash:        interfaceToString(trace["blockHash"]),
		TransactionHash:  interfaceToString(trace["transactionHash"]),
		TransactionIndex: numberToUint64(trace["transactionPosition"]),
		Subtraces:        numberToUint64(trace["subtraces"]),
		TraceAddress:     serializeTraceAddress(trace["traceAddress"]),
		TraceType:        interfaceToString(trace["type"]),
		CallType:         interfaceToString(action["callType"]),
		Error:            interfaceToString(trace["error"]),
		FromAddress:      interfaceToString(action["from"]),
		ToAddress:        interfaceToString(action["to"]),
		Gas:              hexToBigInt(action["gas"]),
		GasUsed:          hexToBigInt(result["gasUsed"]),
		Input:            interfaceToString(action["input"]),
		Output:           interfaceToString(result["output"]),
		Value:            hexToBigInt(action["value"]),
	}, nil
}

func hexToBigInt(hex interface{}) *big.Int {
	hexString := interfaceToString(hex)
	if len(hexString) < 2 {
		return new(big.Int)
	}
	v, ok := new(big.Int).SetString(hexString[2:], 16)
	if !ok {
		return new(big.Int)
	}
	return v
}

func serializeTraceAddress(traceAddress interface{}) []uint64 {
	if traceAddressSlice, ok := traceAddress.([]interface{}); ok {
		addresses := make([]uint64, 0, len(traceAddressSlice))
		for _, addr := range traceAddressSlice {
			addresses = append(addresses, numberToUint64(addr))
		}
		return addresses
	}
	return []uint64{}
}

func numberToUint64(value interface{}) uint64 {
	if f, ok := value.(float64); ok && f >= 0 {
		return uint64(f)
	}
	return 0
}

func hexToUint64(hex interface{}) (uint64, error) {
	hexString := interfaceToString(hex)
	if len(hexString) < 3 {
		return 0, fmt.Errorf("not a hex quantity: %v", hex)
	}
	return strconv.ParseUint(hexString[2:], 16, 64)
}

func interfaceToString(value interface{}) string {
	if value == nil {
		return ""
	}
	res, ok := value.(string)
	if !ok {
		return ""
	}
	return res
}
