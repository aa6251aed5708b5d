package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	gethCommon "github.com/ethereum/go-ethereum/common"
)

type Log struct {
	BlockNumber      uint64   `json:"block_number"`
	BlockHash        string   `json:"block_hash"`
	TransactionHash  string   `json:"transaction_hash"`
	TransactionIndex uint64   `json:"transaction_index"`
	LogIndex         uint64   `json:"log_index"`
	Address          string   `json:"address"`
	Data             string   `json:"data"`
	Topics           []string `json:"topics"`
}

type DecodedLogData struct {
	Name             string                 `json:"name"`
	Signature        string                 `json:"signature"`
	IndexedParams    map[string]interface{} `json:"indexed_params"`
	NonIndexedParams map[string]interface{} `json:"non_indexed_params"`
}

type DecodedLog struct {
	Log
	Decoded DecodedLogData `json:"decoded"`
}

// ID identifies the log within the chain for error reporting.
func (l *Log) ID() string {
	return fmt.Sprintf("%s#%d", l.TransactionHash, l.LogIndex)
}

// Topic0 returns the event topic hash or the zero hash for anonymous logs.
func (l *Log) Topic0() gethCommon.Hash {
	if len(l.Topics) == 0 {
		return gethCommon.Hash{}
	}
	return gethCommon.HexToHash(l.Topics[0])
}

func (l *Log) Decode(eventABI *abi.Event) (*DecodedLog, error) {
	if l.Topic0() != eventABI.ID {
		return nil, fmt.Errorf("log topic %s does not match event %s", l.Topic0().Hex(), eventABI.Sig)
	}

	var indexedArgs abi.Arguments
	for _, arg := range eventABI.Inputs {
		if arg.Indexed {
			indexedArgs = append(indexedArgs, arg)
		}
	}
	if len(l.Topics)-1 != len(indexedArgs) {
		return nil, fmt.Errorf("expected %d indexed topics for %s, got %d", len(indexedArgs), eventABI.Sig, len(l.Topics)-1)
	}

	topics := make([]gethCommon.Hash, 0, len(indexedArgs))
	for _, topic := range l.Topics[1:] {
		topics = append(topics, gethCommon.HexToHash(topic))
	}
	indexedParams := make(map[string]interface{})
	if err := abi.ParseTopicsIntoMap(indexedParams, indexedArgs, topics); err != nil {
		return nil, fmt.Errorf("failed to decode indexed params: %w", err)
	}

	data, err := hex.DecodeString(strings.TrimPrefix(l.Data, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode log data: %w", err)
	}
	nonIndexedParams := make(map[string]interface{})
	if err := eventABI.Inputs.NonIndexed().UnpackIntoMap(nonIndexedParams, data); err != nil {
		return nil, fmt.Errorf("failed to decode non indexed params: %w", err)
	}

	return &DecodedLog{
		Log: *l,
		Decoded: DecodedLogData{
			Name:             eventABI.RawName,
			Signature:        eventABI.Sig,
			IndexedParams:    indexedParams,
			NonIndexedParams: nonIndexedParams,
		},
	}, nil
}

// Param looks a decoded argument up regardless of whether it was indexed.
func (d *DecodedLog) Param(name string) (interface{}, bool) {
	if v, ok := d.Decoded.IndexedParams[name]; ok {
		return v, true
	}
	v, ok := d.Decoded.NonIndexedParams[name]
	return v, ok
}
