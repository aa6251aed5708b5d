package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

type Trace struct {
	BlockNumber      uint64   `json:"block_number"`
	BlockHash        string   `json:"block_hash"`
	TransactionHash  string   `json:"transaction_hash"`
	TransactionIndex uint64   `json:"transaction_index"`
	CallType         string   `json:"call_type"`
	Error            string   `json:"error"`
	FromAddress      string   `json:"from_address"`
	ToAddress        string   `json:"to_address"`
	Gas              *big.Int `json:"gas"`
	GasUsed          *big.Int `json:"gas_used"`
	Input            string   `json:"input"`
	Output           string   `json:"output"`
	Subtraces        uint64   `json:"subtraces"`
	TraceAddress     []uint64 `json:"trace_address"`
	TraceType        string   `json:"trace_type"`
	Value            *big.Int `json:"value"`
}

type DecodedCallData struct {
	Name      string                 `json:"name"`
	Signature string                 `json:"signature"`
	Inputs    map[string]interface{} `json:"inputs"`
}

type DecodedTrace struct {
	Trace
	Decoded DecodedCallData `json:"decoded"`
}

func (t *Trace) ID() string {
	return fmt.Sprintf("%s%v", t.TransactionHash, t.TraceAddress)
}

/**
 * Returns the function selector (first 4 bytes) of the call input, false when the input is too short.
 */
func (t *Trace) Selector() ([4]byte, bool) {
	var selector [4]byte
	input := strings.TrimPrefix(t.Input, "0x")
	if len(input) < 8 {
		return selector, false
	}
	decoded, err := hex.DecodeString(input[:8])
	if err != nil {
		return selector, false
	}
	copy(selector[:], decoded)
	return selector, true
}

func (t *Trace) Decode(functionABI *abi.Method) (*DecodedTrace, error) {
	decodedData, err := hex.DecodeString(strings.TrimPrefix(t.Input, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode call input: %w", err)
	}

	if len(decodedData) < 4 {
		return nil, fmt.Errorf("input too short to contain function selector")
	}
	inputData := decodedData[4:]
	decodedInputs := make(map[string]interface{})
	if err := functionABI.Inputs.UnpackIntoMap(decodedInputs, inputData); err != nil {
		return nil, fmt.Errorf("failed to decode function parameters for %s: %w", functionABI.Sig, err)
	}
	return &DecodedTrace{
		Trace: *t,
		Decoded: DecodedCallData{
			Name:      functionABI.RawName,
			Signature: functionABI.Sig,
			Inputs:    decodedInputs,
		},
	}, nil
}
