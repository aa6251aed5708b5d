package marketplace

import (
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/monitor"
)

const (
	FillSlotSignature           = "fillSlot(bytes32 requestId,uint64 slotIndex,bytes proof)"
	FreeSlotSignature           = "freeSlot(bytes32 slotId)"
	MarkProofAsMissingSignature = "markProofAsMissing(bytes32 slotId,uint64 period)"
	GetRequestSignature         = "getRequest(bytes32 requestId)"
)

type FillSlot struct {
	RequestID [32]byte
	SlotIndex uint64
	Proof     []byte
}

type FreeSlot struct {
	SlotID [32]byte
}

type MarkProofAsMissing struct {
	SlotID [32]byte
	Period uint64
}

type GetRequest struct {
	RequestID [32]byte
}

// CallSet holds one collector per traced marketplace function.
type CallSet struct {
	FillSlot           *monitor.TypedFunctionCollector[FillSlot]
	FreeSlot           *monitor.TypedFunctionCollector[FreeSlot]
	MarkProofAsMissing *monitor.TypedFunctionCollector[MarkProofAsMissing]
	GetRequest         *monitor.TypedFunctionCollector[GetRequest]
}

func NewCallSet() (*CallSet, error) {
	var err error
	set := &CallSet{}
	if set.FillSlot, err = monitor.NewFunctionCollector(FillSlotSignature, monitor.CallKindTransaction, decodeFillSlot); err != nil {
		return nil, err
	}
	if set.FreeSlot, err = monitor.NewFunctionCollector(FreeSlotSignature, monitor.CallKindTransaction, decodeFreeSlot); err != nil {
		return nil, err
	}
	if set.MarkProofAsMissing, err = monitor.NewFunctionCollector(MarkProofAsMissingSignature, monitor.CallKindTransaction, decodeMarkProofAsMissing); err != nil {
		return nil, err
	}
	if set.GetRequest, err = monitor.NewFunctionCollector(GetRequestSignature, monitor.CallKindView, decodeGetRequest); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *CallSet) All() []monitor.FunctionCollector {
	return []monitor.FunctionCollector{s.FillSlot, s.FreeSlot, s.MarkProofAsMissing, s.GetRequest}
}

func inputs(decoded *common.DecodedTrace) lookup {
	return func(name string) (interface{}, bool) {
		v, ok := decoded.Decoded.Inputs[name]
		return v, ok
	}
}

func decodeFillSlot(decoded *common.DecodedTrace) (FillSlot, error) {
	requestID, err := param[[32]byte](inputs(decoded), "requestId")
	if err != nil {
		return FillSlot{}, err
	}
	slotIndex, err := param[uint64](inputs(decoded), "slotIndex")
	if err != nil {
		return FillSlot{}, err
	}
	proof, err := param[[]byte](inputs(decoded), "proof")
	if err != nil {
		return FillSlot{}, err
	}
	return FillSlot{RequestID: requestID, SlotIndex: slotIndex, Proof: proof}, nil
}

func decodeFreeSlot(decoded *common.DecodedTrace) (FreeSlot, error) {
	slotID, err := param[[32]byte](inputs(decoded), "slotId")
	if err != nil {
		return FreeSlot{}, err
	}
	return FreeSlot{SlotID: slotID}, nil
}

func decodeMarkProofAsMissing(decoded *common.DecodedTrace) (MarkProofAsMissing, error) {
	slotID, err := param[[32]byte](inputs(decoded), "slotId")
	if err != nil {
		return MarkProofAsMissing{}, err
	}
	period, err := param[uint64](inputs(decoded), "period")
	if err != nil {
		return MarkProofAsMissing{}, err
	}
	return MarkProofAsMissing{SlotID: slotID, Period: period}, nil
}

func decodeGetRequest(decoded *common.DecodedTrace) (GetRequest, error) {
	requestID, err := param[[32]byte](inputs(decoded), "requestId")
	if err != nil {
		return GetRequest{}, err
	}
	return GetRequest{RequestID: requestID}, nil
}
