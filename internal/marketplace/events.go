package marketplace

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/monitor"
)

const (
	StorageRequestedSignature = "StorageRequested(bytes32 requestId,uint256 reward,uint64 slots,uint64 expiry)"
	SlotFilledSignature       = "SlotFilled(bytes32 indexed requestId,uint64 slotIndex)"
	SlotFreedSignature        = "SlotFreed(bytes32 indexed requestId,uint64 slotIndex)"
	RequestFulfilledSignature = "RequestFulfilled(bytes32 indexed requestId)"
	RequestCancelledSignature = "RequestCancelled(bytes32 indexed requestId)"
	RequestFailedSignature    = "RequestFailed(bytes32 indexed requestId)"
)

type StorageRequested struct {
	RequestID [32]byte
	Reward    *uint256.Int
	Slots     uint64
	Expiry    uint64
}

type SlotFilled struct {
	RequestID [32]byte
	SlotIndex uint64
}

type SlotFreed struct {
	RequestID [32]byte
	SlotIndex uint64
}

// RequestFinished is shared by the fulfilled, cancelled and failed events which only carry the request id.
type RequestFinished struct {
	RequestID [32]byte
}

// EventSet holds one collector per marketplace event.
type EventSet struct {
	StorageRequested *monitor.TypedEventCollector[StorageRequested]
	SlotFilled       *monitor.TypedEventCollector[SlotFilled]
	SlotFreed        *monitor.TypedEventCollector[SlotFreed]
	RequestFulfilled *monitor.TypedEventCollector[RequestFinished]
	RequestCancelled *monitor.TypedEventCollector[RequestFinished]
	RequestFailed    *monitor.TypedEventCollector[RequestFinished]
}

func NewEventSet() (*EventSet, error) {
	var err error
	set := &EventSet{}
	if set.StorageRequested, err = monitor.NewEventCollector(StorageRequestedSignature, decodeStorageRequested); err != nil {
		return nil, err
	}
	if set.SlotFilled, err = monitor.NewEventCollector(SlotFilledSignature, decodeSlotFilled); err != nil {
		return nil, err
	}
	if set.SlotFreed, err = monitor.NewEventCollector(SlotFreedSignature, decodeSlotFreed); err != nil {
		return nil, err
	}
	if set.RequestFulfilled, err = monitor.NewEventCollector(RequestFulfilledSignature, decodeRequestFinished); err != nil {
		return nil, err
	}
	if set.RequestCancelled, err = monitor.NewEventCollector(RequestCancelledSignature, decodeRequestFinished); err != nil {
		return nil, err
	}
	if set.RequestFailed, err = monitor.NewEventCollector(RequestFailedSignature, decodeRequestFinished); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *EventSet) All() []monitor.EventCollector {
	return []monitor.EventCollector{
		s.StorageRequested,
		s.SlotFilled,
		s.SlotFreed,
		s.RequestFulfilled,
		s.RequestCancelled,
		s.RequestFailed,
	}
}

func decodeStorageRequested(decoded *common.DecodedLog) (StorageRequested, error) {
	requestID, err := param[[32]byte](decoded.Param, "requestId")
	if err != nil {
		return StorageRequested{}, err
	}
	reward, err := amountParam(decoded.Param, "reward")
	if err != nil {
		return StorageRequested{}, err
	}
	slots, err := param[uint64](decoded.Param, "slots")
	if err != nil {
		return StorageRequested{}, err
	}
	expiry, err := param[uint64](decoded.Param, "expiry")
	if err != nil {
		return StorageRequested{}, err
	}
	return StorageRequested{RequestID: requestID, Reward: reward, Slots: slots, Expiry: expiry}, nil
}

func decodeSlotFilled(decoded *common.DecodedLog) (SlotFilled, error) {
	requestID, err := param[[32]byte](decoded.Param, "requestId")
	if err != nil {
		return SlotFilled{}, err
	}
	slotIndex, err := param[uint64](decoded.Param, "slotIndex")
	if err != nil {
		return SlotFilled{}, err
	}
	return SlotFilled{RequestID: requestID, SlotIndex: slotIndex}, nil
}

func decodeSlotFreed(decoded *common.DecodedLog) (SlotFreed, error) {
	filled, err := decodeSlotFilled(decoded)
	if err != nil {
		return SlotFreed{}, err
	}
	return SlotFreed(filled), nil
}

func decodeRequestFinished(decoded *common.DecodedLog) (RequestFinished, error) {
	requestID, err := param[[32]byte](decoded.Param, "requestId")
	if err != nil {
		return RequestFinished{}, err
	}
	return RequestFinished{RequestID: requestID}, nil
}

type lookup func(name string) (interface{}, bool)

func param[T any](get lookup, name string) (T, error) {
	var zero T
	raw, ok := get(name)
	if !ok {
		return zero, fmt.Errorf("missing argument %q", name)
	}
	value, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("argument %q has type %T, expected %T", name, raw, zero)
	}
	return value, nil
}

func amountParam(get lookup, name string) (*uint256.Int, error) {
	raw, err := param[*big.Int](get, name)
	if err != nil {
		return nil, err
	}
	if raw.Sign() < 0 {
		return nil, fmt.Errorf("argument %q is negative: %s", name, raw)
	}
	amount, overflow := uint256.FromBig(raw)
	if overflow {
		return nil, fmt.Errorf("argument %q does not fit 256 bits: %s", name, raw)
	}
	return amount, nil
}
