package monitor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
)

// CallKind separates read-only contract calls from state changing transactions.
type CallKind int

const (
	CallKindTransaction CallKind = iota
	CallKindView
)

func (k CallKind) String() string {
	switch k {
	case CallKindView:
		return "view"
	case CallKindTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("CallKind(%d)", int(k))
	}
}

func (k CallKind) mutability() string {
	if k == CallKindView {
		return "view"
	}
	return "nonpayable"
}

// EventCollector receives every log whose first topic equals Topic.
// Accept returns an error only when the log cannot be decoded.
type EventCollector interface {
	Signature() string
	Topic() gethCommon.Hash
	Accept(entry common.Log, at common.BlockTimeEntry) error
	Len() int
}

// FunctionCollector receives every traced call to the contract whose input starts with Selector.
type FunctionCollector interface {
	Signature() string
	Selector() [4]byte
	Kind() CallKind
	Accept(entry common.Trace, at common.BlockTimeEntry) error
	Len() int
}

type EventRecord[T any] struct {
	Event           T
	Block           common.BlockTimeEntry
	TransactionHash string
	LogIndex        uint64
	// RequestID and SlotID are copied from bytes32 "requestId" / "slotId" arguments when the event has them.
	RequestID gethCommon.Hash
	SlotID    gethCommon.Hash
}

type CallRecord[T any] struct {
	Call            T
	Block           common.BlockTimeEntry
	TransactionHash string
	From            string
	Failed          bool
}

type TypedEventCollector[T any] struct {
	event   *abi.Event
	decode  func(*common.DecodedLog) (T, error)
	records []EventRecord[T]
}

func NewEventCollector[T any](signature string, decode func(*common.DecodedLog) (T, error)) (*TypedEventCollector[T], error) {
	event, err := common.ConstructEventABI(signature)
	if err != nil {
		return nil, fmt.Errorf("event collector %q: %w", signature, err)
	}
	return &TypedEventCollector[T]{event: event, decode: decode}, nil
}

func (c *TypedEventCollector[T]) Signature() string {
	return c.event.Sig
}

func (c *TypedEventCollector[T]) Topic() gethCommon.Hash {
	return c.event.ID
}

func (c *TypedEventCollector[T]) Accept(entry common.Log, at common.BlockTimeEntry) error {
	decoded, err := entry.Decode(c.event)
	if err != nil {
		return err
	}
	value, err := c.decode(decoded)
	if err != nil {
		return err
	}
	c.records = append(c.records, EventRecord[T]{
		Event:           value,
		Block:           at,
		TransactionHash: entry.TransactionHash,
		LogIndex:        entry.LogIndex,
		RequestID:       bytes32Param(decoded, "requestId"),
		SlotID:          bytes32Param(decoded, "slotId"),
	})
	return nil
}

// Records returns the decoded events in chain order.
func (c *TypedEventCollector[T]) Records() []EventRecord[T] {
	return c.records
}

func (c *TypedEventCollector[T]) Len() int {
	return len(c.records)
}

type TypedFunctionCollector[T any] struct {
	method  *abi.Method
	kind    CallKind
	decode  func(*common.DecodedTrace) (T, error)
	records []CallRecord[T]
}

func NewFunctionCollector[T any](signature string, kind CallKind, decode func(*common.DecodedTrace) (T, error)) (*TypedFunctionCollector[T], error) {
	method, err := common.ConstructFunctionABI(signature, kind.mutability())
	if err != nil {
		return nil, fmt.Errorf("function collector %q: %w", signature, err)
	}
	return &TypedFunctionCollector[T]{method: method, kind: kind, decode: decode}, nil
}

func (c *TypedFunctionCollector[T]) Signature() string {
	return c.method.Sig
}

func (c *TypedFunctionCollector[T]) Selector() [4]byte {
	var selector [4]byte
	copy(selector[:], c.method.ID)
	return selector
}

func (c *TypedFunctionCollector[T]) Kind() CallKind {
	return c.kind
}

func (c *TypedFunctionCollector[T]) Accept(entry common.Trace, at common.BlockTimeEntry) error {
	decoded, err := entry.Decode(c.method)
	if err != nil {
		return err
	}
	value, err := c.decode(decoded)
	if err != nil {
		return err
	}
	c.records = append(c.records, CallRecord[T]{
		Call:            value,
		Block:           at,
		TransactionHash: entry.TransactionHash,
		From:            entry.FromAddress,
		Failed:          entry.Error != "",
	})
	return nil
}

func (c *TypedFunctionCollector[T]) Records() []CallRecord[T] {
	return c.records
}

func (c *TypedFunctionCollector[T]) Len() int {
	return len(c.records)
}

func bytes32Param(decoded *common.DecodedLog, name string) gethCommon.Hash {
	value, ok := decoded.Param(name)
	if !ok {
		return gethCommon.Hash{}
	}
	if b, ok := value.([32]byte); ok {
		return gethCommon.Hash(b)
	}
	return gethCommon.Hash{}
}
