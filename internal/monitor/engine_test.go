package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/test/mocks"
)

const (
	slotFilledSignature       = "SlotFilled(bytes32 indexed requestId,uint64 slotIndex)"
	requestFulfilledSignature = "RequestFulfilled(bytes32 indexed requestId)"
	fillSlotSignature         = "fillSlot(bytes32 requestId,uint64 slotIndex,bytes proof)"
)

var (
	contractAddress = gethCommon.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	otherAddress    = gethCommon.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	requestA        = gethCommon.HexToHash("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	requestB        = gethCommon.HexToHash("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

type slotFilled struct {
	RequestID [32]byte
	SlotIndex uint64
}

func decodeSlotFilled(decoded *common.DecodedLog) (slotFilled, error) {
	requestID, ok := decoded.Param("requestId")
	if !ok {
		return slotFilled{}, errors.New("missing requestId")
	}
	slotIndex, ok := decoded.Param("slotIndex")
	if !ok {
		return slotFilled{}, errors.New("missing slotIndex")
	}
	return slotFilled{RequestID: requestID.([32]byte), SlotIndex: slotIndex.(uint64)}, nil
}

type fillSlot struct {
	RequestID [32]byte
	SlotIndex uint64
}

func decodeFillSlot(decoded *common.DecodedTrace) (fillSlot, error) {
	return fillSlot{
		RequestID: decoded.Decoded.Inputs["requestId"].([32]byte),
		SlotIndex: decoded.Decoded.Inputs["slotIndex"].(uint64),
	}, nil
}

func slotFilledLog(t *testing.T, block, logIndex uint64, requestID gethCommon.Hash, slot uint64) common.Log {
	t.Helper()
	event, err := common.ConstructEventABI(slotFilledSignature)
	require.NoError(t, err)
	data, err := event.Inputs.NonIndexed().Pack(slot)
	require.NoError(t, err)
	return common.Log{
		BlockNumber:     block,
		TransactionHash: fmt.Sprintf("0x%064x", block*100+logIndex),
		LogIndex:        logIndex,
		Address:         contractAddress.Hex(),
		Topics:          []string{event.ID.Hex(), requestID.Hex()},
		Data:            hexutil.Encode(data),
	}
}

func requestFulfilledLog(t *testing.T, block, logIndex uint64, requestID gethCommon.Hash) common.Log {
	t.Helper()
	event, err := common.ConstructEventABI(requestFulfilledSignature)
	require.NoError(t, err)
	return common.Log{
		BlockNumber:     block,
		TransactionHash: fmt.Sprintf("0x%064x", block*100+logIndex),
		LogIndex:        logIndex,
		Address:         contractAddress.Hex(),
		Topics:          []string{event.ID.Hex(), requestID.Hex()},
		Data:            "0x",
	}
}

func fillSlotTrace(t *testing.T, block uint64, to gethCommon.Address, requestID gethCommon.Hash, slot uint64) common.Trace {
	t.Helper()
	method, err := common.ConstructFunctionABI(fillSlotSignature, "nonpayable")
	require.NoError(t, err)
	args, err := method.Inputs.Pack([32]byte(requestID), slot, []byte{0x01, 0x02})
	require.NoError(t, err)
	return common.Trace{
		BlockNumber:     block,
		TransactionHash: fmt.Sprintf("0x%064x", block),
		FromAddress:     otherAddress.Hex(),
		ToAddress:       to.Hex(),
		Input:           hexutil.Encode(append(append([]byte{}, method.ID...), args...)),
		TraceAddress:    []uint64{},
	}
}

func testInterval(t *testing.T) common.BlockInterval {
	t.Helper()
	interval, err := common.NewBlockInterval(
		common.BlockTimeEntry{Number: 1000, Utc: genesis, Exact: true},
		common.BlockTimeEntry{Number: 1100, Utc: genesis.Add(200 * time.Second), Exact: true},
	)
	require.NoError(t, err)
	return interval
}

func newSlotFilledCollector(t *testing.T) *TypedEventCollector[slotFilled] {
	t.Helper()
	collector, err := NewEventCollector(slotFilledSignature, decodeSlotFilled)
	require.NoError(t, err)
	return collector
}

func TestCollectEventsRoutesOnlyRegisteredSignatures(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	interval := testInterval(t)
	logs := []common.Log{
		slotFilledLog(t, 1000, 0, requestA, 0),
		requestFulfilledLog(t, 1010, 0, requestA),
		slotFilledLog(t, 1050, 3, requestB, 1),
		requestFulfilledLog(t, 1060, 1, requestB),
		slotFilledLog(t, 1020, 1, requestA, 2),
	}
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(1000), uint64(1100)).Return(logs, nil).Once()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	collector := newSlotFilledCollector(t)

	collectors, decodeErrors, err := engine.CollectEvents(context.Background(), contractAddress, interval, collector)
	require.NoError(t, err)
	assert.Empty(t, decodeErrors)
	require.Len(t, collectors, 1)

	records := collector.Records()
	require.Len(t, records, 3)
	assert.Equal(t, []uint64{1000, 1050, 1020}, []uint64{records[0].Block.Number, records[1].Block.Number, records[2].Block.Number})
	assert.Equal(t, slotFilled{RequestID: requestB, SlotIndex: 1}, records[1].Event)
	assert.Equal(t, gethCommon.Hash(requestB), records[1].RequestID)
	assert.Equal(t, uint64(3), records[1].LogIndex)

	assert.True(t, records[0].Block.Exact)
	assert.True(t, records[0].Block.Utc.Equal(genesis))
	assert.False(t, records[1].Block.Exact)
	assert.True(t, records[1].Block.Utc.Equal(genesis.Add(100*time.Second)))
	mockRPC.AssertNotCalled(t, "FetchBlockTimestamp", mock.Anything, mock.Anything)
}

func TestCollectEventsIsolatesDecodeFailures(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	malformed := slotFilledLog(t, 1030, 2, requestA, 9)
	malformed.Data = "0x1234"
	logs := []common.Log{
		slotFilledLog(t, 1001, 0, requestA, 0),
		malformed,
		slotFilledLog(t, 1040, 0, requestA, 1),
		slotFilledLog(t, 1099, 5, requestB, 0),
	}
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(1000), uint64(1100)).Return(logs, nil).Once()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	collector := newSlotFilledCollector(t)

	_, decodeErrors, err := engine.CollectEvents(context.Background(), contractAddress, testInterval(t), collector)
	require.NoError(t, err)
	assert.Equal(t, 3, collector.Len())
	require.Len(t, decodeErrors, 1)
	assert.Equal(t, malformed.ID(), decodeErrors[0].EntryID)
	assert.Equal(t, uint64(1030), decodeErrors[0].BlockNumber)
	assert.Equal(t, "SlotFilled(bytes32,uint64)", decodeErrors[0].Signature)
	assert.Error(t, decodeErrors[0].Cause)
}

func TestCollectEventsFeedsEveryCollectorOfASignature(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(1000), uint64(1100)).
		Return([]common.Log{slotFilledLog(t, 1005, 0, requestA, 4)}, nil).Once()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	first := newSlotFilledCollector(t)
	second := newSlotFilledCollector(t)

	_, _, err := engine.CollectEvents(context.Background(), contractAddress, testInterval(t), first, second)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 1, second.Len())
}

func TestCollectEventsFetchFailureAbortsScan(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	rpcErr := errors.New("query returned more than 10000 results")
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(1000), uint64(1100)).Return(nil, rpcErr).Once()

	var failed error
	engine := NewEngine(mockRPC, NewBlockCache(mockRPC), WithListener(ScanListener{
		ScanFailed: func(info ScanInfo, err error) { failed = err },
	}))
	collector := newSlotFilledCollector(t)

	_, decodeErrors, err := engine.CollectEvents(context.Background(), contractAddress, testInterval(t), collector)
	var queryErr *ChainQueryError
	require.True(t, errors.As(err, &queryErr))
	require.NotNil(t, queryErr.Range)
	assert.Equal(t, common.BlockRange{From: 1000, To: 1100}, *queryErr.Range)
	assert.ErrorIs(t, err, rpcErr)
	assert.Nil(t, decodeErrors)
	assert.Equal(t, 0, collector.Len())
	assert.Equal(t, err, failed)
}

func TestCollectEventsResolvesMissingBoundaries(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	mockRPC.EXPECT().FetchBlockTimestamp(mock.Anything, uint64(500)).Return(genesis, nil).Once()
	mockRPC.EXPECT().FetchBlockTimestamp(mock.Anything, uint64(600)).Return(genesis.Add(1000*time.Second), nil).Once()
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(500), uint64(600)).
		Return([]common.Log{slotFilledLog(t, 525, 0, requestA, 1), slotFilledLog(t, 600, 0, requestA, 2)}, nil).Once()

	cache := NewBlockCache(mockRPC)
	engine := NewEngine(mockRPC, cache)
	collector := newSlotFilledCollector(t)
	interval, err := common.NewBlockNumberInterval(500, 600)
	require.NoError(t, err)

	_, _, err = engine.CollectEvents(context.Background(), contractAddress, interval, collector)
	require.NoError(t, err)

	records := collector.Records()
	require.Len(t, records, 2)
	assert.True(t, records[0].Block.Utc.Equal(genesis.Add(250*time.Second)))
	assert.False(t, records[0].Block.Exact)
	assert.True(t, records[1].Block.Utc.Equal(genesis.Add(1000*time.Second)))
	assert.True(t, records[1].Block.Exact)
	assert.Equal(t, 2, cache.Len())
}

func TestCollectEventsSingleBlockInterval(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	mockRPC.EXPECT().FetchBlockTimestamp(mock.Anything, uint64(777)).Return(genesis, nil).Once()
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(777), uint64(777)).
		Return([]common.Log{slotFilledLog(t, 777, 0, requestA, 1), slotFilledLog(t, 777, 1, requestB, 2)}, nil).Once()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	collector := newSlotFilledCollector(t)
	interval, err := common.NewBlockNumberInterval(777, 777)
	require.NoError(t, err)

	_, decodeErrors, err := engine.CollectEvents(context.Background(), contractAddress, interval, collector)
	require.NoError(t, err)
	assert.Empty(t, decodeErrors)
	require.Equal(t, 2, collector.Len())
	for _, record := range collector.Records() {
		assert.True(t, record.Block.Exact)
		assert.True(t, record.Block.Utc.Equal(genesis))
	}
}

func TestCollectEventsRejectsReversedInterval(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))

	_, _, err := engine.CollectEvents(context.Background(), contractAddress, common.BlockInterval{FromBlock: 10, ToBlock: 5}, newSlotFilledCollector(t))
	var invalid *InvalidIntervalError
	assert.True(t, errors.As(err, &invalid))
}

func TestCollectEventsCancelledContextAbortsBoundaryResolution(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	release := make(chan struct{})
	defer close(release)
	mockRPC.EXPECT().FetchBlockTimestamp(mock.Anything, mock.AnythingOfType("uint64")).RunAndReturn(func(ctx context.Context, number uint64) (time.Time, error) {
		<-release
		return genesis, nil
	}).Maybe()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	interval, err := common.NewBlockNumberInterval(1, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err = engine.CollectEvents(ctx, contractAddress, interval, newSlotFilledCollector(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	mockRPC.AssertNotCalled(t, "FetchLogs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	malformed := slotFilledLog(t, 1002, 0, requestA, 0)
	malformed.Data = "0x"
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(1000), uint64(1100)).
		Return([]common.Log{slotFilledLog(t, 1001, 0, requestA, 0), malformed}, nil).Once()

	var calls []string
	recorder := func(name string) ScanListener {
		return ScanListener{
			ScanStarted:     func(ScanInfo) { calls = append(calls, name+":started") },
			RecordCollected: func(ScanInfo, string, common.BlockTimeEntry) { calls = append(calls, name+":record") },
			DecodeFailed:    func(ScanInfo, *DecodeError) { calls = append(calls, name+":decode_failed") },
			ScanCompleted: func(info ScanInfo, summary ScanSummary) {
				calls = append(calls, fmt.Sprintf("%s:completed:%d/%d/%d", name, summary.Entries, summary.Records, summary.DecodeErrors))
			},
		}
	}

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC), WithoutDefaultListeners(), WithListener(recorder("first")))
	engine.AddListener(recorder("second"))

	_, _, err := engine.CollectEvents(context.Background(), contractAddress, testInterval(t), newSlotFilledCollector(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"first:started", "second:started",
		"first:record", "second:record",
		"first:decode_failed", "second:decode_failed",
		"first:completed:2/1/1", "second:completed:2/1/1",
	}, calls)
}

func TestCollectFunctionCalls(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	unknownSelector := fillSlotTrace(t, 1003, contractAddress, requestA, 0)
	unknownSelector.Input = "0xdeadbeef"
	malformed := fillSlotTrace(t, 1004, contractAddress, requestA, 0)
	malformed.Input = malformed.Input[:12]
	failedCall := fillSlotTrace(t, 1050, contractAddress, requestB, 3)
	failedCall.Error = "execution reverted"

	traces := []common.Trace{
		fillSlotTrace(t, 1001, contractAddress, requestA, 1),
		fillSlotTrace(t, 1002, otherAddress, requestA, 2),
		unknownSelector,
		malformed,
		failedCall,
	}
	mockRPC.EXPECT().FetchTraces(mock.Anything, contractAddress, uint64(1000), uint64(1100)).Return(traces, nil).Once()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	collector, err := NewFunctionCollector(fillSlotSignature, CallKindTransaction, decodeFillSlot)
	require.NoError(t, err)

	_, decodeErrors, err := engine.CollectFunctionCalls(context.Background(), contractAddress, testInterval(t), collector)
	require.NoError(t, err)

	records := collector.Records()
	require.Len(t, records, 2)
	assert.Equal(t, fillSlot{RequestID: requestA, SlotIndex: 1}, records[0].Call)
	assert.False(t, records[0].Failed)
	assert.Equal(t, otherAddress.Hex(), records[0].From)
	assert.Equal(t, fillSlot{RequestID: requestB, SlotIndex: 3}, records[1].Call)
	assert.True(t, records[1].Failed)
	assert.True(t, records[1].Block.Utc.Equal(genesis.Add(100*time.Second)))

	require.Len(t, decodeErrors, 1)
	assert.Equal(t, uint64(1004), decodeErrors[0].BlockNumber)
	assert.Equal(t, "fillSlot(bytes32,uint64,bytes)", decodeErrors[0].Signature)
}

func TestCollectFunctionCallsFetchFailure(t *testing.T) {
	mockRPC := mocks.NewMockIRPCClient(t)
	mockRPC.EXPECT().FetchTraces(mock.Anything, contractAddress, uint64(1000), uint64(1100)).Return(nil, errors.New("trace_filter is not supported")).Once()

	engine := NewEngine(mockRPC, NewBlockCache(mockRPC))
	collector, err := NewFunctionCollector(fillSlotSignature, CallKindTransaction, decodeFillSlot)
	require.NoError(t, err)

	_, _, err = engine.CollectFunctionCalls(context.Background(), contractAddress, testInterval(t), collector)
	var queryErr *ChainQueryError
	assert.True(t, errors.As(err, &queryErr))
}

func TestCollectEventsBetween(t *testing.T) {
	chain := &syntheticChain{head: 10_000}
	mockRPC := mocks.NewMockIRPCClient(t)
	mockRPC.EXPECT().FetchLogs(mock.Anything, contractAddress, uint64(100), uint64(200)).
		Return([]common.Log{slotFilledLog(t, 100, 0, requestA, 0), slotFilledLog(t, 150, 0, requestA, 1)}, nil).Once()

	engine := NewEngine(mockRPC, NewBlockCache(chain))
	collector := newSlotFilledCollector(t)

	window, err := common.NewTimeRange(chain.timestamp(100).Add(-time.Second), chain.timestamp(200).Add(time.Second))
	require.NoError(t, err)
	_, decodeErrors, err := engine.CollectEventsBetween(context.Background(), contractAddress, window, collector)
	require.NoError(t, err)
	assert.Empty(t, decodeErrors)

	records := collector.Records()
	require.Len(t, records, 2)
	assert.True(t, records[0].Block.Exact)
	assert.True(t, records[0].Block.Utc.Equal(chain.timestamp(100)))
	assert.WithinDuration(t, chain.timestamp(150), records[1].Block.Utc, 6*time.Second)
}

func TestCollectEventsBetweenEmptyWindow(t *testing.T) {
	chain := &syntheticChain{head: 10_000}
	mockRPC := mocks.NewMockIRPCClient(t)
	engine := NewEngine(mockRPC, NewBlockCache(chain))
	collector := newSlotFilledCollector(t)

	window, err := common.NewTimeRange(chain.timestamp(100).Add(time.Millisecond), chain.timestamp(100).Add(2*time.Millisecond))
	require.NoError(t, err)
	_, decodeErrors, err := engine.CollectEventsBetween(context.Background(), contractAddress, window, collector)
	require.NoError(t, err)
	assert.Empty(t, decodeErrors)
	assert.Equal(t, 0, collector.Len())
}

func TestCallKind(t *testing.T) {
	view, err := NewFunctionCollector("getRequest(bytes32 requestId)", CallKindView, func(*common.DecodedTrace) (struct{}, error) { return struct{}{}, nil })
	require.NoError(t, err)
	assert.Equal(t, CallKindView, view.Kind())
	assert.Equal(t, "view", view.Kind().String())
	assert.Equal(t, "transaction", CallKindTransaction.String())
}
