package marketplace

import (
	"sort"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type RequestState string

const (
	RequestStateUnknown   RequestState = "unknown"
	RequestStateNew       RequestState = "new"
	RequestStateFulfilled RequestState = "fulfilled"
	RequestStateCancelled RequestState = "cancelled"
	RequestStateFailed    RequestState = "failed"
)

// RequestActivity is what a scan saw of one storage request. Requests created
// before the scanned window have a nil Reward and zero Slots.
type RequestActivity struct {
	RequestID   gethCommon.Hash
	State       RequestState
	Reward      *uint256.Int
	Slots       uint64
	SlotsFilled int
	SlotsFreed  int
	FirstSeen   time.Time
	LastSeen    time.Time
}

// Summarize folds the collected events into per-request activity ordered by first appearance.
func (s *EventSet) Summarize() []RequestActivity {
	byID := make(map[gethCommon.Hash]*RequestActivity)
	touch := func(id [32]byte, at time.Time) *RequestActivity {
		activity, ok := byID[id]
		if !ok {
			activity = &RequestActivity{RequestID: id, State: RequestStateUnknown, FirstSeen: at, LastSeen: at}
			byID[id] = activity
		}
		if at.Before(activity.FirstSeen) {
			activity.FirstSeen = at
		}
		if at.After(activity.LastSeen) {
			activity.LastSeen = at
		}
		return activity
	}

	for _, r := range s.StorageRequested.Records() {
		activity := touch(r.Event.RequestID, r.Block.Utc)
		activity.Reward = r.Event.Reward
		activity.Slots = r.Event.Slots
		if activity.State == RequestStateUnknown {
			activity.State = RequestStateNew
		}
	}
	for _, r := range s.SlotFilled.Records() {
		touch(r.Event.RequestID, r.Block.Utc).SlotsFilled++
	}
	for _, r := range s.SlotFreed.Records() {
		touch(r.Event.RequestID, r.Block.Utc).SlotsFreed++
	}
	for _, r := range s.RequestFulfilled.Records() {
		touch(r.Event.RequestID, r.Block.Utc).State = RequestStateFulfilled
	}
	for _, r := range s.RequestCancelled.Records() {
		touch(r.Event.RequestID, r.Block.Utc).State = RequestStateCancelled
	}
	for _, r := range s.RequestFailed.Records() {
		touch(r.Event.RequestID, r.Block.Utc).State = RequestStateFailed
	}

	activities := make([]RequestActivity, 0, len(byID))
	for _, activity := range byID {
		activities = append(activities, *activity)
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].FirstSeen.Equal(activities[j].FirstSeen) {
			return activities[i].RequestID.Hex() < activities[j].RequestID.Hex()
		}
		return activities[i].FirstSeen.Before(activities[j].FirstSeen)
	})
	return activities
}
