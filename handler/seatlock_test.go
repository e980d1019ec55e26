package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPayload(t *testing.T, ev SeatLockEvent) string {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return string(b)
}

func TestSeatHubLockRecordsHoldAndPublishes(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	hub := NewSeatHub(rdb)

	ev := SeatLockEvent{
		Event:      EventSeatLocked,
		ShowId:     7,
		SeatNumber: "C7",
		UserId:     42,
		Origin:     "origin-1",
	}
	mock.ExpectPublish("show:7:locks", mustPayload(t, ev)).SetVal(1)

	hub.Lock(7, "C7", 42, "origin-1")

	hub.mu.Lock()
	hold, ok := hub.holds[7]["C7"]
	hub.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, uint(42), hold.UserId)
	assert.Equal(t, "origin-1", hold.Origin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHubUnlockClearsHold(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	hub := NewSeatHub(rdb)

	lockEv := SeatLockEvent{Event: EventSeatLocked, ShowId: 7, SeatNumber: "C7", UserId: 42, Origin: "origin-1"}
	unlockEv := SeatLockEvent{Event: EventSeatUnlocked, ShowId: 7, SeatNumber: "C7", UserId: 42, Origin: "origin-1"}
	mock.ExpectPublish("show:7:locks", mustPayload(t, lockEv)).SetVal(1)
	mock.ExpectPublish("show:7:locks", mustPayload(t, unlockEv)).SetVal(1)

	hub.Lock(7, "C7", 42, "origin-1")
	hub.Unlock(7, "C7", 42, "origin-1")

	hub.mu.Lock()
	_, ok := hub.holds[7]["C7"]
	hub.mu.Unlock()
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHubStaleHolds(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	hub := NewSeatHub(rdb)

	now := time.Now()
	hub.holds[7] = map[string]seatHold{
		"A1": {UserId: 1, Origin: "a", Since: now.Add(-AdvisoryHoldTTL - time.Minute)},
		"A2": {UserId: 2, Origin: "b", Since: now.Add(-time.Second)},
	}

	stale := hub.staleHolds(now)
	require.Len(t, stale, 1)
	assert.Equal(t, EventSeatUnlocked, stale[0].Event)
	assert.Equal(t, "A1", stale[0].SeatNumber)
	assert.Equal(t, uint(1), stale[0].UserId)
}

func TestSeatHubReleaseConnUnlocksOwnHolds(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	hub := NewSeatHub(rdb)

	hub.holds[7] = map[string]seatHold{
		"A1": {UserId: 1, Origin: "mine", Since: time.Now()},
		"A2": {UserId: 2, Origin: "theirs", Since: time.Now()},
	}

	want := SeatLockEvent{Event: EventSeatUnlocked, ShowId: 7, SeatNumber: "A1", UserId: 1}
	mock.ExpectPublish("show:7:locks", mustPayload(t, want)).SetVal(1)

	hub.releaseConn(7, nil, "mine")

	hub.mu.Lock()
	_, mineLeft := hub.holds[7]["A1"]
	_, theirsLeft := hub.holds[7]["A2"]
	hub.mu.Unlock()
	assert.False(t, mineLeft)
	assert.True(t, theirsLeft)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatHubStopBeforeRun(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	hub := NewSeatHub(rdb)

	// No subscription exists yet; Stop must be a no-op, and calling it
	// again must stay safe.
	assert.NotPanics(t, hub.Stop)
	assert.NotPanics(t, hub.Stop)
}

func TestSeatHubNotifyBookedDropsHold(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	hub := NewSeatHub(rdb)

	hub.holds[7] = map[string]seatHold{
		"A1": {UserId: 1, Origin: "a", Since: time.Now()},
	}

	want := SeatLockEvent{Event: EventSeatBooked, ShowId: 7, SeatNumber: "A1"}
	mock.ExpectPublish("show:7:locks", mustPayload(t, want)).SetVal(1)

	hub.NotifyBooked(7, []string{"A1"})

	hub.mu.Lock()
	_, ok := hub.holds[7]
	hub.mu.Unlock()
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
