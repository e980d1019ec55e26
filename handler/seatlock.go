package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Advisory lock events. The lock/unlock pair is what clients send; the
// rest is what the hub broadcasts to a show's room. None of it is
// authoritative: booking correctness rests entirely on the commit path.
const (
	EventLockSeat     = "lock_seat"
	EventUnlockSeat   = "unlock_seat"
	EventSeatLocked   = "seat_locked"
	EventSeatUnlocked = "seat_unlocked"
	EventSeatBooked   = "seat_booked"
	EventSeatReleased = "seat_released"
)

// AdvisoryHoldTTL bounds how long a hold survives without an explicit
// unlock, so a vanished client can't block a seat in everyone's view.
const AdvisoryHoldTTL = 5 * time.Minute

type SeatLockEvent struct {
	Event      string `json:"event"`
	ShowId     uint   `json:"showId"`
	SeatNumber string `json:"seatNumber"`
	UserId     uint   `json:"userId,omitempty"`
	Origin     string `json:"origin,omitempty"`
}

type seatHold struct {
	UserId uint
	Origin string
	Since  time.Time
}

// SeatHub is the process-scoped advisory lock broadcaster: one websocket
// room per show, fanned out across server processes through a Redis channel
// per show. Holds are kept only for the TTL sweep and disconnect cleanup;
// each client maintains its own derived view.
type SeatHub struct {
	rdb    *redis.Client
	mu     sync.Mutex
	rooms  map[uint]map[*websocket.Conn]string // conn -> origin id
	holds  map[uint]map[string]seatHold
	pubsub *redis.PubSub
}

func NewSeatHub(rdb *redis.Client) *SeatHub {
	return &SeatHub{
		rdb:   rdb,
		rooms: make(map[uint]map[*websocket.Conn]string),
		holds: make(map[uint]map[string]seatHold),
	}
}

func lockChannel(showId uint) string {
	return fmt.Sprintf("show:%d:locks", showId)
}

// Stop closes the hub's Redis subscription, which ends the Run loop. Safe
// to call before Run has started.
func (h *SeatHub) Stop() {
	h.mu.Lock()
	pubsub := h.pubsub
	h.pubsub = nil
	h.mu.Unlock()

	if pubsub != nil {
		pubsub.Close()
	}
}

// Run subscribes to every show's lock channel and fans messages out to the
// local room. It blocks until Stop closes the subscription.
func (h *SeatHub) Run() {
	pubsub := h.rdb.PSubscribe(context.Background(), "show:*:locks")
	h.mu.Lock()
	h.pubsub = pubsub
	h.mu.Unlock()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var ev SeatLockEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("seat hub: bad payload on %s: %v", msg.Channel, err)
			continue
		}
		h.apply(ev, time.Now())
		h.broadcast(ev)
	}
}

// apply updates the hold table from a lock event. Idempotent: every process
// applies its own published events when they come back from Redis.
func (h *SeatHub) apply(ev SeatLockEvent, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Event {
	case EventSeatLocked:
		if h.holds[ev.ShowId] == nil {
			h.holds[ev.ShowId] = make(map[string]seatHold)
		}
		h.holds[ev.ShowId][ev.SeatNumber] = seatHold{
			UserId: ev.UserId,
			Origin: ev.Origin,
			Since:  now,
		}
	case EventSeatUnlocked, EventSeatBooked, EventSeatReleased:
		if room := h.holds[ev.ShowId]; room != nil {
			delete(room, ev.SeatNumber)
			if len(room) == 0 {
				delete(h.holds, ev.ShowId)
			}
		}
	}
}

// broadcast writes an event to every connection in the show's room except
// the one that originated it. Delivery is best effort; dead connections are
// dropped.
func (h *SeatHub) broadcast(ev SeatLockEvent) {
	h.mu.Lock()
	conns := make(map[*websocket.Conn]string, len(h.rooms[ev.ShowId]))
	for conn, origin := range h.rooms[ev.ShowId] {
		conns[conn] = origin
	}
	h.mu.Unlock()

	out := ev
	out.Origin = ""
	for conn, origin := range conns {
		if ev.Origin != "" && origin == ev.Origin {
			continue
		}
		if err := conn.WriteJSON(out); err != nil {
			conn.Close()
			h.mu.Lock()
			delete(h.rooms[ev.ShowId], conn)
			h.mu.Unlock()
		}
	}
}

func (h *SeatHub) publish(ev SeatLockEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), lockChannel(ev.ShowId), string(payload)).Err(); err != nil {
		log.Printf("seat hub: publish failed: %v", err)
	}
}

// Lock broadcasts an advisory hold on a seat. It grants no right to
// purchase.
func (h *SeatHub) Lock(showId uint, seatNumber string, userId uint, origin string) {
	ev := SeatLockEvent{
		Event:      EventSeatLocked,
		ShowId:     showId,
		SeatNumber: seatNumber,
		UserId:     userId,
		Origin:     origin,
	}
	h.apply(ev, time.Now())
	h.publish(ev)
}

// Unlock broadcasts release of an advisory hold.
func (h *SeatHub) Unlock(showId uint, seatNumber string, userId uint, origin string) {
	ev := SeatLockEvent{
		Event:      EventSeatUnlocked,
		ShowId:     showId,
		SeatNumber: seatNumber,
		UserId:     userId,
		Origin:     origin,
	}
	h.apply(ev, time.Now())
	h.publish(ev)
}

// NotifyBooked tells a show's room that seats were authoritatively booked,
// so clients drop any stale advisory view of them.
func (h *SeatHub) NotifyBooked(showId uint, seatNumbers []string) {
	for _, sn := range seatNumbers {
		ev := SeatLockEvent{Event: EventSeatBooked, ShowId: showId, SeatNumber: sn}
		h.apply(ev, time.Now())
		h.publish(ev)
	}
}

// NotifyReleased tells a show's room that booked seats became free again
// after a cancellation.
func (h *SeatHub) NotifyReleased(showId uint, seatNumbers []string) {
	for _, sn := range seatNumbers {
		ev := SeatLockEvent{Event: EventSeatReleased, ShowId: showId, SeatNumber: sn}
		h.apply(ev, time.Now())
		h.publish(ev)
	}
}

// staleHolds returns an unlock event for every hold older than the TTL.
func (h *SeatHub) staleHolds(now time.Time) []SeatLockEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	var stale []SeatLockEvent
	for showId, room := range h.holds {
		for seatNumber, hold := range room {
			if now.Sub(hold.Since) >= AdvisoryHoldTTL {
				stale = append(stale, SeatLockEvent{
					Event:      EventSeatUnlocked,
					ShowId:     showId,
					SeatNumber: seatNumber,
					UserId:     hold.UserId,
				})
			}
		}
	}
	return stale
}

// SweepStaleHolds releases advisory holds whose TTL has expired.
func (h *SeatHub) SweepStaleHolds() {
	stale := h.staleHolds(time.Now())
	for _, ev := range stale {
		h.apply(ev, time.Now())
		h.publish(ev)
	}
	if len(stale) > 0 {
		log.Printf("seat hub: released %d stale advisory holds", len(stale))
	}
}

// releaseConn drops a connection from its room and unlocks every hold that
// connection originated, so a closed tab doesn't leave ghost holds.
func (h *SeatHub) releaseConn(showId uint, conn *websocket.Conn, origin string) {
	h.mu.Lock()
	if h.rooms[showId] != nil {
		delete(h.rooms[showId], conn)
		if len(h.rooms[showId]) == 0 {
			delete(h.rooms, showId)
		}
	}
	var held []SeatLockEvent
	for seatNumber, hold := range h.holds[showId] {
		if hold.Origin == origin {
			held = append(held, SeatLockEvent{
				Event:      EventSeatUnlocked,
				ShowId:     showId,
				SeatNumber: seatNumber,
				UserId:     hold.UserId,
			})
		}
	}
	h.mu.Unlock()

	for _, ev := range held {
		h.apply(ev, time.Now())
		h.publish(ev)
	}
}

// HandleConn serves one shopper's websocket connection. Joining the show's
// room is implied by the URL; after that the client may send lock_seat and
// unlock_seat messages.
func (h *SeatHub) HandleConn(c *websocket.Conn) {
	showIdStr := c.Params("showId")
	id64, err := strconv.ParseUint(showIdStr, 10, 64)
	if err != nil {
		log.Printf("seat hub: invalid showId: %s", showIdStr)
		c.Close()
		return
	}
	showId := uint(id64)
	origin := uuid.New().String()

	h.mu.Lock()
	if h.rooms[showId] == nil {
		h.rooms[showId] = make(map[*websocket.Conn]string)
	}
	h.rooms[showId][c] = origin
	h.mu.Unlock()

	defer func() {
		h.releaseConn(showId, c, origin)
		c.Close()
	}()

	for {
		var msg SeatLockEvent
		if err := c.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Event {
		case EventLockSeat:
			h.Lock(showId, msg.SeatNumber, msg.UserId, origin)
		case EventUnlockSeat:
			h.Unlock(showId, msg.SeatNumber, msg.UserId, origin)
		}
	}
}

var holdSweeper *cron.Cron

// StartHoldSweeper runs the TTL sweep in the background.
func StartHoldSweeper(hub *SeatHub) {
	holdSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if _, err := holdSweeper.AddFunc("@every 30s", hub.SweepStaleHolds); err != nil {
		log.Printf("hold sweeper init failed: %v", err)
		return
	}

	holdSweeper.Start()
	log.Println("Advisory hold sweeper started (every 30s)")
}

func StopHoldSweeper() {
	if holdSweeper != nil {
		holdSweeper.Stop()
	}
}
