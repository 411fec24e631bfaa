// Package channel emulates the lifecycle and delivery semantics of an
// asynchronous bidirectional connection without any real network. Sends are
// echoed back after a randomized latency, and while connected the channel
// independently emits synthetic participant traffic.
package channel

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"waste-tender-bidding/internal/simclock"
	"waste-tender-bidding/internal/synthbidder"
	"waste-tender-bidding/internal/tendererrors"
	"waste-tender-bidding/utils"
)

// State is the connection lifecycle state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// EventKind names the subscriber-visible events.
type EventKind string

const (
	EventOpen    EventKind = "open"
	EventClose   EventKind = "close"
	EventMessage EventKind = "message"
	EventPing    EventKind = "ping"
)

// Handler receives an event's payload. Only message events carry data.
type Handler func(data []byte)

// SubscriberID identifies a registered handler for unsubscription.
type SubscriberID int

// Config tunes the simulated timing. Zero values fall back to the defaults
// the demo uses.
type Config struct {
	HandshakeDelay    time.Duration // connecting -> connected
	HeartbeatInterval time.Duration // ping cadence while connected
	EchoDelayMin      time.Duration // send round-trip latency, lower bound
	EchoDelayMax      time.Duration // send round-trip latency, upper bound
	TrafficInitial    time.Duration // delay before the first autonomous event
	TrafficMin        time.Duration // autonomous traffic gap, lower bound
	TrafficMax        time.Duration // autonomous traffic gap, upper bound
}

// DefaultConfig mirrors the original demo timings.
func DefaultConfig() Config {
	return Config{
		HandshakeDelay:    time.Second,
		HeartbeatInterval: 30 * time.Second,
		EchoDelayMin:      100 * time.Millisecond,
		EchoDelayMax:      600 * time.Millisecond,
		TrafficInitial:    2 * time.Second,
		TrafficMin:        5 * time.Second,
		TrafficMax:        15 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HandshakeDelay <= 0 {
		c.HandshakeDelay = d.HandshakeDelay
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.EchoDelayMin <= 0 {
		c.EchoDelayMin = d.EchoDelayMin
	}
	if c.EchoDelayMax <= c.EchoDelayMin {
		c.EchoDelayMax = c.EchoDelayMin + d.EchoDelayMax - d.EchoDelayMin
	}
	if c.TrafficInitial <= 0 {
		c.TrafficInitial = d.TrafficInitial
	}
	if c.TrafficMin <= 0 {
		c.TrafficMin = d.TrafficMin
	}
	if c.TrafficMax <= c.TrafficMin {
		c.TrafficMax = c.TrafficMin + d.TrafficMax - d.TrafficMin
	}
	return c
}

// EventPayload is the JSON shape exchanged over the channel.
type EventPayload struct {
	Type      string    `json:"type"`
	Bidder    string    `json:"bidder,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	User      string    `json:"user,omitempty"`
	Activity  string    `json:"activity,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	TenderID  int       `json:"tenderId,omitempty"`
}

// ParsePayload decodes the JSON body of a message event.
func ParsePayload(data []byte) (EventPayload, error) {
	var p EventPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return EventPayload{}, fmt.Errorf("channel: parse payload: %w", err)
	}
	return p, nil
}

// Payload type discriminators.
const (
	TypeBidPlaced    = "bid_placed"
	TypeUserActivity = "user_activity"
	TypeChatMessage  = "chat_message"
)

var activities = []string{
	"joined the bidding room",
	"is viewing the tender",
	"is preparing a bid",
	"is analyzing the competition",
	"is reviewing tender details",
}

var chatMessages = []string{
	"Good luck everyone!",
	"This is a competitive tender",
	"Let the best recycler win",
	"Great opportunity for waste management",
	"Excited to participate",
	"May the best bid win!",
	"Clean India mission!",
	"Sustainable future ahead",
}

type subscription struct {
	id SubscriberID
	fn Handler
}

// SimChannel is the simulated transport. All timers route through the
// injected clock; Disconnect cancels every pending emission so nothing fires
// into a torn-down consumer.
type SimChannel struct {
	mu    sync.Mutex
	cfg   Config
	clock simclock.Clock
	rng   *rand.Rand

	state   State
	epoch   int
	nextSub SubscriberID
	subs    map[EventKind][]subscription

	nextTimer int
	timers    map[int]simclock.Timer

	currentTenderID int
}

// New creates a disconnected channel.
func New(cfg Config, clock simclock.Clock, rng *rand.Rand) *SimChannel {
	return &SimChannel{
		cfg:    cfg.withDefaults(),
		clock:  clock,
		rng:    rng,
		state:  StateDisconnected,
		subs:   make(map[EventKind][]subscription),
		timers: make(map[int]simclock.Timer),
	}
}

// State returns the current connection state.
func (c *SimChannel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetCurrentTender points autonomous bid traffic at a tender.
func (c *SimChannel) SetCurrentTender(tenderID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTenderID = tenderID
}

// Connect moves disconnected -> connecting immediately and, after the
// simulated handshake delay, connecting -> connected with an open event,
// a running heartbeat, and autonomous traffic. Connecting an already
// connecting or connected channel is a no-op.
func (c *SimChannel) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDisconnected {
		return
	}
	c.state = StateConnecting
	utils.Info("channel: connecting", nil)

	c.scheduleLocked(c.cfg.HandshakeDelay, c.completeHandshake)
}

func (c *SimChannel) completeHandshake() {
	c.mu.Lock()
	if c.state != StateConnecting {
		c.mu.Unlock()
		return
	}
	c.state = StateConnected
	c.scheduleLocked(c.cfg.HeartbeatInterval, c.heartbeat)
	c.scheduleLocked(c.cfg.TrafficInitial, c.emitTraffic)
	c.mu.Unlock()

	utils.Info("channel: connected", nil)
	c.dispatch(EventOpen, nil)
}

// Disconnect moves any state to disconnected, fires a close event, and
// cancels the heartbeat, pending send echoes, and autonomous traffic.
func (c *SimChannel) Disconnect() {
	c.mu.Lock()
	c.state = StateDisconnected
	c.epoch++
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	utils.Info("channel: disconnected", nil)
	c.dispatch(EventClose, nil)
}

// Send schedules the payload to be echoed back to message subscribers after
// a randomized round-trip latency. It fails while not connected; the failure
// is a reportable precondition, not a panic.
func (c *SimChannel) Send(payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("channel: marshal payload: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected {
		return fmt.Errorf("channel: send: %w", tendererrors.ErrChannelNotConnected)
	}

	delay := c.randomBetweenLocked(c.cfg.EchoDelayMin, c.cfg.EchoDelayMax)
	c.scheduleLocked(delay, func() {
		c.dispatch(EventMessage, data)
	})
	return nil
}

// Subscribe registers a handler for an event kind. Handlers for the same
// kind are delivered in subscription order.
func (c *SimChannel) Subscribe(kind EventKind, fn Handler) SubscriberID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	c.subs[kind] = append(c.subs[kind], subscription{id: c.nextSub, fn: fn})
	return c.nextSub
}

// Unsubscribe removes a handler; an unknown id is a no-op.
func (c *SimChannel) Unsubscribe(kind EventKind, id SubscriberID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := c.subs[kind]
	for i, s := range subs {
		if s.id == id {
			c.subs[kind] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// heartbeat emits ping and reschedules itself while connected.
func (c *SimChannel) heartbeat() {
	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return
	}
	c.scheduleLocked(c.cfg.HeartbeatInterval, c.heartbeat)
	c.mu.Unlock()

	c.dispatch(EventPing, nil)
}

// emitTraffic produces one weighted synthetic participant event and schedules
// the next: 40% bid, 30% activity, 30% chat.
func (c *SimChannel) emitTraffic() {
	c.mu.Lock()
	if c.state != StateConnected {
		c.mu.Unlock()
		return
	}
	now := c.clock.Now()
	roll := c.rng.Float64()
	tenderID := c.currentTenderID

	var payload EventPayload
	switch {
	case roll < 0.4:
		payload = EventPayload{
			Type:      TypeBidPlaced,
			Bidder:    synthbidder.Roster[c.rng.Intn(len(synthbidder.Roster))],
			Amount:    float64(c.rng.Intn(50000) + 50000),
			Timestamp: now,
			TenderID:  tenderID,
		}
	case roll < 0.7:
		payload = EventPayload{
			Type:      TypeUserActivity,
			User:      synthbidder.Roster[c.rng.Intn(5)],
			Activity:  activities[c.rng.Intn(len(activities))],
			Timestamp: now,
		}
	default:
		payload = EventPayload{
			Type:      TypeChatMessage,
			User:      synthbidder.Roster[c.rng.Intn(5)],
			Message:   chatMessages[c.rng.Intn(len(chatMessages))],
			Timestamp: now,
		}
	}

	gap := c.randomBetweenLocked(c.cfg.TrafficMin, c.cfg.TrafficMax)
	c.scheduleLocked(gap, c.emitTraffic)
	c.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		utils.Error("channel: marshal traffic payload", map[string]any{"error": err.Error()})
		return
	}
	c.dispatch(EventMessage, data)
}

// scheduleLocked registers a cancellable delayed callback bound to the
// current connection epoch. Callbacks from a previous epoch never fire, even
// if the underlying timer already went off when Disconnect stopped it.
func (c *SimChannel) scheduleLocked(d time.Duration, fn func()) {
	epoch := c.epoch
	c.nextTimer++
	id := c.nextTimer

	c.timers[id] = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		if c.epoch != epoch {
			c.mu.Unlock()
			return
		}
		delete(c.timers, id)
		c.mu.Unlock()
		fn()
	})
}

// randomBetweenLocked picks a duration in [min, max).
func (c *SimChannel) randomBetweenLocked(min, max time.Duration) time.Duration {
	return min + time.Duration(c.rng.Int63n(int64(max-min)))
}

// dispatch delivers an event to its subscribers in subscription order,
// outside the channel lock.
func (c *SimChannel) dispatch(kind EventKind, data []byte) {
	c.mu.Lock()
	subs := append([]subscription(nil), c.subs[kind]...)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(data)
	}
}
