// Package feed maintains the small, bounded, time-decayed list of recent
// user-visible events. It only consumes engine and channel output; it never
// touches tender state.
package feed

import (
	"sync"
	"time"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/simclock"
)

// DefaultCapacity and DefaultWindow match the demo display: at most five
// notifications, each visible for five seconds.
const (
	DefaultCapacity = 5
	DefaultWindow   = 5 * time.Second
)

// Feed is a bounded prepend-only notification list with per-entry expiry.
type Feed struct {
	mu       sync.Mutex
	clock    simclock.Clock
	capacity int
	window   time.Duration
	items    []model.Notification
	timers   map[string]simclock.Timer
}

// New creates a Feed. Non-positive capacity or window fall back to defaults.
func New(clock simclock.Clock, capacity int, window time.Duration) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Feed{
		clock:    clock,
		capacity: capacity,
		window:   window,
		timers:   make(map[string]simclock.Timer),
	}
}

// Push prepends the notification and truncates to capacity, evicting oldest
// first. The entry auto-expires after the display window unless capacity
// eviction removes it sooner.
func (f *Feed) Push(n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]model.Notification{n}, f.items...)
	for len(f.items) > f.capacity {
		evicted := f.items[len(f.items)-1]
		f.items = f.items[:len(f.items)-1]
		f.cancelTimerLocked(evicted.ID)
	}

	id := n.ID
	f.timers[id] = f.clock.AfterFunc(f.window, func() {
		f.expire(id)
	})
}

// Items returns a copy of the current feed, newest first.
func (f *Feed) Items() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Notification(nil), f.items...)
}

// Len returns the current number of visible notifications.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Clear empties the feed and cancels every pending expiration.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = nil
	for id, t := range f.timers {
		t.Stop()
		delete(f.timers, id)
	}
}

// expire removes a single notification when its display window lapses.
func (f *Feed) expire(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.timers, id)
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

func (f *Feed) cancelTimerLocked(id string) {
	if t, ok := f.timers[id]; ok {
		t.Stop()
		delete(f.timers, id)
	}
}
