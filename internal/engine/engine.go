// Package engine is the single authority for accepting bids and advancing
// tender state. All mutation of the tender snapshot happens here; every other
// component either reads snapshots or dispatches requests through the engine.
package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/simclock"
	"waste-tender-bidding/internal/store"
	"waste-tender-bidding/internal/tendererrors"
	"waste-tender-bidding/utils"
)

// SeedFunc produces the initial tender snapshot when storage holds none.
type SeedFunc func() []model.Tender

// Engine orchestrates bid validation, highest-bid tracking, history append,
// deadline-driven closing, and event emission for the tender list.
type Engine struct {
	mu       sync.Mutex
	store    *store.TenderStore
	clock    simclock.Clock
	tenders  []model.Tender
	degraded bool

	bidSinks    []func(model.BidEvent, int)
	notifySinks []func(model.Notification)
}

// New loads the persisted snapshot, seeding via seed when none exists.
// A failing store is non-fatal: the engine starts from the seed in memory
// and flags itself degraded.
func New(ts *store.TenderStore, clock simclock.Clock, seed SeedFunc) (*Engine, error) {
	e := &Engine{store: ts, clock: clock}

	tenders, found, err := e.store.LoadTenders()
	switch {
	case err != nil:
		utils.Warn("engine: storage unavailable at startup, running in-memory", map[string]any{"error": err.Error()})
		e.degraded = true
		if seed != nil {
			e.tenders = seed()
		}
	case !found:
		if seed == nil {
			return nil, fmt.Errorf("engine: no snapshot and no seed source")
		}
		e.tenders = seed()
		if err := e.store.SaveTenders(e.tenders); err != nil {
			utils.Warn("engine: could not persist seeded snapshot", map[string]any{"error": err.Error()})
			e.degraded = true
		}
	default:
		e.tenders = tenders
	}

	return e, nil
}

// SubscribeBids registers a sink for accepted bid events. The tender id is
// passed alongside the event. Sinks run outside the engine lock, in
// subscription order.
func (e *Engine) SubscribeBids(fn func(model.BidEvent, int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bidSinks = append(e.bidSinks, fn)
}

// SubscribeNotifications registers a sink for user-visible notifications.
func (e *Engine) SubscribeNotifications(fn func(model.Notification)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifySinks = append(e.notifySinks, fn)
}

// SubmitBid validates and applies a bid from the acting local user.
// On rejection the tender is left untouched.
func (e *Engine) SubmitBid(tenderID int, bidder string, amount float64) (model.Tender, error) {
	if bidder == "" {
		return model.Tender{}, fmt.Errorf("engine: %w - missing bidder identity", tendererrors.ErrInvalidBid)
	}
	snapshot, _, err := e.applyBid(tenderID, bidder, amount, e.clock.Now(), model.OriginLocal, false)
	return snapshot, err
}

// IngestExternalBid applies a bid sourced from the event channel (synthetic
// or peer traffic) under the same acceptance rules as SubmitBid. An identical
// (bidder, amount, timestamp) triple already present in the history is
// applied exactly once; the duplicate is a silent no-op. The returned bool
// reports whether the bid mutated the tender.
func (e *Engine) IngestExternalBid(tenderID int, bidder string, amount float64, ts time.Time, origin model.BidOrigin) (model.Tender, bool, error) {
	if bidder == "" {
		return model.Tender{}, false, fmt.Errorf("engine: %w - missing bidder identity", tendererrors.ErrInvalidBid)
	}
	if origin == model.OriginLocal {
		origin = model.OriginPeer
	}
	return e.applyBid(tenderID, bidder, amount, ts, origin, true)
}

// applyBid holds the shared acceptance path. dedup enables the external-bid
// replay check.
func (e *Engine) applyBid(tenderID int, bidder string, amount float64, ts time.Time, origin model.BidOrigin, dedup bool) (model.Tender, bool, error) {
	e.mu.Lock()

	idx := e.indexLocked(tenderID)
	if idx < 0 {
		e.mu.Unlock()
		return model.Tender{}, false, fmt.Errorf("engine: tender %d: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	t := &e.tenders[idx]

	// Replays of an already-applied bid are a silent no-op even once the
	// tender has closed, so the scan runs before the open check.
	if dedup {
		for _, ev := range t.BiddingHistory {
			if ev.Bidder == bidder && ev.Amount == amount && ev.Timestamp.Equal(ts) {
				snapshot := t.Clone()
				e.mu.Unlock()
				return snapshot, false, nil
			}
		}
	}

	now := e.clock.Now()
	if !t.IsOpen(now) {
		e.mu.Unlock()
		return model.Tender{}, false, fmt.Errorf("engine: tender %d: %w", tenderID, tendererrors.ErrAuctionClosed)
	}

	if amount <= t.HighestBid() {
		e.mu.Unlock()
		return model.Tender{}, false, fmt.Errorf("engine: tender %d: %w - current highest bid is %.2f", tenderID, tendererrors.ErrBidTooLow, t.HighestBid())
	}

	event := model.BidEvent{
		EventID:   utils.GenerateID(),
		Bidder:    bidder,
		Amount:    amount,
		Timestamp: ts,
		Origin:    origin,
	}
	t.Bidders[bidder] = model.BidderEntry{Amount: amount, Timestamp: ts}
	t.BiddingHistory = append(t.BiddingHistory, event)
	t.CurrentBid = amount

	e.persistLocked()
	snapshot := t.Clone()
	bidSinks := append(e.bidSinks[:0:0], e.bidSinks...)
	e.mu.Unlock()

	for _, sink := range bidSinks {
		sink(event, tenderID)
	}
	e.emitNotification(bidNotification(event, now))

	utils.Info("engine: bid accepted", map[string]any{
		"tender_id": tenderID,
		"bidder":    bidder,
		"amount":    amount,
		"origin":    string(origin),
	})
	return snapshot, true, nil
}

// CloseTender performs the explicit administrative open-to-closed transition.
// Closing an already-closed tender is a no-op, not an error.
func (e *Engine) CloseTender(tenderID int) (model.Tender, error) {
	e.mu.Lock()

	idx := e.indexLocked(tenderID)
	if idx < 0 {
		e.mu.Unlock()
		return model.Tender{}, fmt.Errorf("engine: tender %d: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	t := &e.tenders[idx]

	if t.Status == model.StatusClosed {
		snapshot := t.Clone()
		e.mu.Unlock()
		return snapshot, nil
	}

	t.Status = model.StatusClosed
	e.persistLocked()
	snapshot := t.Clone()
	e.mu.Unlock()

	utils.Info("engine: tender closed", map[string]any{"tender_id": tenderID})
	return snapshot, nil
}

// GetTender returns a snapshot with the status normalized to its
// deadline-derived value.
func (e *Engine) GetTender(tenderID int) (model.Tender, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(tenderID)
	if idx < 0 {
		return model.Tender{}, fmt.Errorf("engine: tender %d: %w", tenderID, tendererrors.ErrTenderNotFound)
	}
	snapshot := e.tenders[idx].Clone()
	snapshot.Status = snapshot.StatusAt(e.clock.Now())
	return snapshot, nil
}

// ListTenders returns status-normalized snapshots of every tender.
func (e *Engine) ListTenders() []model.Tender {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	out := make([]model.Tender, 0, len(e.tenders))
	for _, t := range e.tenders {
		snapshot := t.Clone()
		snapshot.Status = snapshot.StatusAt(now)
		out = append(out, snapshot)
	}
	return out
}

// Ranking returns the tender's bidders ordered best-first.
func (e *Engine) Ranking(tenderID int) ([]model.RankedBidder, error) {
	t, err := e.GetTender(tenderID)
	if err != nil {
		return nil, err
	}
	return RankBidders(t), nil
}

// TimeRemaining returns the clamped duration until the tender's deadline.
func (e *Engine) TimeRemaining(tenderID int) (time.Duration, error) {
	t, err := e.GetTender(tenderID)
	if err != nil {
		return 0, err
	}
	return t.TimeRemaining(e.clock.Now()), nil
}

// Stats returns the display-only platform counters plus the degraded flag.
// Counter read failures are not fatal; they just report zero.
func (e *Engine) Stats() model.Stats {
	stats := model.Stats{Degraded: e.Degraded()}

	if n, err := e.store.LoadCounter(store.KeyRecyclerCount); err == nil {
		stats.RecyclerCount = n
	} else {
		utils.Warn("engine: recycler counter unavailable", map[string]any{"error": err.Error()})
	}
	if n, err := e.store.LoadCounter(store.KeyMunicipalityCount); err == nil {
		stats.MunicipalityCount = n
	} else {
		utils.Warn("engine: municipality counter unavailable", map[string]any{"error": err.Error()})
	}
	return stats
}

// Degraded reports whether a persistence failure has left the engine running
// on its in-memory snapshot only.
func (e *Engine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded
}

// indexLocked finds a tender position by id, -1 when absent.
func (e *Engine) indexLocked(tenderID int) int {
	_, idx, ok := lo.FindIndexOf(e.tenders, func(t model.Tender) bool {
		return t.ID == tenderID
	})
	if !ok {
		return -1
	}
	return idx
}

// persistLocked writes the snapshot back. Failure flips the degraded flag
// instead of propagating so the session's bids survive in memory.
func (e *Engine) persistLocked() {
	if err := e.store.SaveTenders(e.tenders); err != nil {
		if !e.degraded {
			utils.Error("engine: persistence failed, continuing in-memory", map[string]any{"error": err.Error()})
		}
		e.degraded = true
		return
	}
	e.degraded = false
}

func (e *Engine) emitNotification(n model.Notification) {
	e.mu.Lock()
	sinks := append(e.notifySinks[:0:0], e.notifySinks...)
	e.mu.Unlock()
	for _, sink := range sinks {
		sink(n)
	}
}

// bidNotification renders an accepted bid as a feed entry. Local bids read
// as a confirmation, everything else as competitor activity.
func bidNotification(ev model.BidEvent, now time.Time) model.Notification {
	n := model.Notification{
		ID:        utils.GenerateID(),
		Timestamp: now,
	}
	pretty := humanize.CommafWithDigits(ev.Amount, 0)
	if ev.Origin == model.OriginLocal {
		n.Category = model.CategorySuccess
		n.Message = fmt.Sprintf("Your bid of ₹%s has been placed!", pretty)
	} else {
		n.Category = model.CategoryBid
		n.Message = fmt.Sprintf("%s placed a bid of ₹%s", ev.Bidder, pretty)
	}
	return n
}

// RankBidders orders a tender's bidders by amount descending; ties break in
// favor of the earlier timestamp. The top entry is marked leading.
func RankBidders(t model.Tender) []model.RankedBidder {
	ranked := lo.MapToSlice(t.Bidders, func(name string, entry model.BidderEntry) model.RankedBidder {
		return model.RankedBidder{
			Bidder:    name,
			Amount:    entry.Amount,
			Timestamp: entry.Timestamp,
		}
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Timestamp.Before(ranked[j].Timestamp)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Leading = i == 0
	}
	return ranked
}
