package models

import "time"

// TenderStatus is the lifecycle state of a tender.
type TenderStatus string

const (
	StatusOpen   TenderStatus = "open"
	StatusClosed TenderStatus = "closed"
)

// BidOrigin identifies where a bid event came from.
type BidOrigin string

const (
	OriginLocal     BidOrigin = "local"
	OriginSynthetic BidOrigin = "synthetic"
	OriginPeer      BidOrigin = "peer"
)

// Municipality is the issuing authority of a tender.
type Municipality struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// BidderEntry is a bidder's single current bid on a tender. A new bid from
// the same bidder replaces this entry rather than adding another one.
type BidderEntry struct {
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// BidEvent is one accepted bid in a tender's history.
type BidEvent struct {
	EventID   string    `json:"event_id"`
	Bidder    string    `json:"bidder"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Origin    BidOrigin `json:"origin"`
}

// Tender represents a waste-collection contract open for bidding.
type Tender struct {
	ID             int                    `json:"id"`
	Description    string                 `json:"description"`
	WasteType      string                 `json:"waste_type"`
	Quantity       int                    `json:"quantity"`
	Location       string                 `json:"location"`
	StartingBid    float64                `json:"starting_bid"`
	CurrentBid     float64                `json:"current_bid"`
	Deadline       time.Time              `json:"deadline"`
	CollectionDate time.Time              `json:"collection_date"`
	Status         TenderStatus           `json:"status"`
	Bidders        map[string]BidderEntry `json:"bidders"`
	BiddingHistory []BidEvent             `json:"bidding_history"`
	CreatedAt      time.Time              `json:"created_at"`
	Municipality   Municipality           `json:"municipality"`
}

// HighestBid returns the amount a new bid must strictly exceed.
func (t Tender) HighestBid() float64 {
	if t.CurrentBid > 0 {
		return t.CurrentBid
	}
	return t.StartingBid
}

// IsOpen reports whether the tender accepts bids at the given instant.
// Closedness is always recomputed from the deadline; a stored "open" status
// with an expired deadline still counts as closed. A stored "closed" status
// records an explicit administrative close and is terminal.
func (t Tender) IsOpen(now time.Time) bool {
	return t.Status != StatusClosed && now.Before(t.Deadline)
}

// StatusAt derives the effective status at the given instant.
func (t Tender) StatusAt(now time.Time) TenderStatus {
	if t.IsOpen(now) {
		return StatusOpen
	}
	return StatusClosed
}

// TimeRemaining returns the duration until the deadline, clamped to zero.
func (t Tender) TimeRemaining(now time.Time) time.Duration {
	if t.Status == StatusClosed || !now.Before(t.Deadline) {
		return 0
	}
	return t.Deadline.Sub(now)
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the engine's mutable state.
func (t Tender) Clone() Tender {
	out := t
	out.Bidders = make(map[string]BidderEntry, len(t.Bidders))
	for name, entry := range t.Bidders {
		out.Bidders[name] = entry
	}
	out.BiddingHistory = append([]BidEvent(nil), t.BiddingHistory...)
	return out
}

// RankedBidder is one row of a tender's leaderboard.
type RankedBidder struct {
	Rank      int       `json:"rank"`
	Bidder    string    `json:"bidder"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Leading   bool      `json:"leading"`
}

// NotificationCategory classifies feed entries.
type NotificationCategory string

const (
	CategoryBid      NotificationCategory = "bid"
	CategoryActivity NotificationCategory = "activity"
	CategoryChat     NotificationCategory = "chat"
	CategorySuccess  NotificationCategory = "success"
	CategoryError    NotificationCategory = "error"
)

// Notification is a user-visible feed entry.
type Notification struct {
	ID        string               `json:"id"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"category"`
	Timestamp time.Time            `json:"timestamp"`
}

// Stats are display-only platform counters.
type Stats struct {
	RecyclerCount     int  `json:"recycler_count"`
	MunicipalityCount int  `json:"municipality_count"`
	Degraded          bool `json:"degraded"`
}
