package helpers

import model "waste-tender-bidding/internal/models"

// Request/Response DTOs
type PlaceBidRequest struct {
	Bidder string  `json:"bidder" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type TenderResponse struct {
	ID             int                `json:"id"`
	Description    string             `json:"description"`
	WasteType      string             `json:"waste_type"`
	Quantity       int                `json:"quantity"`
	Location       string             `json:"location"`
	StartingBid    float64            `json:"starting_bid"`
	CurrentBid     float64            `json:"current_bid"`
	Deadline       string             `json:"deadline"`
	CollectionDate string             `json:"collection_date"`
	Status         string             `json:"status"`
	BidderCount    int                `json:"bidder_count"`
	HistoryLength  int                `json:"history_length"`
	Municipality   model.Municipality `json:"municipality"`
}

type BidEventResponse struct {
	EventID   string  `json:"event_id"`
	Bidder    string  `json:"bidder"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
	Origin    string  `json:"origin"`
}

type TimeRemainingResponse struct {
	TenderID    int    `json:"tender_id"`
	Status      string `json:"status"`
	RemainingMs int64  `json:"remaining_ms"`
	Remaining   string `json:"remaining"`
}

type ChannelStateResponse struct {
	State string `json:"state"`
}

type SendMessageRequest struct {
	Type     string  `json:"type" binding:"required"`
	Bidder   string  `json:"bidder"`
	Amount   float64 `json:"amount"`
	User     string  `json:"user"`
	Activity string  `json:"activity"`
	Message  string  `json:"message"`
	TenderID int     `json:"tenderId"`
}
