package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"waste-tender-bidding/internal/channel"
	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/services/tender/helpers"
	"waste-tender-bidding/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// TenderServiceInterface is the engine surface the HTTP layer depends on.
type TenderServiceInterface interface {
	ListTenders() []model.Tender
	GetTender(tenderID int) (model.Tender, error)
	SubmitBid(tenderID int, bidder string, amount float64) (model.Tender, error)
	CloseTender(tenderID int) (model.Tender, error)
	Ranking(tenderID int) ([]model.RankedBidder, error)
	TimeRemaining(tenderID int) (time.Duration, error)
	Stats() model.Stats
}

// ChannelInterface is the simulated transport surface exposed over HTTP.
type ChannelInterface interface {
	Connect()
	Disconnect()
	State() channel.State
	Send(payload channel.EventPayload) error
	SetCurrentTender(tenderID int)
}

// FeedInterface is the notification feed surface exposed over HTTP.
type FeedInterface interface {
	Items() []model.Notification
	Clear()
}

type TenderHandler struct {
	service  TenderServiceInterface
	channel  ChannelInterface
	feed     FeedInterface
	bidDelay time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewTenderHandler creates the handler set. bidDelay simulates the network
// round-trip of a bid submission; while a bidder's submission is in flight,
// duplicate submissions from the same bidder are refused.
func NewTenderHandler(service TenderServiceInterface, ch ChannelInterface, feed FeedInterface, bidDelay time.Duration) *TenderHandler {
	return &TenderHandler{
		service:  service,
		channel:  ch,
		feed:     feed,
		bidDelay: bidDelay,
		inFlight: make(map[string]bool),
	}
}

// ListTendersHandler handles GET /tenders
func (h *TenderHandler) ListTendersHandler(c *gin.Context) {
	tenders := h.service.ListTenders()
	resp := lo.Map(tenders, func(t model.Tender, _ int) helpers.TenderResponse {
		return helpers.ToTenderResponse(t)
	})
	utils.JSONResponse(c, http.StatusOK, resp, "tenders retrieved successfully")
}

// GetTenderHandler handles GET /tenders/:tender_id
func (h *TenderHandler) GetTenderHandler(c *gin.Context) {
	tenderID, ok := parseTenderID(c)
	if !ok {
		return
	}

	tender, err := h.service.GetTender(tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetTenderHandler: error retrieving tender", map[string]any{"tender_id": tenderID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToTenderResponse(tender), "tender retrieved successfully")
}

// PlaceBidHandler handles POST /tenders/:tender_id/bids
func (h *TenderHandler) PlaceBidHandler(c *gin.Context) {
	tenderID, ok := parseTenderID(c)
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	if !h.markInFlight(req.Bidder) {
		utils.JSONError(c, http.StatusConflict, fmt.Errorf("bid already in flight for %s", req.Bidder), "bid already in flight")
		return
	}
	defer h.clearInFlight(req.Bidder)

	// Simulated submission round-trip. The bidder stays marked in flight for
	// the whole window so double submission is refused.
	if h.bidDelay > 0 {
		time.Sleep(h.bidDelay)
	}

	tender, err := h.service.SubmitBid(tenderID, req.Bidder, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"tender_id": tenderID,
			"bidder":    req.Bidder,
			"amount":    req.Amount,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToTenderResponse(tender), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"tender_id": tenderID,
		"bidder":    req.Bidder,
		"amount":    req.Amount,
	})
}

// CloseTenderHandler handles POST /tenders/:tender_id/close
func (h *TenderHandler) CloseTenderHandler(c *gin.Context) {
	tenderID, ok := parseTenderID(c)
	if !ok {
		return
	}

	tender, err := h.service.CloseTender(tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseTenderHandler: error closing tender", map[string]any{"tender_id": tenderID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToTenderResponse(tender), "tender closed")
	helpers.LogSuccess("CloseTenderHandler", "tender closed", map[string]any{"tender_id": tenderID})
}

// GetRankingHandler handles GET /tenders/:tender_id/ranking
func (h *TenderHandler) GetRankingHandler(c *gin.Context) {
	tenderID, ok := parseTenderID(c)
	if !ok {
		return
	}

	ranking, err := h.service.Ranking(tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, ranking, "ranking retrieved successfully")
}

// GetHistoryHandler handles GET /tenders/:tender_id/history
func (h *TenderHandler) GetHistoryHandler(c *gin.Context) {
	tenderID, ok := parseTenderID(c)
	if !ok {
		return
	}

	tender, err := h.service.GetTender(tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	resp := lo.Map(tender.BiddingHistory, func(ev model.BidEvent, _ int) helpers.BidEventResponse {
		return helpers.ToBidEventResponse(ev)
	})
	utils.JSONResponse(c, http.StatusOK, resp, "bidding history retrieved successfully")
}

// GetTimeRemainingHandler handles GET /tenders/:tender_id/time-remaining
func (h *TenderHandler) GetTimeRemainingHandler(c *gin.Context) {
	tenderID, ok := parseTenderID(c)
	if !ok {
		return
	}

	remaining, err := h.service.TimeRemaining(tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	tender, err := h.service.GetTender(tenderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	resp := helpers.TimeRemainingResponse{
		TenderID:    tenderID,
		Status:      string(tender.Status),
		RemainingMs: remaining.Milliseconds(),
		Remaining:   remaining.String(),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "time remaining retrieved successfully")
}

// GetNotificationsHandler handles GET /notifications
func (h *TenderHandler) GetNotificationsHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.feed.Items(), "notifications retrieved successfully")
}

// ClearNotificationsHandler handles DELETE /notifications
func (h *TenderHandler) ClearNotificationsHandler(c *gin.Context) {
	h.feed.Clear()
	utils.JSONResponse(c, http.StatusOK, nil, "notifications cleared")
}

// GetChannelStateHandler handles GET /channel
func (h *TenderHandler) GetChannelStateHandler(c *gin.Context) {
	resp := helpers.ChannelStateResponse{State: string(h.channel.State())}
	utils.JSONResponse(c, http.StatusOK, resp, "channel state retrieved successfully")
}

// ConnectChannelHandler handles POST /channel/connect
func (h *TenderHandler) ConnectChannelHandler(c *gin.Context) {
	h.channel.Connect()
	resp := helpers.ChannelStateResponse{State: string(h.channel.State())}
	utils.JSONResponse(c, http.StatusAccepted, resp, "channel connecting")
}

// DisconnectChannelHandler handles POST /channel/disconnect
func (h *TenderHandler) DisconnectChannelHandler(c *gin.Context) {
	h.channel.Disconnect()
	resp := helpers.ChannelStateResponse{State: string(h.channel.State())}
	utils.JSONResponse(c, http.StatusOK, resp, "channel disconnected")
}

// SendChannelMessageHandler handles POST /channel/messages
func (h *TenderHandler) SendChannelMessageHandler(c *gin.Context) {
	var req helpers.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SendChannelMessageHandler", err)
		return
	}

	err := h.channel.Send(channel.EventPayload{
		Type:      req.Type,
		Bidder:    req.Bidder,
		Amount:    req.Amount,
		User:      req.User,
		Activity:  req.Activity,
		Message:   req.Message,
		Timestamp: time.Now().UTC(),
		TenderID:  req.TenderID,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusAccepted, nil, "message scheduled")
}

// GetStatsHandler handles GET /stats
func (h *TenderHandler) GetStatsHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.service.Stats(), "stats retrieved successfully")
}

// markInFlight records that a bidder's submission is being processed.
// It reports false when one is already pending.
func (h *TenderHandler) markInFlight(bidder string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFlight[bidder] {
		return false
	}
	h.inFlight[bidder] = true
	return true
}

func (h *TenderHandler) clearInFlight(bidder string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inFlight, bidder)
}

// parseTenderID extracts the numeric :tender_id path parameter, replying 400
// on malformed values.
func parseTenderID(c *gin.Context) (int, bool) {
	raw := c.Param("tender_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid tender id %q", raw), "invalid tender id")
		return 0, false
	}
	return id, true
}
