package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/tendererrors"
	"waste-tender-bidding/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, tendererrors.ErrTenderNotFound):
		return http.StatusNotFound, "tender not found"
	case errors.Is(err, tendererrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, tendererrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, tendererrors.ErrAuctionClosed):
		return http.StatusConflict, "auction closed"
	case errors.Is(err, tendererrors.ErrChannelNotConnected):
		return http.StatusConflict, "channel not connected"
	case errors.Is(err, tendererrors.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ToTenderResponse converts a tender snapshot to its HTTP shape
func ToTenderResponse(t model.Tender) TenderResponse {
	return TenderResponse{
		ID:             t.ID,
		Description:    t.Description,
		WasteType:      t.WasteType,
		Quantity:       t.Quantity,
		Location:       t.Location,
		StartingBid:    t.StartingBid,
		CurrentBid:     t.CurrentBid,
		Deadline:       t.Deadline.UTC().Format(time.RFC3339),
		CollectionDate: t.CollectionDate.UTC().Format(time.RFC3339),
		Status:         string(t.Status),
		BidderCount:    len(t.Bidders),
		HistoryLength:  len(t.BiddingHistory),
		Municipality:   t.Municipality,
	}
}

// ToBidEventResponse converts a history entry to its HTTP shape
func ToBidEventResponse(ev model.BidEvent) BidEventResponse {
	return BidEventResponse{
		EventID:   ev.EventID,
		Bidder:    ev.Bidder,
		Amount:    ev.Amount,
		Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
		Origin:    string(ev.Origin),
	}
}
