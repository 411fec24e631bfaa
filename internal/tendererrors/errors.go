package tendererrors

import "errors"

// Bid validation errors
var (
	ErrTenderNotFound = errors.New("tender not found")
	ErrAuctionClosed  = errors.New("auction closed")
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrInvalidBid     = errors.New("invalid bid")
)

// Transport and persistence errors
var (
	ErrChannelNotConnected = errors.New("channel not connected")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
