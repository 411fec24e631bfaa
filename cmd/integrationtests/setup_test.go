package integrationtests

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"waste-tender-bidding/internal/channel"
	"waste-tender-bidding/internal/engine"
	"waste-tender-bidding/internal/feed"
	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/server"
	"waste-tender-bidding/internal/simclock"
	"waste-tender-bidding/internal/store"
	"waste-tender-bidding/services/tender/handler"
)

var testNow = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

// TestServer wires the full stack over an in-memory store and a manually
// advanced clock, with the channel already through its handshake.
type TestServer struct {
	Router  *gin.Engine
	Clock   *simclock.Fake
	Engine  *engine.Engine
	Feed    *feed.Feed
	Channel *channel.SimChannel
	Store   *store.TenderStore
}

// SetupTestServer initializes the stack seeded with the given tenders.
func SetupTestServer(t *testing.T, tenders ...model.Tender) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := simclock.NewFake(testNow)
	ts := store.NewTenderStore(store.NewMemoryStore())

	eng, err := engine.New(ts, clock, func() []model.Tender {
		return tenders
	})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	notifications := feed.New(clock, feed.DefaultCapacity, feed.DefaultWindow)
	eng.SubscribeNotifications(notifications.Push)

	ch := channel.New(channel.Config{}, clock, rand.New(rand.NewSource(1)))
	eng.SubscribeBids(func(ev model.BidEvent, tenderID int) {
		if ev.Origin != model.OriginLocal {
			return
		}
		_ = ch.Send(channel.EventPayload{
			Type:      channel.TypeBidPlaced,
			Bidder:    ev.Bidder,
			Amount:    ev.Amount,
			Timestamp: ev.Timestamp,
			TenderID:  tenderID,
		})
	})
	ch.Subscribe(channel.EventMessage, func(data []byte) {
		payload, err := channel.ParsePayload(data)
		if err != nil {
			return
		}
		if payload.Type == channel.TypeBidPlaced {
			eng.IngestExternalBid(payload.TenderID, payload.Bidder, payload.Amount, payload.Timestamp, model.OriginPeer)
		}
	})
	ch.Connect()
	clock.Advance(time.Second)

	h := handler.NewTenderHandler(eng, ch, notifications, 0)
	return &TestServer{
		Router:  server.SetupRouter(h),
		Clock:   clock,
		Engine:  eng,
		Feed:    notifications,
		Channel: ch,
		Store:   ts,
	}
}

// OpenTender returns a tender accepting bids for another hour.
func OpenTender(id int) model.Tender {
	return model.Tender{
		ID:             id,
		Description:    "Municipal solid waste collection",
		WasteType:      "municipal",
		Quantity:       40,
		Location:       "Pune, Maharashtra",
		StartingBid:    50000,
		CurrentBid:     50000,
		Deadline:       testNow.Add(time.Hour),
		Status:         model.StatusOpen,
		Bidders:        map[string]model.BidderEntry{},
		BiddingHistory: []model.BidEvent{},
		CreatedAt:      testNow.Add(-24 * time.Hour),
		Municipality:   model.Municipality{Name: "Pune Municipal Corporation"},
	}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
