package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/simclock"
	"waste-tender-bidding/internal/store"
	"waste-tender-bidding/internal/tendererrors"
)

var testNow = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

// newTender builds an open tender with a deadline one hour out.
func newTender(id int, startingBid float64) model.Tender {
	return model.Tender{
		ID:             id,
		Description:    "Mixed municipal solid waste",
		WasteType:      "municipal",
		Quantity:       60,
		Location:       "Mumbai, Maharashtra",
		StartingBid:    startingBid,
		CurrentBid:     startingBid,
		Deadline:       testNow.Add(time.Hour),
		Status:         model.StatusOpen,
		Bidders:        map[string]model.BidderEntry{},
		BiddingHistory: []model.BidEvent{},
	}
}

// newTestEngine builds an engine over an in-memory store seeded with the
// given tenders, driven by a fake clock pinned at testNow.
func newTestEngine(t *testing.T, tenders ...model.Tender) (*Engine, *simclock.Fake, *store.TenderStore) {
	t.Helper()

	clock := simclock.NewFake(testNow)
	ts := store.NewTenderStore(store.NewMemoryStore())
	eng, err := New(ts, clock, func() []model.Tender { return tenders })
	require.NoError(t, err)
	return eng, clock, ts
}

func TestEngine_SubmitBid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		tenderID      int
		bidder        string
		amount        float64
		expectedError error
	}{
		{name: "valid_first_bid", tenderID: 1, bidder: "Rajesh Kumar", amount: 50001},
		{name: "tender_not_found", tenderID: 99, bidder: "Rajesh Kumar", amount: 50001, expectedError: tendererrors.ErrTenderNotFound},
		{name: "amount_equal_to_current", tenderID: 1, bidder: "Rajesh Kumar", amount: 50000, expectedError: tendererrors.ErrBidTooLow},
		{name: "amount_below_current", tenderID: 1, bidder: "Rajesh Kumar", amount: 49999, expectedError: tendererrors.ErrBidTooLow},
		{name: "empty_bidder", tenderID: 1, bidder: "", amount: 50001, expectedError: tendererrors.ErrInvalidBid},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			eng, _, _ := newTestEngine(t, newTender(1, 50000))
			snapshot, err := eng.SubmitBid(tc.tenderID, tc.bidder, tc.amount)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.amount, snapshot.CurrentBid)
			require.Len(t, snapshot.BiddingHistory, 1)
			require.Equal(t, model.OriginLocal, snapshot.BiddingHistory[0].Origin)
			require.Contains(t, snapshot.Bidders, tc.bidder)
		})
	}
}

// Rejected bids must leave the tender byte-for-byte unmodified.
func TestEngine_RejectionLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	_, err := eng.SubmitBid(1, "Rajesh Kumar", 52000)
	require.NoError(t, err)

	before, err := eng.GetTender(1)
	require.NoError(t, err)

	_, err = eng.SubmitBid(1, "Priya Sharma", 52000) // tie, rejected
	require.ErrorIs(t, err, tendererrors.ErrBidTooLow)

	after, err := eng.GetTender(1)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

// currentBid never decreases over any sequence of accepted bids.
func TestEngine_CurrentBidMonotonic(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	last := 50000.0
	amounts := []float64{50500, 51000, 60000, 60001, 75000}
	for _, amount := range amounts {
		snapshot, err := eng.SubmitBid(1, "Rajesh Kumar", amount)
		require.NoError(t, err)
		require.GreaterOrEqual(t, snapshot.CurrentBid, last)
		last = snapshot.CurrentBid
	}
	require.Equal(t, 75000.0, last)
}

// A re-bid from the same identity replaces the bidders entry but appends to
// the history.
func TestEngine_RebidReplacesBidderEntry(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	_, err := eng.SubmitBid(1, "Rajesh Kumar", 51000)
	require.NoError(t, err)
	snapshot, err := eng.SubmitBid(1, "Rajesh Kumar", 53000)
	require.NoError(t, err)

	require.Len(t, snapshot.Bidders, 1)
	require.Equal(t, 53000.0, snapshot.Bidders["Rajesh Kumar"].Amount)
	require.Len(t, snapshot.BiddingHistory, 2)
}

// An expired deadline closes the auction regardless of the stored status flag.
func TestEngine_DeadlineOverridesStoredStatus(t *testing.T) {
	t.Parallel()

	expired := newTender(1, 50000)
	expired.Deadline = testNow.Add(-time.Millisecond)
	expired.Status = model.StatusOpen // stale flag

	eng, _, _ := newTestEngine(t, expired)

	snapshot, err := eng.GetTender(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusClosed, snapshot.Status)

	_, err = eng.SubmitBid(1, "Rajesh Kumar", 60000)
	require.ErrorIs(t, err, tendererrors.ErrAuctionClosed)
}

func TestEngine_DeadlineExpiryDuringSession(t *testing.T) {
	t.Parallel()

	eng, clock, _ := newTestEngine(t, newTender(1, 50000))

	_, err := eng.SubmitBid(1, "Rajesh Kumar", 51000)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	_, err = eng.SubmitBid(1, "Priya Sharma", 52000)
	require.ErrorIs(t, err, tendererrors.ErrAuctionClosed)
}

func TestEngine_CloseTenderIdempotent(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	first, err := eng.CloseTender(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusClosed, first.Status)

	second, err := eng.CloseTender(1)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = eng.SubmitBid(1, "Rajesh Kumar", 60000)
	require.ErrorIs(t, err, tendererrors.ErrAuctionClosed)

	_, err = eng.CloseTender(99)
	require.ErrorIs(t, err, tendererrors.ErrTenderNotFound)
}

// Identical (bidder, amount, timestamp) triples apply exactly once.
func TestEngine_IngestExternalBidDedup(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	ts := testNow.Add(time.Minute)
	_, applied, err := eng.IngestExternalBid(1, "Green Earth Recycling", 51000, ts, model.OriginSynthetic)
	require.NoError(t, err)
	require.True(t, applied)

	snapshot, applied, err := eng.IngestExternalBid(1, "Green Earth Recycling", 51000, ts, model.OriginSynthetic)
	require.NoError(t, err)
	require.False(t, applied)
	require.Len(t, snapshot.BiddingHistory, 1)
}

// Replay idempotence holds across the close boundary: a duplicate triple is a
// silent no-op even after the tender has closed, not an AuctionClosed error.
func TestEngine_IngestExternalBidDedupAfterClose(t *testing.T) {
	t.Parallel()

	eng, clock, _ := newTestEngine(t, newTender(1, 50000))

	ts := testNow.Add(time.Minute)
	_, applied, err := eng.IngestExternalBid(1, "Green Earth Recycling", 51000, ts, model.OriginPeer)
	require.NoError(t, err)
	require.True(t, applied)

	_, err = eng.CloseTender(1)
	require.NoError(t, err)

	snapshot, applied, err := eng.IngestExternalBid(1, "Green Earth Recycling", 51000, ts, model.OriginPeer)
	require.NoError(t, err)
	require.False(t, applied)
	require.Len(t, snapshot.BiddingHistory, 1)

	// Same once the deadline lapses.
	clock.Advance(2 * time.Hour)
	snapshot, applied, err = eng.IngestExternalBid(1, "Green Earth Recycling", 51000, ts, model.OriginPeer)
	require.NoError(t, err)
	require.False(t, applied)
	require.Len(t, snapshot.BiddingHistory, 1)

	// Fresh bids are still refused.
	_, _, err = eng.IngestExternalBid(1, "EcoWaste Solutions", 60000, ts.Add(time.Second), model.OriginPeer)
	require.ErrorIs(t, err, tendererrors.ErrAuctionClosed)
}

func TestEngine_IngestExternalBidRules(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	_, _, err := eng.IngestExternalBid(99, "EcoWaste Solutions", 51000, testNow, model.OriginPeer)
	require.ErrorIs(t, err, tendererrors.ErrTenderNotFound)

	_, _, err = eng.IngestExternalBid(1, "EcoWaste Solutions", 50000, testNow, model.OriginPeer)
	require.ErrorIs(t, err, tendererrors.ErrBidTooLow)
}

// Ranking: amounts descending, ties broken by earliest timestamp.
// A(100,@t1), B(150,@t2), C(150,@t3) with t2<t3 ranks [B, C, A].
func TestRankBidders_TieBreak(t *testing.T) {
	t.Parallel()

	t1 := testNow.Add(1 * time.Minute)
	t2 := testNow.Add(2 * time.Minute)
	t3 := testNow.Add(3 * time.Minute)

	tender := newTender(1, 50)
	tender.Bidders = map[string]model.BidderEntry{
		"A": {Amount: 100, Timestamp: t1},
		"B": {Amount: 150, Timestamp: t2},
		"C": {Amount: 150, Timestamp: t3},
	}

	ranked := RankBidders(tender)
	require.Len(t, ranked, 3)
	require.Equal(t, "B", ranked[0].Bidder)
	require.Equal(t, "C", ranked[1].Bidder)
	require.Equal(t, "A", ranked[2].Bidder)
	require.True(t, ranked[0].Leading)
	require.False(t, ranked[1].Leading)
	require.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestEngine_TimeRemaining(t *testing.T) {
	t.Parallel()

	eng, clock, _ := newTestEngine(t, newTender(1, 50000))

	remaining, err := eng.TimeRemaining(1)
	require.NoError(t, err)
	require.Equal(t, time.Hour, remaining)

	clock.Advance(2 * time.Hour)
	remaining, err = eng.TimeRemaining(1)
	require.NoError(t, err)
	require.Zero(t, remaining)
}

// Accepted bids reach bid subscribers and render notifications; local bids
// read as confirmations, external ones as competitor activity.
func TestEngine_EventEmission(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	var events []model.BidEvent
	var notes []model.Notification
	eng.SubscribeBids(func(ev model.BidEvent, tenderID int) {
		require.Equal(t, 1, tenderID)
		events = append(events, ev)
	})
	eng.SubscribeNotifications(func(n model.Notification) {
		notes = append(notes, n)
	})

	_, err := eng.SubmitBid(1, "Rajesh Kumar", 51000)
	require.NoError(t, err)
	_, _, err = eng.IngestExternalBid(1, "Green Earth Recycling", 52000, testNow.Add(time.Second), model.OriginSynthetic)
	require.NoError(t, err)

	// Rejections emit nothing.
	_, err = eng.SubmitBid(1, "Priya Sharma", 10)
	require.ErrorIs(t, err, tendererrors.ErrBidTooLow)

	require.Len(t, events, 2)
	require.Len(t, notes, 2)
	require.Equal(t, model.CategorySuccess, notes[0].Category)
	require.Equal(t, model.CategoryBid, notes[1].Category)
	require.Contains(t, notes[1].Message, "Green Earth Recycling")
}

// Accepted bids are written back to storage.
func TestEngine_PersistsAfterAcceptance(t *testing.T) {
	t.Parallel()

	eng, _, ts := newTestEngine(t, newTender(1, 50000))

	_, err := eng.SubmitBid(1, "Rajesh Kumar", 51000)
	require.NoError(t, err)

	stored, found, err := ts.LoadTenders()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 51000.0, stored[0].CurrentBid)
	require.Len(t, stored[0].BiddingHistory, 1)
}

// A failing store degrades the engine instead of losing the session's bids.
func TestEngine_StorageFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("disk on fire")
	mockKV := store.NewMockKVStore(ctrl)
	mockKV.EXPECT().Get(gomock.Any()).Return("", false, nil).AnyTimes()
	mockKV.EXPECT().Set(gomock.Any(), gomock.Any()).Return(boom).AnyTimes()

	clock := simclock.NewFake(testNow)
	ts := store.NewTenderStore(mockKV)
	eng, err := New(ts, clock, func() []model.Tender { return []model.Tender{newTender(1, 50000)} })
	require.NoError(t, err)
	require.True(t, eng.Degraded())

	// Bidding still works in-memory.
	snapshot, err := eng.SubmitBid(1, "Rajesh Kumar", 51000)
	require.NoError(t, err)
	require.Equal(t, 51000.0, snapshot.CurrentBid)
	require.True(t, eng.Degraded())
	require.True(t, eng.Stats().Degraded)

	got, err := eng.GetTender(1)
	require.NoError(t, err)
	require.Equal(t, 51000.0, got.CurrentBid)
}

// End-to-end acceptance scenario from the demo script.
func TestEngine_EndToEndScenario(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, newTender(1, 50000))

	snapshot, err := eng.SubmitBid(1, "A", 50001)
	require.NoError(t, err)
	require.Equal(t, 50001.0, snapshot.CurrentBid)
	require.Len(t, snapshot.BiddingHistory, 1)

	_, err = eng.SubmitBid(1, "B", 50000)
	require.ErrorIs(t, err, tendererrors.ErrBidTooLow)

	unchanged, err := eng.GetTender(1)
	require.NoError(t, err)
	require.Equal(t, snapshot.CurrentBid, unchanged.CurrentBid)
	require.Len(t, unchanged.BiddingHistory, 1)
}

func TestEngine_ListTendersNormalizesStatus(t *testing.T) {
	t.Parallel()

	open := newTender(1, 50000)
	stale := newTender(2, 60000)
	stale.Deadline = testNow.Add(-time.Hour)
	stale.Status = model.StatusOpen

	eng, _, _ := newTestEngine(t, open, stale)

	tenders := eng.ListTenders()
	require.Len(t, tenders, 2)
	require.Equal(t, model.StatusOpen, tenders[0].Status)
	require.Equal(t, model.StatusClosed, tenders[1].Status)
}
