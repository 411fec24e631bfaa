package synthbidder

import (
	"context"
	"time"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/simclock"
	"waste-tender-bidding/utils"
)

// BidIngestor is the engine-side surface the runner feeds candidates into.
type BidIngestor interface {
	ListTenders() []model.Tender
	IngestExternalBid(tenderID int, bidder string, amount float64, ts time.Time, origin model.BidOrigin) (model.Tender, bool, error)
}

// Runner ticks the generator against a random open tender and submits the
// resulting candidates. It holds no tender state of its own.
type Runner struct {
	gen    *Generator
	engine BidIngestor
	clock  simclock.Clock
}

// NewRunner wires a generator to the engine.
func NewRunner(gen *Generator, engine BidIngestor, clock simclock.Clock) *Runner {
	return &Runner{gen: gen, engine: engine, clock: clock}
}

// Run drives the simulation loop until ctx is cancelled. Rejected candidates
// (outbid in the meantime, tender closed) are expected and only logged.
func (r *Runner) Run(ctx context.Context) error {
	utils.Info("synthbidder: simulation started", map[string]any{"interval": r.gen.Interval().String()})
	ticker := time.NewTicker(r.gen.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.Info("synthbidder: simulation stopped", nil)
			return ctx.Err()
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick runs a single simulation step: pick an open tender, maybe generate a
// candidate, feed it to the engine.
func (r *Runner) Tick() {
	now := r.clock.Now()
	open := openTenders(r.engine.ListTenders(), now)
	if len(open) == 0 {
		return
	}

	target := open[r.gen.rng.Intn(len(open))]
	candidate, ok := r.gen.MaybeGenerateBid(target, now)
	if !ok {
		return
	}

	_, applied, err := r.engine.IngestExternalBid(target.ID, candidate.Bidder, candidate.Amount, candidate.Timestamp, model.OriginSynthetic)
	if err != nil {
		utils.Warn("synthbidder: candidate rejected", map[string]any{
			"tender_id": target.ID,
			"bidder":    candidate.Bidder,
			"amount":    candidate.Amount,
			"error":     err.Error(),
		})
		return
	}
	if applied {
		utils.Info("synthbidder: competing bid placed", map[string]any{
			"tender_id": target.ID,
			"bidder":    candidate.Bidder,
			"amount":    candidate.Amount,
		})
	}
}

func openTenders(tenders []model.Tender, now time.Time) []model.Tender {
	open := tenders[:0]
	for _, t := range tenders {
		if t.IsOpen(now) {
			open = append(open, t)
		}
	}
	return open
}
