// Package synthbidder produces plausible competing bid events to simulate
// market activity. It is demonstration traffic only and must stay toggleable.
package synthbidder

import (
	"math/rand"
	"time"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/utils"
)

// Roster holds the synthetic recycling companies that appear as competitors.
var Roster = []string{
	"Green Earth Recycling", "EcoWaste Solutions", "Clean India Recyclers",
	"Sustainable Waste Management", "Green Future Recycling", "EcoTech Waste",
	"CleanCycle Solutions", "GreenTech Recycling", "EcoFriendly Waste",
	"Sustainable Solutions", "GreenCycle Waste", "EcoGreen Recycling",
}

// Config tunes the generator's cadence and aggressiveness.
type Config struct {
	// Interval is the tick cadence of the runner.
	Interval time.Duration
	// Probability is the chance per tick that a candidate bid is produced.
	Probability float64
	// MaxIncrement caps how far above the current highest a candidate jumps.
	MaxIncrement float64
}

// DefaultConfig matches the demo behavior: a tick every few seconds, a bid on
// roughly a third of them, jumps of at most 5000.
func DefaultConfig() Config {
	return Config{
		Interval:     3 * time.Second,
		Probability:  0.3,
		MaxIncrement: 5000,
	}
}

// Generator produces candidate competing bids from a seedable random source.
// It never mutates tender state; callers feed candidates into the engine.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a Generator with the given config and random source.
func NewGenerator(cfg Config, rng *rand.Rand) *Generator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Probability <= 0 {
		cfg.Probability = DefaultConfig().Probability
	}
	if cfg.MaxIncrement <= 0 {
		cfg.MaxIncrement = DefaultConfig().MaxIncrement
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Interval exposes the configured tick cadence for the runner.
func (g *Generator) Interval() time.Duration { return g.cfg.Interval }

// MaybeGenerateBid produces, with the configured probability, a candidate bid
// for the tender: a roster identity offering the current highest plus a random
// increment in [1, MaxIncrement], timestamped now. ok is false when this tick
// stays quiet or the tender is already closed.
func (g *Generator) MaybeGenerateBid(t model.Tender, now time.Time) (model.BidEvent, bool) {
	if !t.IsOpen(now) {
		return model.BidEvent{}, false
	}
	if g.rng.Float64() >= g.cfg.Probability {
		return model.BidEvent{}, false
	}

	// Truncation of a fractional MaxIncrement below 1 must not reach Intn.
	capIncrement := int(g.cfg.MaxIncrement)
	if capIncrement < 1 {
		capIncrement = 1
	}
	increment := float64(g.rng.Intn(capIncrement)) + 1
	return model.BidEvent{
		EventID:   utils.GenerateID(),
		Bidder:    Roster[g.rng.Intn(len(Roster))],
		Amount:    t.HighestBid() + increment,
		Timestamp: now,
		Origin:    model.OriginSynthetic,
	}, true
}
