package main

import "time"

// Config is loaded from the environment (optionally via a .env file).
type Config struct {
	Port        string `env:"PORT,default=8080"`
	BadgerPath  string `env:"BADGER_PATH,default=./data/tenders"`
	Ephemeral   bool   `env:"EPHEMERAL,default=false"`
	TenderCount int    `env:"TENDER_COUNT,default=20"`
	// RandSeed pins all simulated randomness for reproducible demos.
	// Zero seeds from the wall clock.
	RandSeed int64 `env:"RAND_SEED,default=0"`

	EnableSimulation bool          `env:"ENABLE_SIMULATION,default=true"`
	SimInterval      time.Duration `env:"SIM_INTERVAL,default=3s"`
	SimProbability   float64       `env:"SIM_PROBABILITY,default=0.3"`
	SimMaxIncrement  float64       `env:"SIM_MAX_INCREMENT,default=5000"`

	// BidDelay simulates the network round-trip of a bid submission.
	BidDelay time.Duration `env:"BID_DELAY,default=1500ms"`
}
