package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"waste-tender-bidding/internal/channel"
	"waste-tender-bidding/internal/engine"
	"waste-tender-bidding/internal/feed"
	"waste-tender-bidding/internal/mockdata"
	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/server"
	"waste-tender-bidding/internal/simclock"
	"waste-tender-bidding/internal/store"
	"waste-tender-bidding/internal/synthbidder"
	handler "waste-tender-bidding/services/tender/handler"
	"waste-tender-bidding/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle. Keeping
// the logic out of main ensures deferred cleanup (badger close) executes on
// every exit path.
func run() error {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	clock := simclock.NewReal()
	seed := cfg.RandSeed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Storage: badger on disk by default, memory-only for ephemeral demos.
	var kv store.KVStore
	if cfg.Ephemeral {
		kv = store.NewMemoryStore()
	} else {
		bs, err := store.OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return err
		}
		defer func() {
			utils.Info("closing badger store", nil)
			_ = bs.Close()
		}()
		kv = bs
	}
	tenderStore := store.NewTenderStore(kv)

	generator := mockdata.NewGenerator(rng, clock.Now)
	eng, err := engine.New(tenderStore, clock, func() []model.Tender {
		return generator.GenerateInitialTenders(cfg.TenderCount)
	})
	if err != nil {
		return err
	}
	seedCounters(tenderStore, eng)

	notifications := feed.New(clock, feed.DefaultCapacity, feed.DefaultWindow)
	eng.SubscribeNotifications(notifications.Push)

	ch := channel.New(channel.DefaultConfig(), clock, rng)
	wireChannel(ch, eng, notifications)
	ch.Connect()
	if open := eng.ListTenders(); len(open) > 0 {
		ch.SetCurrentTender(open[0].ID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EnableSimulation {
		gen := synthbidder.NewGenerator(synthbidder.Config{
			Interval:     cfg.SimInterval,
			Probability:  cfg.SimProbability,
			MaxIncrement: cfg.SimMaxIncrement,
		}, rng)
		runner := synthbidder.NewRunner(gen, eng, clock)
		go func() {
			_ = runner.Run(ctx)
		}()
	}

	h := handler.NewTenderHandler(eng, ch, notifications, cfg.BidDelay)
	router := server.SetupRouter(h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("starting tender bidding server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	utils.Info("shutting down", nil)
	ch.Disconnect()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// wireChannel routes simulated peer traffic into the engine and the feed,
// and broadcasts locally accepted bids back out over the channel.
func wireChannel(ch *channel.SimChannel, eng *engine.Engine, notifications *feed.Feed) {
	// Broadcast carries the timestamp the engine applied, so the echo of our
	// own bid matches its history entry and dedups instead of re-applying.
	eng.SubscribeBids(func(ev model.BidEvent, tenderID int) {
		if ev.Origin != model.OriginLocal {
			return
		}
		if err := ch.Send(channel.EventPayload{
			Type:      channel.TypeBidPlaced,
			Bidder:    ev.Bidder,
			Amount:    ev.Amount,
			Timestamp: ev.Timestamp,
			TenderID:  tenderID,
		}); err != nil {
			utils.Warn("bid broadcast skipped", map[string]any{"error": err.Error()})
		}
	})

	ch.Subscribe(channel.EventMessage, func(data []byte) {
		payload, err := channel.ParsePayload(data)
		if err != nil {
			utils.Warn("channel message dropped", map[string]any{"error": err.Error()})
			return
		}

		switch payload.Type {
		case channel.TypeBidPlaced:
			// The engine dedupes replays of bids already applied locally, so
			// echoes of our own sends are harmless here.
			if _, _, err := eng.IngestExternalBid(payload.TenderID, payload.Bidder, payload.Amount, payload.Timestamp, model.OriginPeer); err != nil {
				utils.Warn("peer bid rejected", map[string]any{
					"tender_id": payload.TenderID,
					"bidder":    payload.Bidder,
					"error":     err.Error(),
				})
			}
		case channel.TypeUserActivity:
			notifications.Push(model.Notification{
				ID:        utils.GenerateID(),
				Message:   fmt.Sprintf("%s %s", payload.User, payload.Activity),
				Category:  model.CategoryActivity,
				Timestamp: payload.Timestamp,
			})
		case channel.TypeChatMessage:
			notifications.Push(model.Notification{
				ID:        utils.GenerateID(),
				Message:   fmt.Sprintf("%s: %s", payload.User, payload.Message),
				Category:  model.CategoryChat,
				Timestamp: payload.Timestamp,
			})
		}
	})
}

// seedCounters derives the display statistics from the snapshot when absent.
func seedCounters(ts *store.TenderStore, eng *engine.Engine) {
	tenders := eng.ListTenders()

	recyclers := lo.Uniq(lo.FlatMap(tenders, func(t model.Tender, _ int) []string {
		return lo.Keys(t.Bidders)
	}))
	municipalities := lo.Uniq(lo.Map(tenders, func(t model.Tender, _ int) string {
		return t.Municipality.Name
	}))

	if n, err := ts.LoadCounter(store.KeyRecyclerCount); err == nil && n == 0 {
		if err := ts.SaveCounter(store.KeyRecyclerCount, len(recyclers)); err != nil {
			utils.Warn("could not seed recycler counter", map[string]any{"error": err.Error()})
		}
	}
	if n, err := ts.LoadCounter(store.KeyMunicipalityCount); err == nil && n == 0 {
		if err := ts.SaveCounter(store.KeyMunicipalityCount, len(municipalities)); err != nil {
			utils.Warn("could not seed municipality counter", map[string]any{"error": err.Error()})
		}
	}
}
