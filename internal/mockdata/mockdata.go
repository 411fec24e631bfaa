// Package mockdata produces the initial auction snapshot when no persisted
// state exists. All randomness flows through an injected source so seeded
// runs and tests are reproducible.
package mockdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/utils"
)

var wasteTypes = []string{"organic", "industrial", "municipal", "recyclable"}

var locations = []string{
	"Mumbai, Maharashtra", "Delhi, NCR", "Bangalore, Karnataka", "Chennai, Tamil Nadu",
	"Kolkata, West Bengal", "Pune, Maharashtra", "Hyderabad, Telangana", "Ahmedabad, Gujarat",
	"Jaipur, Rajasthan", "Lucknow, Uttar Pradesh", "Bhopal, Madhya Pradesh", "Chandigarh, Punjab",
}

var wasteDescriptions = map[string][]string{
	"organic": {
		"Food waste from restaurants and households",
		"Garden waste and agricultural residues",
		"Biodegradable kitchen waste",
		"Organic compost materials",
		"Vegetable and fruit waste from markets",
	},
	"industrial": {
		"Manufacturing waste from textile industry",
		"Construction and demolition debris",
		"Metal scraps from industrial units",
		"Chemical waste containers (empty)",
		"Plastic waste from packaging industry",
	},
	"municipal": {
		"Household waste collection",
		"Street cleaning waste",
		"Public area waste collection",
		"Mixed municipal solid waste",
		"Waste from commercial establishments",
	},
	"recyclable": {
		"Paper and cardboard waste",
		"Plastic bottles and containers",
		"Metal cans and aluminum waste",
		"Glass bottles and jars",
		"Electronic waste components",
	},
}

var bidderNames = []string{
	"Rajesh Kumar", "Priya Sharma", "Amit Patel", "Sunita Singh", "Vikram Gupta",
	"Anita Reddy", "Suresh Yadav", "Kavita Joshi", "Ravi Verma", "Meera Iyer",
	"Arjun Nair", "Deepika Agarwal", "Rohit Jain", "Sneha Desai", "Kiran Rao",
}

// Generator builds tender snapshots from an injected random source and clock.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator. now is typically the engine clock's Now.
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	return &Generator{rng: rng, now: now}
}

// GenerateInitialTenders produces count plausible open tenders with pre-seeded
// bidders and history.
func (g *Generator) GenerateInitialTenders(count int) []model.Tender {
	now := g.now()
	tenders := make([]model.Tender, 0, count)

	for i := 0; i < count; i++ {
		wasteType := wasteTypes[g.rng.Intn(len(wasteTypes))]
		descriptions := wasteDescriptions[wasteType]
		location := locations[g.rng.Intn(len(locations))]
		city := strings.TrimSpace(strings.Split(location, ",")[0])

		startingBid := float64(g.rng.Intn(100000) + 50000)
		tender := model.Tender{
			ID:             i + 1,
			Description:    descriptions[g.rng.Intn(len(descriptions))],
			WasteType:      wasteType,
			Quantity:       g.rng.Intn(100) + 10,
			Location:       location,
			StartingBid:    startingBid,
			CurrentBid:     startingBid,
			Deadline:       now.AddDate(0, 0, g.rng.Intn(30)+1),
			CollectionDate: now.AddDate(0, 0, g.rng.Intn(60)+30),
			Status:         model.StatusOpen,
			Bidders:        make(map[string]model.BidderEntry),
			BiddingHistory: []model.BidEvent{},
			CreatedAt:      now.AddDate(0, 0, -g.rng.Intn(30)),
			Municipality: model.Municipality{
				Name:    fmt.Sprintf("Municipality of %s", city),
				Contact: fmt.Sprintf("+91-%d", g.rng.Int63n(9000000000)+1000000000),
				Email:   fmt.Sprintf("admin@%s.gov.in", strings.ToLower(strings.ReplaceAll(city, " ", ""))),
			},
		}

		g.seedBidders(&tender, now)
		tenders = append(tenders, tender)
	}

	return tenders
}

// seedBidders adds 1-8 historical bids in ascending amounts and timestamps
// so the snapshot respects the monotonic currentBid invariant and the
// chronological-history invariant.
func (g *Generator) seedBidders(t *model.Tender, now time.Time) {
	count := g.rng.Intn(8) + 1
	amount := t.StartingBid
	placedAt := now.Add(-7 * 24 * time.Hour)

	for i := 0; i < count; i++ {
		name := bidderNames[g.rng.Intn(len(bidderNames))]
		amount += float64(g.rng.Intn(5000) + 500)
		placedAt = placedAt.Add(time.Duration(g.rng.Intn(12)+1) * time.Hour)

		t.Bidders[name] = model.BidderEntry{Amount: amount, Timestamp: placedAt}
		t.BiddingHistory = append(t.BiddingHistory, model.BidEvent{
			EventID:   utils.GenerateID(),
			Bidder:    name,
			Amount:    amount,
			Timestamp: placedAt,
			Origin:    model.OriginSynthetic,
		})
		t.CurrentBid = amount
	}
}
