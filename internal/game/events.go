package game

import "math/rand"

// EventTemplate is a reason paired with an inclusive draw range.
type EventTemplate struct {
	Reason string
	Min    int64
	Max    int64
}

var profitEvents = []EventTemplate{
	{"Advertising revenue is booming", 500, 2000},
	{"New product is a smash hit", 1000, 3000},
	{"Service contract signed", 800, 2500},
	{"Repeat customers on the rise", 600, 1800},
	{"Landed a major contract", 1500, 4000},
}

var lossEvents = []EventTemplate{
	{"Advertising spend", 300, 1500},
	{"Client entertainment expenses", 200, 1000},
	{"Equipment maintenance costs", 400, 1800},
	{"Payroll costs increased", 500, 2000},
	{"Complaint handling costs", 300, 1200},
}

const (
	debtMin = int64(1000)
	debtMax = int64(5000)

	offerMin = int64(1000)
	offerMax = int64(3000)
)

var offerKinds = []AssetKind{AssetProperty, AssetInventory}

// drawAmount returns a uniform integer in [min, max].
func drawAmount(rng *rand.Rand, min, max int64) int64 {
	return min + rng.Int63n(max-min+1)
}

func (t EventTemplate) draw(rng *rand.Rand) int64 {
	return drawAmount(rng, t.Min, t.Max)
}
