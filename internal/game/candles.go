package game

import (
	"math"
	"math/rand"
)

const (
	basePriceMin = 100.0
	basePriceMax = 500.0

	maxStepReturn = 0.10 // each step moves at most ±10%
	maxWickSpread = 0.05 // wicks extend up to 5% past the body
)

// Candle is one step of the synthetic OHLC price path.
type Candle struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// generateCandles builds the CandleCount-step price path: a base price
// uniform in [100,500), each close derived from its open by a bounded
// multiplicative return, each open chained from the previous close.
func generateCandles(rng *rand.Rand) []Candle {
	candles := make([]Candle, 0, CandleCount)
	open := basePriceMin + rng.Float64()*(basePriceMax-basePriceMin)

	for i := 0; i < CandleCount; i++ {
		if i > 0 {
			open = candles[i-1].Close
		}
		ret := -maxStepReturn + rng.Float64()*2*maxStepReturn
		close := open * (1 + ret)
		high := math.Max(open, close) * (1 + rng.Float64()*maxWickSpread)
		low := math.Min(open, close) * (1 - rng.Float64()*maxWickSpread)

		candles = append(candles, Candle{
			Open:  roundTo2(open),
			High:  roundTo2(high),
			Low:   roundTo2(low),
			Close: roundTo2(close),
		})
	}
	return candles
}

// markValue is the mark-to-model value of an investment at step i: the
// invested amount scaled by the close relative to the first close.
func markValue(invested int64, candles []Candle, i int) float64 {
	return float64(invested) * (candles[i].Close / candles[0].Close)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
