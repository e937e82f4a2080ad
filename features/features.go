// Package features implements the Feature Computer (C2): pure functions
// over a tape state and bounded price history, computing deltas and
// rolling volatility. Grounded on
// original_source/watch_bot_analyzer/src/features.py's compute_price_changes
// and compute_volatility, ported from Python to Go preserving their
// nearest-timestamp-within-2x-window and population-stdev semantics.
package features

import (
	"math"

	"watchcore/market"
)

// Features is the full feature set for one decision tick.
type Features struct {
	DistanceFrom50 float64

	HasDelta1s  bool
	Delta1sUp   float64
	Delta1sDown float64
	Delta1sSide float64

	HasDelta5s  bool
	Delta5sUp   float64
	Delta5sDown float64
	// Delta5sSide is always Delta5sUp, even when evaluating the DOWN side.
	// Preserved observed quirk from the reference implementation; DOWN-side
	// gates fall back to this value when Delta5sDown would otherwise be
	// needed as the "side" delta.
	Delta5sSide float64

	HasDelta30s  bool
	Delta30sUp   float64
	Delta30sDown float64
	Delta30sSide float64

	HasVolatility5s  bool
	Volatility5s     float64
	HasVolatility30s bool
	Volatility30s    float64
}

// windowDelta computes the delta_w_{up,down,side} triple for window
// seconds w against history, or reports no match within 2*w seconds.
func windowDelta(nowMs int64, up, down float64, history *market.History, w int64) (up0, down0 float64, ok bool) {
	if history.Len() == 0 {
		return 0, 0, false
	}
	targetMs := nowMs - 1000*w
	entry, found := history.Nearest(targetMs)
	if !found {
		return 0, 0, false
	}
	diff := entry.TimestampMs - targetMs
	if diff < 0 {
		diff = -diff
	}
	if diff >= 2000*w {
		return 0, 0, false
	}
	return up - entry.UpPrice, down - entry.DownPrice, true
}

// windowVolatility computes the population standard deviation of up_price
// over entries with timestamp in [now-1000w, now], requiring >= 2 samples.
func windowVolatility(nowMs int64, history *market.History, w int64) (float64, bool) {
	loMs := nowMs - 1000*w
	var sum, sumSq float64
	n := 0
	history.ForEach(func(e market.HistoryEntry) {
		if e.TimestampMs < loMs || e.TimestampMs > nowMs {
			return
		}
		sum += e.UpPrice
		sumSq += e.UpPrice * e.UpPrice
		n++
	})
	if n < 2 {
		return 0, false
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance), true
}

// Compute derives Features from the current tape state and price history.
// Pure: identical inputs always yield identical outputs.
func Compute(nowMs int64, upPrice, downPrice float64, history *market.History) Features {
	f := Features{DistanceFrom50: math.Abs(upPrice - 0.5)}

	if up, down, ok := windowDelta(nowMs, upPrice, downPrice, history, 1); ok {
		f.HasDelta1s, f.Delta1sUp, f.Delta1sDown, f.Delta1sSide = true, up, down, up
	}
	if up, down, ok := windowDelta(nowMs, upPrice, downPrice, history, 5); ok {
		f.HasDelta5s, f.Delta5sUp, f.Delta5sDown = true, up, down
		f.Delta5sSide = up
	}
	if up, down, ok := windowDelta(nowMs, upPrice, downPrice, history, 30); ok {
		f.HasDelta30s, f.Delta30sUp, f.Delta30sDown, f.Delta30sSide = true, up, down, up
	}

	if v, ok := windowVolatility(nowMs, history, 5); ok {
		f.HasVolatility5s, f.Volatility5s = true, v
	}
	if v, ok := windowVolatility(nowMs, history, 30); ok {
		f.HasVolatility30s, f.Volatility30s = true, v
	}

	return f
}
