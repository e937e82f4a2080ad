package policy

import (
	"math"

	"watchcore/market"
	"watchcore/params"
)

// QualityFilterOk implements the quality filter (§4.4.8). prev is the
// Last Price Snapshot; hasPrev is false on a market's first tick. A sum
// deviation equal to MaxPriceSumDeviation passes; the comparison allows
// 1e-9 of floating-point error so that e.g. 0.51+0.51 against 0.02 passes.
func QualityFilterOk(now market.TapeState, prev market.TapeState, hasPrev bool, qp params.QualityFilterParams) bool {
	const sumTolerance = 1e-9
	sumDeviation := math.Abs(now.UpPrice + now.DownPrice - 1)
	if qp.MaxPriceSumDeviation > 0 && sumDeviation > qp.MaxPriceSumDeviation+sumTolerance {
		return false
	}
	if !hasPrev {
		return true
	}

	if qp.TimestampJumpThresholdSeconds > 0 {
		elapsedSeconds := float64(now.TimestampMs-prev.TimestampMs) / 1000
		if elapsedSeconds > qp.TimestampJumpThresholdSeconds {
			return false
		}
	}

	if qp.PriceGapThreshold > 0 {
		upGap := math.Abs(now.UpPrice - prev.UpPrice)
		downGap := math.Abs(now.DownPrice - prev.DownPrice)
		gap := upGap
		if downGap > gap {
			gap = downGap
		}
		if gap > qp.PriceGapThreshold {
			return false
		}
	}

	return true
}
