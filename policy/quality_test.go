package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchcore/market"
	"watchcore/params"
)

func TestQualityFilterSumDeviationBoundary(t *testing.T) {
	qp := params.QualityFilterParams{MaxPriceSumDeviation: 0.02}
	now := market.TapeState{UpPrice: 0.51, DownPrice: 0.51, TimestampMs: 1000}
	assert.True(t, QualityFilterOk(now, market.TapeState{}, false, qp))

	now.UpPrice, now.DownPrice = 0.53, 0.53
	assert.False(t, QualityFilterOk(now, market.TapeState{}, false, qp))
}

func TestQualityFilterTimestampJump(t *testing.T) {
	qp := params.QualityFilterParams{TimestampJumpThresholdSeconds: 5}
	prev := market.TapeState{TimestampMs: 0, UpPrice: 0.5, DownPrice: 0.5}
	now := market.TapeState{TimestampMs: 10000, UpPrice: 0.5, DownPrice: 0.5}
	assert.False(t, QualityFilterOk(now, prev, true, qp))
}

func TestQualityFilterPriceGap(t *testing.T) {
	qp := params.QualityFilterParams{PriceGapThreshold: 0.1}
	prev := market.TapeState{TimestampMs: 0, UpPrice: 0.5, DownPrice: 0.5}
	now := market.TapeState{TimestampMs: 1000, UpPrice: 0.7, DownPrice: 0.5}
	assert.False(t, QualityFilterOk(now, prev, true, qp))
}
