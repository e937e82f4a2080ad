package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchcore/market"
)

func buildHistory(entries ...market.HistoryEntry) *market.History {
	h := market.NewHistory(100)
	for _, e := range entries {
		h.Append(e)
	}
	return h
}

func TestDistanceFrom50AlwaysInRange(t *testing.T) {
	f := Compute(1000, 0.9, 0.1, buildHistory())
	assert.InDelta(t, 0.4, f.DistanceFrom50, 1e-9)
	assert.GreaterOrEqual(t, f.DistanceFrom50, 0.0)
	assert.LessOrEqual(t, f.DistanceFrom50, 0.5)
}

func TestDelta5sWithinWindow(t *testing.T) {
	h := buildHistory(market.HistoryEntry{TimestampMs: 5000, UpPrice: 0.4, DownPrice: 0.6})
	f := Compute(10000, 0.5, 0.5, h)
	assert.True(t, f.HasDelta5s)
	assert.InDelta(t, 0.1, f.Delta5sUp, 1e-9)
	assert.InDelta(t, f.Delta5sUp, f.Delta5sSide, 1e-9)
}

func TestDelta5sOutsideTwiceWindowIsAbsent(t *testing.T) {
	h := buildHistory(market.HistoryEntry{TimestampMs: 0, UpPrice: 0.4, DownPrice: 0.6})
	f := Compute(20000, 0.5, 0.5, h)
	assert.False(t, f.HasDelta5s)
}

func TestDelta5sSideDefaultsToUpEvenForDownQueries(t *testing.T) {
	h := buildHistory(market.HistoryEntry{TimestampMs: 5000, UpPrice: 0.4, DownPrice: 0.3})
	f := Compute(10000, 0.5, 0.7, h)
	require := f.Delta5sUp
	assert.InDelta(t, require, f.Delta5sSide, 1e-9)
	assert.NotEqual(t, f.Delta5sDown, f.Delta5sSide)
}

func TestVolatilityRequiresAtLeastTwoSamples(t *testing.T) {
	h := buildHistory(market.HistoryEntry{TimestampMs: 1000, UpPrice: 0.5})
	f := Compute(1000, 0.5, 0.5, h)
	assert.False(t, f.HasVolatility5s)
}

func TestVolatilityPopulationStdev(t *testing.T) {
	h := buildHistory(
		market.HistoryEntry{TimestampMs: 0, UpPrice: 0.4},
		market.HistoryEntry{TimestampMs: 1000, UpPrice: 0.6},
	)
	f := Compute(5000, 0.5, 0.5, h)
	assert.True(t, f.HasVolatility5s)
	assert.InDelta(t, 0.1, f.Volatility5s, 1e-9)
}

func TestComputeIsPure(t *testing.T) {
	h := buildHistory(market.HistoryEntry{TimestampMs: 5000, UpPrice: 0.4, DownPrice: 0.6})
	a := Compute(10000, 0.5, 0.5, h)
	b := Compute(10000, 0.5, 0.5, h)
	assert.Equal(t, a, b)
}
