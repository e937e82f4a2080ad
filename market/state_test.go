package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryRecordUpdatesAverageCost(t *testing.T) {
	var inv Inventory
	inv.Record(Up, 10, 3.0)
	inv.Record(Up, 10, 5.0)
	assert.Equal(t, 20.0, inv.UpShares)
	assert.InDelta(t, 0.4, inv.AvgCostUp, 1e-9)
}

func TestInventoryImbalanceRatio(t *testing.T) {
	inv := Inventory{UpShares: 50, DownShares: 100}
	assert.InDelta(t, 0.5, inv.ImbalanceRatio(1e-9), 1e-9)
}

func TestCadenceCountSince(t *testing.T) {
	c := NewCadence(10)
	c.RecordTrade(995)
	c.RecordTrade(998)
	assert.Equal(t, 2, c.CountSince(0, 1000))
	assert.Equal(t, 0, c.CountSince(2000, 3000))
}

func TestCadenceRingEviction(t *testing.T) {
	c := NewCadence(2)
	c.RecordTrade(1)
	c.RecordTrade(2)
	c.RecordTrade(3)
	assert.Equal(t, 2, c.CountSince(0, 10))
	assert.Equal(t, 0, c.CountSince(0, 1))
}
