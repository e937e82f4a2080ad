package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchcore/market"
	"watchcore/params"
)

func TestInventoryOkAndRebalanceBlocksAtTotalCap(t *testing.T) {
	ip := params.InventoryParams{MaxTotalShares: 50}
	inv := market.Inventory{UpShares: 30, DownShares: 25}
	side := InventoryOkAndRebalance(inv, ip, market.Up)
	assert.Equal(t, market.SideNone, side)
}

func TestInventoryOkAndRebalanceBlocksAtPerSideCap(t *testing.T) {
	ip := params.InventoryParams{MaxTotalShares: 1000, MaxUpShares: 40}
	inv := market.Inventory{UpShares: 40, DownShares: 0}
	side := InventoryOkAndRebalance(inv, ip, market.Up)
	assert.Equal(t, market.SideNone, side)
}

func TestInventoryOkAndRebalancePassesThrough(t *testing.T) {
	ip := params.InventoryParams{MaxTotalShares: 1000, MaxUpShares: 1000, MaxDownShares: 1000}
	inv := market.Inventory{UpShares: 10, DownShares: 10}
	side := InventoryOkAndRebalance(inv, ip, market.Down)
	assert.Equal(t, market.Down, side)
}
