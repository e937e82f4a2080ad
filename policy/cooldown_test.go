package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchcore/features"
	"watchcore/market"
	"watchcore/params"
)

func TestCooldownOkWithNoPriorTradeAlwaysPasses(t *testing.T) {
	ok := CooldownOk(market.Up, 0, false, 1000, features.Features{}, market.Inventory{}, params.CooldownParams{HasTimeCooldown: true, TimeCooldownSeconds: 60})
	assert.True(t, ok)
}

func TestCooldownBlocksWithinTimeWindow(t *testing.T) {
	cp := params.CooldownParams{HasTimeCooldown: true, TimeCooldownSeconds: 10}
	ok := CooldownOk(market.Up, 1000, true, 5000, features.Features{}, market.Inventory{}, cp)
	assert.False(t, ok)
}

func TestCooldownPassesOnceTimeWindowElapsed(t *testing.T) {
	cp := params.CooldownParams{HasTimeCooldown: true, TimeCooldownSeconds: 10}
	ok := CooldownOk(market.Up, 1000, true, 12000, features.Features{}, market.Inventory{}, cp)
	assert.True(t, ok)
}

func TestCooldownBlocksOnInsufficientPriceMove(t *testing.T) {
	cp := params.CooldownParams{PriceMoveThreshold: 0.05}
	f := features.Features{HasDelta5s: true, Delta5sUp: 0.01, Delta5sSide: 0.01}
	ok := CooldownOk(market.Up, 1000, true, 3000, f, market.Inventory{}, cp)
	assert.False(t, ok)
}

func TestCooldownAllowsSufficientPriceMove(t *testing.T) {
	cp := params.CooldownParams{PriceMoveThreshold: 0.05}
	f := features.Features{HasDelta5s: true, Delta5sUp: 0.1, Delta5sSide: 0.1}
	ok := CooldownOk(market.Up, 1000, true, 3000, f, market.Inventory{}, cp)
	assert.True(t, ok)
}

func TestCooldownBlocksOnInventoryLockout(t *testing.T) {
	cp := params.CooldownParams{HasInventoryLockout: true, InventoryLockoutThreshold: 0.7}
	inv := market.Inventory{UpShares: 9, DownShares: 1}
	ok := CooldownOk(market.Up, 1000, true, 1100, features.Features{}, inv, cp)
	assert.False(t, ok)
}
