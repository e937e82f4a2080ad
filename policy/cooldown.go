package policy

import (
	"math"

	"watchcore/features"
	"watchcore/market"
	"watchcore/params"
)

// CooldownOk implements the cooldown gate (§4.4.6). side is the candidate
// side under evaluation, used to pick the side-specific delta for the
// price-move check (falling back to the preserved Delta5sSide quirk for
// DOWN, same as the entry checks).
func CooldownOk(side market.Side, lastTradeTs int64, hasLastTradeTs bool, nowMs int64, f features.Features, inv market.Inventory, cp params.CooldownParams) bool {
	if !hasLastTradeTs {
		return true
	}

	if cp.HasTimeCooldown {
		elapsedSeconds := float64(nowMs-lastTradeTs) / 1000
		if elapsedSeconds < cp.TimeCooldownSeconds {
			return false
		}
	}

	if cp.PriceMoveThreshold != 0 {
		withinFiveSeconds := nowMs-lastTradeTs <= 5000
		if withinFiveSeconds {
			delta, ok := sideDelta5s(side, f)
			if ok && math.Abs(delta) < cp.PriceMoveThreshold {
				return false
			}
		}
	}

	if cp.HasInventoryLockout {
		total := inv.Total()
		if total > 0 {
			largerShare := math.Max(inv.UpShares, inv.DownShares) / total
			if largerShare > cp.InventoryLockoutThreshold {
				return false
			}
		}
	}

	return true
}
