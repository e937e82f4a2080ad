package policy

import "watchcore/params"

// ShouldResetInventory implements should_reset_inventory (§4.4.10).
func ShouldResetInventory(lastActivityTs int64, hasLastActivityTs bool, nowMs int64, rp params.ResetParams) bool {
	if !hasLastActivityTs {
		return rp.ResetsOnMarketSwitch
	}
	if rp.ResetsOnInactivity {
		elapsedHours := float64(nowMs-lastActivityTs) / 3.6e6
		if elapsedHours > rp.InactivityThresholdHours {
			return true
		}
	}
	return false
}
