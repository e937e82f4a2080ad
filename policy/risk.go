package policy

import (
	"watchcore/market"
	"watchcore/params"
)

// RiskOk implements the risk gate (§4.4.7).
func RiskOk(tradesThisSession int, inv market.Inventory, rp params.RiskParams) bool {
	if rp.MaxTradesPerSession > 0 && tradesThisSession >= rp.MaxTradesPerSession {
		return false
	}
	if total := inv.Total(); rp.MaxImbalanceRatio > 0 && total > 0 {
		largerShare := inv.UpShares
		if inv.DownShares > largerShare {
			largerShare = inv.DownShares
		}
		if largerShare/total > rp.MaxImbalanceRatio {
			return false
		}
	}
	if rp.MaxExposureUpShares > 0 && inv.UpShares > rp.MaxExposureUpShares {
		return false
	}
	if rp.MaxExposureDownShares > 0 && inv.DownShares > rp.MaxExposureDownShares {
		return false
	}
	return true
}
