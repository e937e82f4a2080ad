package policy

import "watchcore/params"

// CadenceOk implements cadence_ok (§4.4.5). recentCountLastSec and
// recentCountLastMin are the Cadence ring's CountSince results over the
// respective windows, computed by the caller (the Integrator owns the
// ring; this package stays state-free).
func CadenceOk(lastTradeTs int64, hasLastTradeTs bool, recentCountLastSec, recentCountLastMin int, cp params.CadenceParams, nowMs int64) bool {
	if hasLastTradeTs && cp.MinInterTradeMs > 0 && nowMs-lastTradeTs < cp.MinInterTradeMs {
		return false
	}
	if cp.MaxTradesPerSec > 0 && recentCountLastSec >= cp.MaxTradesPerSec {
		return false
	}
	if cp.MaxTradesPerMin > 0 && recentCountLastMin >= cp.MaxTradesPerMin {
		return false
	}
	return true
}
