package policy

import (
	"watchcore/features"
	"watchcore/market"
	"watchcore/params"
)

// SideEntryResult is the per-side outcome of check_side_entry.
type SideEntryResult struct {
	Qualifies bool
	Reason    Reason
}

// EntryResult is the outcome of entry_signal (§4.4.1).
type EntryResult struct {
	ShouldTrade bool
	Side        market.Side
	Reason      Reason
}

// sideDelta5s returns the delta_5s value used for a side's momentum/
// reversion check. DOWN uses Delta5sSide (== Delta5sUp) and does not
// consult Delta5sDown, per the preserved quirk of §9.
func sideDelta5s(side market.Side, f features.Features) (float64, bool) {
	if !f.HasDelta5s {
		return 0, false
	}
	if side == market.Down {
		return f.Delta5sSide, true
	}
	return f.Delta5sUp, true
}

func inBand(price float64, min, max *float64) bool {
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}

// CheckSideEntry evaluates whether side qualifies to enter, given the
// shared entry_params. §4.4.1.
func CheckSideEntry(side market.Side, upPrice, downPrice float64, f features.Features, ep params.EntryParams) SideEntryResult {
	var price float64
	var min, max *float64
	var inBandReason, outOfBandReason Reason
	switch side {
	case market.Up:
		price, min, max = upPrice, ep.UpPriceMin, ep.UpPriceMax
		inBandReason, outOfBandReason = ReasonUpPriceBand, ReasonUpPriceNotInBand
	case market.Down:
		price, min, max = downPrice, ep.DownPriceMin, ep.DownPriceMax
		inBandReason, outOfBandReason = ReasonDownPriceBand, ReasonDownPriceNotInBand
	default:
		return SideEntryResult{Qualifies: false, Reason: ReasonNoBandMatch}
	}

	if min == nil && max == nil {
		return SideEntryResult{Qualifies: false, Reason: outOfBandReason}
	}
	if !inBand(price, min, max) {
		return SideEntryResult{Qualifies: false, Reason: outOfBandReason}
	}

	switch ep.Mode {
	case params.EntryModeMomentum:
		delta, ok := sideDelta5s(side, f)
		if ok && delta >= ep.MomentumThreshold {
			return SideEntryResult{Qualifies: true, Reason: ReasonMomentumMet}
		}
		return SideEntryResult{Qualifies: false, Reason: ReasonMomentumNotMet}
	case params.EntryModeReversion:
		delta, ok := sideDelta5s(side, f)
		if ok && delta <= -ep.MomentumThreshold {
			return SideEntryResult{Qualifies: true, Reason: ReasonReversionMet}
		}
		return SideEntryResult{Qualifies: false, Reason: ReasonReversionNotMet}
	default:
		return SideEntryResult{Qualifies: true, Reason: inBandReason}
	}
}

// EntrySignal runs check_side_entry for both sides. If exactly one side
// qualifies, it is the resolved candidate. If both qualify, ShouldTrade is
// true but Side is SideNone — resolving between two qualifying sides is
// SelectSide's job (§4.4.2), which the Integrator invokes with the
// returned up/down results. If neither qualifies, ShouldTrade is false.
func EntrySignal(upPrice, downPrice float64, f features.Features, ep params.EntryParams, hasEntryParams bool) (up, down SideEntryResult, result EntryResult) {
	if !hasEntryParams {
		return SideEntryResult{}, SideEntryResult{}, EntryResult{Reason: ReasonNoEntryParams}
	}

	up = CheckSideEntry(market.Up, upPrice, downPrice, f, ep)
	down = CheckSideEntry(market.Down, upPrice, downPrice, f, ep)

	switch {
	case up.Qualifies && !down.Qualifies:
		return up, down, EntryResult{ShouldTrade: true, Side: market.Up, Reason: up.Reason}
	case down.Qualifies && !up.Qualifies:
		return up, down, EntryResult{ShouldTrade: true, Side: market.Down, Reason: down.Reason}
	case up.Qualifies && down.Qualifies:
		return up, down, EntryResult{ShouldTrade: true, Side: market.SideNone, Reason: up.Reason}
	default:
		return up, down, EntryResult{Reason: ReasonNoBandMatch}
	}
}
