package policy

import (
	"math"

	"watchcore/features"
	"watchcore/market"
	"watchcore/params"
)

// SelectSide resolves which side to trade when both up and down qualify
// per check_side_entry, applying side_selection_params.mode (§4.4.2). If
// only one side qualifies, that side is returned directly by the caller
// before this is even reached; SelectSide assumes both qualify.
func SelectSide(upPrice, downPrice float64, f features.Features, inv market.Inventory, sp params.SideSelectionParams) market.Side {
	switch sp.Mode {
	case params.SideSelectionEdgeDriven:
		return edgeDrivenSide(upPrice, downPrice)
	case params.SideSelectionMomentumDriven:
		if f.HasDelta5s {
			if f.Delta5sSide > 0.001 {
				return market.Up
			}
			if f.Delta5sSide < -0.001 {
				return market.Down
			}
		}
		return inventoryDrivenSide(upPrice, downPrice, inv)
	case params.SideSelectionFixedPreference:
		if sp.PreferredSide != market.SideNone {
			return sp.PreferredSide
		}
		return inventoryDrivenSide(upPrice, downPrice, inv)
	case params.SideSelectionAlternating:
		return inventoryDrivenSide(upPrice, downPrice, inv)
	default: // inventory_driven, mixed, and any unrecognized mode.
		return inventoryDrivenSide(upPrice, downPrice, inv)
	}
}

// inventoryDrivenSide chooses the side that brings inv_up/max(inv_down,ε)
// closer to 1.0; ties break toward the side with greater |price - 0.5|.
// Distance is measured in log-ratio space rather than linear space: for a
// ratio r, |ln(r)| is symmetric under r -> 1/r, so adding a share to the
// underweight side and adding one to the overweight side are weighed the
// same way, and balanced inventory gives equal distances (linear |r-1| is
// not symmetric this way and never ties). Distances within tieTolerance of
// each other count as a tie, since ln(11/10) and |ln(10/11)| differ in the
// last bit in float64.
func inventoryDrivenSide(upPrice, downPrice float64, inv market.Inventory) market.Side {
	const epsilon = 1e-9
	const tieTolerance = 1e-12
	ratioIfUp := (inv.UpShares + 1) / math.Max(inv.DownShares, epsilon)
	ratioIfDown := inv.UpShares / math.Max(inv.DownShares+1, epsilon)
	distUp := math.Abs(math.Log(math.Max(ratioIfUp, epsilon)))
	distDown := math.Abs(math.Log(math.Max(ratioIfDown, epsilon)))
	switch {
	case distUp < distDown-tieTolerance:
		return market.Up
	case distDown < distUp-tieTolerance:
		return market.Down
	default:
		return edgeDrivenSide(upPrice, downPrice)
	}
}

// edgeDrivenSide chooses the side with greater |price - 0.5|.
func edgeDrivenSide(upPrice, downPrice float64) market.Side {
	if math.Abs(upPrice-0.5) >= math.Abs(downPrice-0.5) {
		return market.Up
	}
	return market.Down
}
