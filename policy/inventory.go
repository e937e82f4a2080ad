package policy

import (
	"watchcore/market"
	"watchcore/params"
)

// InventoryOkAndRebalance implements inventory_ok_and_rebalance (§4.4.4),
// the conservative cap-only variant per the Open Question resolution
// documented in DESIGN.md: no side flipping, no PnL/ask-price awareness.
// Returns the side to trade, or SideNone if blocked.
func InventoryOkAndRebalance(inv market.Inventory, ip params.InventoryParams, proposedSide market.Side) market.Side {
	if ip.MaxTotalShares > 0 && inv.Total() >= ip.MaxTotalShares {
		return market.SideNone
	}
	switch proposedSide {
	case market.Up:
		if ip.MaxUpShares > 0 && inv.UpShares >= ip.MaxUpShares {
			return market.SideNone
		}
	case market.Down:
		if ip.MaxDownShares > 0 && inv.DownShares >= ip.MaxDownShares {
			return market.SideNone
		}
	default:
		return market.SideNone
	}
	return proposedSide
}
