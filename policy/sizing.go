package policy

import (
	"fmt"
	"math"

	"watchcore/market"
	"watchcore/params"
)

// bucketLabel is grounded on the pandas half-open-interval labeling
// convention carried by the analytics pipeline (§9 Design Note: labels
// are an implementation detail for I/O, integer indices internally).
// Internally the leftmost bucket's assignment boundary is effectively
// open below edges[0] (prices at or below it still clamp to bucket 0 per
// bucketIndex), but the persisted/looked-up label uses the edges exactly
// as configured, matching the parameter file's own table keys.
func bucketLabel(edges []float64, index int) string {
	lo := edges[index]
	hi := edges[index+1]
	return fmt.Sprintf("(%s, %s]", formatEdge(lo), formatEdge(hi))
}

func formatEdge(v float64) string {
	return fmt.Sprintf("%g", v)
}

// bucketIndex finds i such that price ∈ (edges[i], edges[i+1]], clamping
// to bucket 0 at-or-below edges[0] and to the last bucket above edges[-1].
func bucketIndex(edges []float64, price float64) int {
	if price <= edges[0] {
		return 0
	}
	last := len(edges) - 2
	for i := 0; i <= last; i++ {
		if price > edges[i] && price <= edges[i+1] {
			return i
		}
	}
	return last
}

func sidePrice(side market.Side, upPrice, downPrice float64) float64 {
	if side == market.Down {
		return downPrice
	}
	return upPrice
}

// inventoryBucketIndex finds the first i with thresholds[i+1] >= ratio,
// else the last bucket, per §4.4.3 step 3.
func inventoryBucketIndex(thresholds []float64, ratio float64) int {
	if len(thresholds) < 2 {
		return 0
	}
	for i := 0; i < len(thresholds)-1; i++ {
		if thresholds[i+1] >= ratio {
			return i
		}
	}
	return len(thresholds) - 2
}

// SizeResult is the outcome of a size lookup, carrying the bucket/table
// identifiers an audit record needs alongside the resolved size.
type SizeResult struct {
	Size              float64
	PriceBucketLabel  string
	ConditioningLabel string
	SizeTableKey      string
}

// SizeForTrade implements size_for_trade (§4.4.3): a bucketed lookup,
// optionally conditioned on inventory_imbalance_ratio, with a documented
// fallback chain and rounding to 4 decimals.
func SizeForTrade(upPrice, downPrice float64, sp params.SizeParams, side market.Side, inv market.Inventory) SizeResult {
	if len(sp.BinEdges) < 2 {
		return SizeResult{Size: 1.0}
	}

	price := sidePrice(side, upPrice, downPrice)
	idx := bucketIndex(sp.BinEdges, price)
	label := bucketLabel(sp.BinEdges, idx)

	if sp.ConditioningVar != "inventory_imbalance_ratio" {
		if v, ok := sp.SizeTable1D[label]; ok {
			return SizeResult{Size: round4(v), PriceBucketLabel: label, SizeTableKey: label}
		}
		return fallbackSize(sp, label)
	}

	ratio := inv.ImbalanceRatio(1e-9)
	invIdx := inventoryBucketIndex(sp.InventoryBucketThresholds, ratio)
	if invIdx >= 0 && invIdx < len(sp.InventoryBuckets) {
		conditioningLabel := sp.InventoryBuckets[invIdx]
		key := label + "|" + conditioningLabel
		if v, ok := sp.SizeTable[key]; ok {
			return SizeResult{Size: round4(v), PriceBucketLabel: label, ConditioningLabel: conditioningLabel, SizeTableKey: key}
		}
	}

	// Fallback 1: other inventory buckets for the same price label.
	for _, bucketName := range sp.InventoryBuckets {
		key := label + "|" + bucketName
		if v, ok := sp.SizeTable[key]; ok {
			return SizeResult{Size: round4(v), PriceBucketLabel: label, ConditioningLabel: bucketName, SizeTableKey: key}
		}
	}

	return fallbackSize(sp, label)
}

// fallbackSize implements the remaining §4.4.3 step 4 chain once the
// inventory-conditioned lookups (2D table) have missed: size_table_1d[label]
// first, then median of all sizes in size_table, then median of all sizes
// in size_table_1d, then 1.0.
func fallbackSize(sp params.SizeParams, label string) SizeResult {
	if v, ok := sp.SizeTable1D[label]; ok {
		return SizeResult{Size: round4(v), PriceBucketLabel: label, SizeTableKey: label}
	}
	if len(sp.SizeTable) > 0 {
		values := make([]float64, 0, len(sp.SizeTable))
		for _, v := range sp.SizeTable {
			values = append(values, v)
		}
		return SizeResult{Size: round4(params.Median(values)), PriceBucketLabel: label}
	}
	if len(sp.SizeTable1D) > 0 {
		values := make([]float64, 0, len(sp.SizeTable1D))
		for _, v := range sp.SizeTable1D {
			values = append(values, v)
		}
		return SizeResult{Size: round4(params.Median(values)), PriceBucketLabel: label}
	}
	return SizeResult{Size: 1.0, PriceBucketLabel: label}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
