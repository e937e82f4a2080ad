// Package params implements the Parameter Store (C1): it loads a
// market-keyed parameter document from disk, validates and normalizes it
// into a strongly typed snapshot, hot-reloads on a poll interval gated by
// file modification time, and notifies subscribers after a successful
// swap. Grounded on the mtime-gated reload pattern of
// monitor/market/polymarket/store/checkpoint.go.
package params

import (
	"watchcore/market"
)

// EntryMode is the closed set of entry-signal modes.
type EntryMode string

const (
	EntryModeMomentum  EntryMode = "momentum"
	EntryModeReversion EntryMode = "reversion"
	EntryModeNone      EntryMode = "none"
)

// SideSelectionMode is the closed set of side-selection strategies.
type SideSelectionMode string

const (
	SideSelectionInventoryDriven  SideSelectionMode = "inventory_driven"
	SideSelectionEdgeDriven       SideSelectionMode = "edge_driven"
	SideSelectionMomentumDriven   SideSelectionMode = "momentum_driven"
	SideSelectionAlternating      SideSelectionMode = "alternating"
	SideSelectionFixedPreference  SideSelectionMode = "fixed_preference"
	SideSelectionMixed            SideSelectionMode = "mixed"
)

// ExecutionModelType is the closed set of fill-price simulation models.
type ExecutionModelType string

const (
	ExecutionSnapshotPrice ExecutionModelType = "snapshot_price"
	ExecutionFixedSlippage ExecutionModelType = "fixed_slippage"
	ExecutionMidPrice      ExecutionModelType = "mid_price"
	ExecutionWorstCase     ExecutionModelType = "worst_case"
)

// EntryParams governs entry_signal and check_side_entry.
type EntryParams struct {
	UpPriceMin        *float64
	UpPriceMax        *float64
	DownPriceMin       *float64
	DownPriceMax       *float64
	Mode               EntryMode
	MomentumWindowS    float64
	MomentumThreshold  float64
}

// SizeParams governs size_for_trade's bucket lookup.
type SizeParams struct {
	BinEdges                  []float64
	SizeTable1D               map[string]float64
	SizeTable                 map[string]float64
	ConditioningVar           string // "" or "inventory_imbalance_ratio"
	InventoryBucketThresholds []float64
	InventoryBuckets          []string
}

// InventoryParams governs inventory_ok_and_rebalance.
type InventoryParams struct {
	MaxUpShares      float64
	MaxDownShares    float64
	MaxTotalShares   float64
	RebalanceRatioR  float64
}

// CadenceParams governs cadence_ok.
type CadenceParams struct {
	MinInterTradeMs int64
	MaxTradesPerSec int
	MaxTradesPerMin int
}

// SideSelectionParams governs side selection.
type SideSelectionParams struct {
	Mode           SideSelectionMode
	PreferredSide  market.Side
	ConfidenceGap  float64
}

// ExecutionParams governs simulate_fill_price.
type ExecutionParams struct {
	ModelType      ExecutionModelType
	SlippageOffset float64
	FillBiasMedian float64
	FillBiasP75    float64
}

// CooldownParams governs the cooldown gate.
type CooldownParams struct {
	HasTimeCooldown          bool
	TimeCooldownSeconds      float64
	PriceMoveThreshold       float64
	HasInventoryLockout      bool
	InventoryLockoutThreshold float64
}

// RiskParams governs the risk gate.
type RiskParams struct {
	MaxTradesPerSession   int
	MaxImbalanceRatio     float64
	MaxExposureUpShares   float64
	MaxExposureDownShares float64
}

// QualityFilterParams governs the quality filter.
type QualityFilterParams struct {
	MaxPriceSumDeviation          float64
	TimestampJumpThresholdSeconds float64
	PriceGapThreshold             float64
}

// ResetParams governs should_reset_inventory.
type ResetParams struct {
	ResetsOnMarketSwitch     bool
	ResetsOnInactivity       bool
	InactivityThresholdHours float64
}

// Confidence is the supplemented, policy-inert confidence metadata block
// carried through from the analytics pipeline and exposed read-only on
// MarketParams. Never consulted by any gate, and not written to the
// audit record.
type Confidence struct {
	NWatchTrades          int
	EntryRulePrecision    float64
	EntryRuleRecall       float64
	SizeTableBucketVariance float64
}

// MarketParams bundles every parameter section for one market key.
type MarketParams struct {
	Entry         EntryParams
	Size          SizeParams
	Inventory     InventoryParams
	Cadence       CadenceParams
	SideSelection SideSelectionParams
	Execution     ExecutionParams
	Cooldown      CooldownParams
	Risk          RiskParams
	Quality       QualityFilterParams
	Reset         ResetParams
	Confidence    Confidence
	HasConfidence bool
}

// Snapshot is the immutable parameter document, keyed by canonical market
// key. Readers may share a *Snapshot reference without locking; the Store
// never mutates a published Snapshot in place.
type Snapshot struct {
	Markets map[market.Key]MarketParams
}

// defaultMarketParams returns the empty/no-trade default used when a key
// has no section of its own and no fallback is available.
func defaultMarketParams() MarketParams {
	return MarketParams{
		Size: SizeParams{
			SizeTable1D: map[string]float64{},
			SizeTable:   map[string]float64{},
		},
		Inventory: InventoryParams{RebalanceRatioR: 0.6},
	}
}

// clampRebalanceRatio enforces rebalance_ratio_R ∈ (0.5, 1) per §4.1
// validation; values outside the open interval are clamped to its nearest
// representable edge.
func clampRebalanceRatio(r float64) float64 {
	const lo = 0.5 + 1e-9
	const hi = 1 - 1e-9
	if r <= 0.5 {
		return lo
	}
	if r >= 1 {
		return hi
	}
	return r
}

// validateBinEdges reports whether edges has length ≥ 2 and is strictly
// increasing, per §4.1; an invalid table falls back to the default share
// of 1.0 handled by the caller in policy.SizeForTrade.
func validateBinEdges(edges []float64) bool {
	if len(edges) < 2 {
		return false
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return false
		}
	}
	return true
}

// isInvalidBinEdges is the negation convenience used during normalization
// to decide whether to drop an invalid size table rather than serve it.
func isInvalidBinEdges(edges []float64) bool { return !validateBinEdges(edges) }

// medianOf returns the median of values, or 0 for an empty slice. Used by
// policy's sizing fallback chain (§4.4.3 step 4), kept here so both
// packages share one implementation without an import cycle risk —
// params has no dependency on policy.
func medianOf(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Median exposes medianOf for the policy package's size-table fallback.
func Median(values []float64) float64 { return medianOf(values) }
