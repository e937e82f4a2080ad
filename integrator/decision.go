package integrator

import (
	"watchcore/market"
	"watchcore/params"
	"watchcore/policy"
)

// EntrySignals carries the per-side entry-check outcomes for audit
// enrichment, per §4.6's "per-side entry signals".
type EntrySignals struct {
	Up   policy.SideEntryResult
	Down policy.SideEntryResult
}

// Decision is the outcome of one should_trade tick, carrying both the
// external-facing fields (§6 Execution egress) and the audit-only
// enrichment fields consumed by the audit package (§4.6).
type Decision struct {
	DecisionID  string
	MarketKey   market.Key
	TimestampMs int64
	ShouldTrade bool
	Side        market.Side
	Shares      float64
	FillPrice   float64
	Reason      policy.Reason

	UpPrice           float64
	DownPrice         float64
	PriceSource       string
	PriceBucketLabel  string
	ConditioningLabel string
	InventoryRatio    float64
	EntrySignals      EntrySignals
	RawSize           float64
	CappedSize        float64
	SizeTableKey      string
	Inventory         market.Inventory
	ExecutionModel    params.ExecutionModelType
	SnapshotSidePrice float64
	FillBias          float64
	SlippageOffset    float64
}

func noTrade(marketKey market.Key, nowMs int64, decisionID string, reason policy.Reason) Decision {
	return Decision{
		DecisionID:  decisionID,
		MarketKey:   marketKey,
		TimestampMs: nowMs,
		ShouldTrade: false,
		Reason:      reason,
	}
}
