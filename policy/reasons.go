// Package policy implements the Policy Engine (C3): a set of pure,
// deterministic functions over tape state, features, parameters, and
// inventory, with no internal state and no I/O. Grounded on
// original_source/watch_bot_analyzer/src/infer.py's bucket/label
// conventions and gate ordering, and on host/library/models/orderbook.go's
// BestBid/BestAsk/MidPrice arithmetic pattern for simulate_fill_price.
package policy

// Reason is the closed set of decision reasons a Decision may carry.
// Every Decision carries exactly one.
type Reason string

const (
	ReasonDataQualityFilterFailed Reason = "data_quality_filter_failed"
	ReasonCooldownBlocked         Reason = "cooldown_blocked"
	ReasonCadenceBlocked          Reason = "cadence_blocked"
	ReasonNoEntryParams           Reason = "no_entry_params"
	ReasonNoBandMatch             Reason = "no_band_match"
	ReasonUpPriceNotInBand        Reason = "up_price_not_in_band"
	ReasonDownPriceNotInBand      Reason = "down_price_not_in_band"
	ReasonMomentumNotMet          Reason = "momentum_not_met"
	ReasonReversionNotMet         Reason = "reversion_not_met"
	ReasonInventoryLimitExceeded  Reason = "inventory_limit_exceeded"
	ReasonRiskLimitExceeded       Reason = "risk_limit_exceeded"
	ReasonUpPriceBand             Reason = "up_price_band"
	ReasonDownPriceBand           Reason = "down_price_band"
	ReasonMomentumMet             Reason = "momentum_met"
	ReasonReversionMet            Reason = "reversion_met"
)
