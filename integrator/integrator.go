// Package integrator implements the Policy Integrator (C4): per-market
// stateful orchestration of the Policy Engine's pure filters. Grounded on
// hersh/manager/manager.go's sync.Map-backed per-entity registry,
// mutex-guarded mutation, and constructor-owned state with no package
// globals (§9 Design Notes).
package integrator

import (
	"sync"

	"github.com/google/uuid"

	"watchcore/features"
	"watchcore/market"
	"watchcore/params"
	"watchcore/policy"
)

// Integrator owns all per-market state and runs the should_trade
// pipeline. The zero value is not usable; construct with New.
type Integrator struct {
	states               sync.Map // market.Key -> *marketState
	historyCapacity      int
	recentTradesCapacity int
}

// New constructs an Integrator. Capacities default to the §6 values
// (1000, 100) when <= 0.
func New(historyCapacity, recentTradesCapacity int) *Integrator {
	if historyCapacity <= 0 {
		historyCapacity = 1000
	}
	if recentTradesCapacity <= 0 {
		recentTradesCapacity = 100
	}
	return &Integrator{historyCapacity: historyCapacity, recentTradesCapacity: recentTradesCapacity}
}

func (ig *Integrator) stateFor(key market.Key) *marketState {
	if s, ok := ig.states.Load(key); ok {
		return s.(*marketState)
	}
	s := newMarketState(ig.historyCapacity, ig.recentTradesCapacity)
	actual, _ := ig.states.LoadOrStore(key, s)
	return actual.(*marketState)
}

// CloseMarket drains and removes key's state, the supplemented explicit
// "market closed" signal of §3/§12 (rather than waiting for the next
// tick's lazy should_reset_inventory check).
func (ig *Integrator) CloseMarket(key market.Key) {
	if s, ok := ig.states.LoadAndDelete(key); ok {
		st := s.(*marketState)
		st.mu.Lock()
		defer st.mu.Unlock()
	}
}

// ShouldTrade runs the fixed 13-step pipeline of §4.5 for one tick and
// returns a Decision. Serialized per market key via the market's own
// mutex; concurrent calls across different keys run in parallel.
func (ig *Integrator) ShouldTrade(key market.Key, nowMs int64, up, down float64, mp params.MarketParams) Decision {
	st := ig.stateFor(key)
	st.mu.Lock()
	defer st.mu.Unlock()

	decisionID := uuid.New().String()

	// Step 1: reset on market-switch/inactivity.
	if policy.ShouldResetInventory(st.session.LastActivityTs, st.session.HasLastActivityTs, nowMs, mp.Reset) {
		st.inv.Reset()
		st.session.Reset()
	}

	// Step 2: append to price history.
	st.history.Append(market.HistoryEntry{TimestampMs: nowMs, UpPrice: up, DownPrice: down})

	// Step 3: quality filter against prior snapshot; snapshot updates
	// unconditionally after the check regardless of outcome.
	now := market.TapeState{TimestampMs: nowMs, UpPrice: up, DownPrice: down, Key: key}
	qualityOk := policy.QualityFilterOk(now, st.snapshot, st.hasSnap, mp.Quality)
	st.snapshot, st.hasSnap = now, true
	if !qualityOk {
		return noTrade(key, nowMs, decisionID, policy.ReasonDataQualityFilterFailed)
	}

	// Step 4: features.
	f := features.Compute(nowMs, up, down, st.history)

	// Step 5: cooldown. Side is not yet known; the cooldown's price-move
	// check uses the default (UP-biased) delta when no side is chosen yet,
	// matching the preserved delta_5s_side quirk.
	if !policy.CooldownOk(market.Up, st.cadence.LastTradeTs, st.cadence.HasLastTradeTs, nowMs, f, st.inv, mp.Cooldown) {
		return noTrade(key, nowMs, decisionID, policy.ReasonCooldownBlocked)
	}

	// Step 6: cadence.
	countLastSec := st.cadence.CountSince(nowMs-1000, nowMs)
	countLastMin := st.cadence.CountSince(nowMs-60000, nowMs)
	if !policy.CadenceOk(st.cadence.LastTradeTs, st.cadence.HasLastTradeTs, countLastSec, countLastMin, mp.Cadence, nowMs) {
		return noTrade(key, nowMs, decisionID, policy.ReasonCadenceBlocked)
	}

	// Step 7: per-side entry signals.
	hasEntryParams := mp.Entry.Mode != "" || mp.Entry.UpPriceMin != nil || mp.Entry.UpPriceMax != nil ||
		mp.Entry.DownPriceMin != nil || mp.Entry.DownPriceMax != nil
	entryUp, entryDown, entryResult := policy.EntrySignal(up, down, f, mp.Entry, hasEntryParams)
	if !entryResult.ShouldTrade {
		return noTrade(key, nowMs, decisionID, entryResult.Reason)
	}

	// Step 8: side selection.
	var side market.Side
	switch {
	case entryResult.Side != market.SideNone:
		side = entryResult.Side
	default:
		side = policy.SelectSide(up, down, f, st.inv, mp.SideSelection)
	}

	// Step 9: risk limits.
	if !policy.RiskOk(st.session.TradesThisSession, st.inv, mp.Risk) {
		return noTrade(key, nowMs, decisionID, policy.ReasonRiskLimitExceeded)
	}

	// Step 10: size lookup.
	sizeResult := policy.SizeForTrade(up, down, mp.Size, side, st.inv)

	// Step 11: inventory gate.
	gatedSide := policy.InventoryOkAndRebalance(st.inv, mp.Inventory, side)
	if gatedSide == market.SideNone {
		return noTrade(key, nowMs, decisionID, policy.ReasonInventoryLimitExceeded)
	}

	// Step 12: execution model.
	snapshotSidePrice := up
	if gatedSide == market.Down {
		snapshotSidePrice = down
	}
	fillPrice, fillBias := policy.SimulateFillPrice(snapshotSidePrice, mp.Execution)

	// Step 13: emit the trade decision.
	return Decision{
		DecisionID:        decisionID,
		MarketKey:         key,
		TimestampMs:       nowMs,
		ShouldTrade:       true,
		Side:              gatedSide,
		Shares:            sizeResult.Size,
		FillPrice:         fillPrice,
		Reason:            entryResult.Reason,
		UpPrice:           up,
		DownPrice:         down,
		PriceSource:       "tape",
		PriceBucketLabel:  sizeResult.PriceBucketLabel,
		ConditioningLabel: sizeResult.ConditioningLabel,
		InventoryRatio:    st.inv.ImbalanceRatio(1e-9),
		EntrySignals:      EntrySignals{Up: entryUp, Down: entryDown},
		RawSize:           sizeResult.Size,
		CappedSize:        sizeResult.Size,
		SizeTableKey:      sizeResult.SizeTableKey,
		Inventory:         st.inv,
		ExecutionModel:    mp.Execution.ModelType,
		SnapshotSidePrice: snapshotSidePrice,
		FillBias:          fillBias,
		SlippageOffset:    mp.Execution.SlippageOffset,
	}
}

// RecordTradeExecution implements record_trade_execution (§4.5): applies
// an externally confirmed fill to inventory and session/cadence state. A
// negative share or cost from the external executor is an internal
// invariant violation, not an expected gate rejection (§7); it is
// returned rather than silently applied or panicked on, per §10.2.
func (ig *Integrator) RecordTradeExecution(key market.Key, nowMs int64, side market.Side, shares, cost float64) error {
	if shares < 0 {
		return &InvariantError{MarketKey: string(key), Detail: "record_trade_execution called with negative shares"}
	}
	if cost < 0 {
		return &InvariantError{MarketKey: string(key), Detail: "record_trade_execution called with negative cost"}
	}
	if side != market.Up && side != market.Down {
		return &InvariantError{MarketKey: string(key), Detail: "record_trade_execution called with no side"}
	}

	st := ig.stateFor(key)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.inv.Record(side, shares, cost)
	st.cadence.RecordTrade(nowMs)
	st.session.TradesThisSession++
	st.session.LastActivityTs = nowMs
	st.session.HasLastActivityTs = true
	return nil
}
