// Package core wires the Parameter Store, Policy Integrator, and
// Decision Audit Log into a single value with one constructor and no
// globals, per §9 Design Notes ("A systems-language rewrite should pass
// these explicitly — typically a Core value owning the store, the
// integrator's per-market map, and the audit sink").
package core

import (
	"context"
	"time"

	"watchcore/audit"
	"watchcore/integrator"
	"watchcore/logwire"
	"watchcore/market"
	"watchcore/params"
	"watchcore/policy"
)

// Core owns every stateful collaborator the core needs to run. Construct
// with New; there is no package-level mutable state anywhere in this
// module.
type Core struct {
	Store      *params.Store
	Integrator *integrator.Integrator
	Audit      *audit.Log // nil when audit logging is disabled
	Logger     *logwire.Logger
	normalizer market.Normalizer
}

// Options configures a new Core.
type Options struct {
	ParamsPath           string
	ParamsPollInterval   time.Duration
	HistoryCapacity      int
	RecentTradesCapacity int
	AuditLog             *audit.Log
	Logger               *logwire.Logger
	ParamsNotifier       params.Notifier
}

// New constructs a Core. The parameter store performs one synchronous
// initial load; callers should call Start to begin background polling.
func New(opts Options) *Core {
	var storeOpts []params.StoreOption
	if opts.Logger != nil {
		storeOpts = append(storeOpts, params.WithLogger(opts.Logger))
	}
	if opts.ParamsNotifier != nil {
		storeOpts = append(storeOpts, params.WithNotifier(opts.ParamsNotifier))
	}

	return &Core{
		Store:      params.NewStore(opts.ParamsPath, opts.ParamsPollInterval, storeOpts...),
		Integrator: integrator.New(opts.HistoryCapacity, opts.RecentTradesCapacity),
		Audit:      opts.AuditLog,
		Logger:     opts.Logger,
		normalizer: market.NewNormalizer(),
	}
}

// Tick processes one tape-ingress push through the full pipeline: market
// key normalization, should_trade, and optional audit append. Returns the
// resolved key and decision; an unknown key yields should_trade=false
// with reason no_entry_params and no parameters consulted.
func (c *Core) Tick(marketKeyRaw string, nowMs int64, up, down float64) (market.Key, integrator.Decision) {
	key := c.normalizer.Normalize(marketKeyRaw)
	if !key.Known() {
		return key, integrator.Decision{MarketKey: key, TimestampMs: nowMs, ShouldTrade: false, Reason: policy.ReasonNoEntryParams}
	}

	mp := c.Store.GetMarketParams(key)
	decision := c.Integrator.ShouldTrade(key, nowMs, up, down, mp)

	if c.Audit != nil {
		c.Audit.Append(decision)
	}

	return key, decision
}

// RecordTradeExecution forwards to the Integrator; exposed on Core so
// callers never need to reach into c.Integrator directly.
func (c *Core) RecordTradeExecution(key market.Key, nowMs int64, side market.Side, shares, cost float64) error {
	return c.Integrator.RecordTradeExecution(key, nowMs, side, shares, cost)
}

// CloseMarket forwards to the Integrator's supplemented explicit
// market-closed signal.
func (c *Core) CloseMarket(key market.Key) {
	c.Integrator.CloseMarket(key)
}

// Start begins parameter hot-reload polling.
func (c *Core) Start() {
	c.Store.Start(context.Background())
}

// Stop halts parameter hot-reload polling and closes the audit log.
func (c *Core) Stop() {
	c.Store.Stop()
	if c.Audit != nil {
		_ = c.Audit.Close()
	}
}
