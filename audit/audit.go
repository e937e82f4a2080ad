// Package audit implements the Decision Audit Log (C6): an append-only,
// JSON-line record of each decision tick for parity debugging. Grounded
// on host/logger/logger.go's JSON-line Emit/append-only file writer,
// tolerant of I/O failure without affecting the decision.
package audit

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"watchcore/integrator"
)

// Record is the full persisted shape of one decision, per §4.6.
type Record struct {
	DecisionID  string `json:"decision_id"`
	TimestampMs int64  `json:"timestamp_ms"`
	MarketKey   string `json:"market_key"`

	UpPrice     float64 `json:"up_price"`
	DownPrice   float64 `json:"down_price"`
	PriceSource string  `json:"price_source"`

	PriceBucketLabel  string  `json:"price_bucket_label,omitempty"`
	ConditioningLabel string  `json:"conditioning_label,omitempty"`
	InventoryRatio    float64 `json:"inventory_ratio"`

	EntryUpQualifies   bool   `json:"entry_up_qualifies"`
	EntryUpReason      string `json:"entry_up_reason"`
	EntryDownQualifies bool   `json:"entry_down_qualifies"`
	EntryDownReason    string `json:"entry_down_reason"`

	ShouldTrade  bool    `json:"should_trade"`
	Side         string  `json:"side,omitempty"`
	Reason       string  `json:"reason"`
	RawSize      float64 `json:"raw_size"`
	CappedSize   float64 `json:"capped_size"`
	SizeTableKey string  `json:"size_table_key,omitempty"`

	InvUpShares   float64 `json:"inv_up_shares"`
	InvDownShares float64 `json:"inv_down_shares"`
	AvgCostUp     float64 `json:"avg_cost_up"`
	AvgCostDown   float64 `json:"avg_cost_down"`

	ExecutionModel    string  `json:"execution_model"`
	SnapshotSidePrice float64 `json:"snapshot_side_price"`
	FillPrice         float64 `json:"fill_price"`
	FillBias          float64 `json:"fill_bias,omitempty"`
	SlippageOffset    float64 `json:"slippage_offset,omitempty"`
}

// FromDecision converts an integrator.Decision into its persisted Record.
func FromDecision(d integrator.Decision) Record {
	side := ""
	if d.Side != 0 {
		side = d.Side.String()
	}
	return Record{
		DecisionID:         d.DecisionID,
		TimestampMs:        d.TimestampMs,
		MarketKey:          string(d.MarketKey),
		UpPrice:            d.UpPrice,
		DownPrice:          d.DownPrice,
		PriceSource:        d.PriceSource,
		PriceBucketLabel:   d.PriceBucketLabel,
		ConditioningLabel:  d.ConditioningLabel,
		InventoryRatio:     d.InventoryRatio,
		EntryUpQualifies:   d.EntrySignals.Up.Qualifies,
		EntryUpReason:      string(d.EntrySignals.Up.Reason),
		EntryDownQualifies: d.EntrySignals.Down.Qualifies,
		EntryDownReason:    string(d.EntrySignals.Down.Reason),
		ShouldTrade:        d.ShouldTrade,
		Side:               side,
		Reason:             string(d.Reason),
		RawSize:            d.RawSize,
		CappedSize:         d.CappedSize,
		SizeTableKey:       d.SizeTableKey,
		InvUpShares:        d.Inventory.UpShares,
		InvDownShares:      d.Inventory.DownShares,
		AvgCostUp:          d.Inventory.AvgCostUp,
		AvgCostDown:        d.Inventory.AvgCostDown,
		ExecutionModel:     string(d.ExecutionModel),
		SnapshotSidePrice:  d.SnapshotSidePrice,
		FillPrice:          d.FillPrice,
		FillBias:           d.FillBias,
		SlippageOffset:     d.SlippageOffset,
	}
}

// Log is an append-only JSONL writer. The zero value is not usable;
// construct with New or Open.
type Log struct {
	mu sync.Mutex
	w  io.Writer
	c  io.Closer
}

// New wraps an existing writer (e.g. for tests).
func New(w io.Writer) *Log { return &Log{w: w} }

// Open opens (creating if needed) a file at path for append-only writes.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Log{w: f, c: f}, nil
}

// Close releases the underlying file handle, if any.
func (l *Log) Close() error {
	if l == nil || l.c == nil {
		return nil
	}
	return l.c.Close()
}

// Append writes one decision record as a JSON line. I/O failures are
// swallowed — per §4.6, audit writes must not affect the decision.
func (l *Log) Append(d integrator.Decision) {
	if l == nil {
		return
	}
	record := FromDecision(d)
	b, err := json.Marshal(record)
	if err != nil {
		return
	}
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(b)
}
