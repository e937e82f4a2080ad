// Package storage supplies an optional Postgres sink that
// record_trade_execution's caller can additionally report completed
// fills to. Persistence of trades is an explicit Non-goal of the core
// itself; this package is the documented external collaborator that
// owns it, grounded on monitor/market/repository/repository.go's
// pgxpool-backed upsert-repository pattern.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"watchcore/market"
)

// TradeWriter persists confirmed executions. The zero value is not
// usable; construct with NewTradeWriter.
type TradeWriter struct {
	pool *pgxpool.Pool
}

// NewTradeWriter wraps an existing pool (callers own its lifecycle).
func NewTradeWriter(pool *pgxpool.Pool) *TradeWriter {
	return &TradeWriter{pool: pool}
}

// Connect opens a pool for connString and wraps it.
func Connect(ctx context.Context, connString string) (*TradeWriter, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect trade writer: %w", err)
	}
	return NewTradeWriter(pool), nil
}

// Close releases the underlying pool.
func (w *TradeWriter) Close() {
	if w != nil && w.pool != nil {
		w.pool.Close()
	}
}

// WriteExecution upserts one confirmed execution. Takes
// record_trade_execution's (market_key, now, side, shares, cost) inputs
// (§6) plus the decision id, which is the upsert key; cost need not equal
// shares * fill_price.
func (w *TradeWriter) WriteExecution(ctx context.Context, key market.Key, nowMs int64, side market.Side, shares, cost float64, decisionID string) error {
	const stmt = `
		INSERT INTO trade_executions (decision_id, market_key, executed_at_ms, side, shares, cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (decision_id) DO UPDATE SET
			shares = EXCLUDED.shares,
			cost   = EXCLUDED.cost`
	_, err := w.pool.Exec(ctx, stmt, decisionID, string(key), nowMs, side.String(), shares, cost)
	if err != nil {
		return fmt.Errorf("write trade execution: %w", err)
	}
	return nil
}
