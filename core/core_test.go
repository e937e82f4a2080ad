package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchcore/market"
)

func TestTickUnknownMarketKeyYieldsNoTrade(t *testing.T) {
	c := New(Options{ParamsPath: filepath.Join(t.TempDir(), "absent.json"), HistoryCapacity: 10, RecentTradesCapacity: 10})
	key, decision := c.Tick("SOL_15m", 1000, 0.5, 0.5)
	assert.Equal(t, market.Key("SOL_15m"), key)
	assert.False(t, decision.ShouldTrade)
}

func TestTickKnownMarketWithParamsProducesTrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"BTC_15m": {
			"entry_params": {"up_price_min": 0.4, "up_price_max": 0.6, "mode": "none"},
			"size_params": {"bin_edges": [0, 1.0], "size_table_1d": {"(0, 1]": 5}}
		}
	}`), 0o644))

	c := New(Options{ParamsPath: path, ParamsPollInterval: time.Hour, HistoryCapacity: 10, RecentTradesCapacity: 10})
	key, decision := c.Tick("BTC-UpDown-15", 1000, 0.5, 0.5)
	assert.Equal(t, market.BTC15m, key)
	assert.True(t, decision.ShouldTrade)
	assert.Equal(t, market.Up, decision.Side)
}

func TestRecordTradeExecutionAndCloseMarket(t *testing.T) {
	c := New(Options{ParamsPath: filepath.Join(t.TempDir(), "absent.json"), HistoryCapacity: 10, RecentTradesCapacity: 10})
	c.RecordTradeExecution(market.BTC15m, 1000, market.Up, 5, 2.5)
	c.CloseMarket(market.BTC15m)
}
