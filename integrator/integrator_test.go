package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchcore/market"
	"watchcore/params"
)

func f64(v float64) *float64 { return &v }

func basicMarketParams() params.MarketParams {
	mp := params.MarketParams{
		Entry: params.EntryParams{
			UpPriceMin: f64(0.4),
			UpPriceMax: f64(0.6),
			Mode:       params.EntryModeNone,
		},
		Size: params.SizeParams{
			BinEdges:    []float64{0, 0.5, 1.0},
			SizeTable1D: map[string]float64{"(0, 0.5]": 5, "(0.5, 1]": 10},
		},
		Inventory: params.InventoryParams{MaxTotalShares: 1000, MaxUpShares: 1000, MaxDownShares: 1000, RebalanceRatioR: 0.6},
		Execution: params.ExecutionParams{ModelType: params.ExecutionSnapshotPrice},
	}
	return mp
}

func TestShouldTradeEntryBandProducesTrade(t *testing.T) {
	ig := New(100, 100)
	mp := basicMarketParams()
	d := ig.ShouldTrade(market.BTC15m, 1000, 0.5, 0.5, mp)
	require.True(t, d.ShouldTrade)
	assert.Equal(t, market.Up, d.Side)
	assert.Greater(t, d.Shares, 0.0)
	assert.NotEmpty(t, d.DecisionID)
}

func TestShouldTradeNoEntryParamsYieldsReason(t *testing.T) {
	ig := New(100, 100)
	d := ig.ShouldTrade(market.BTC15m, 1000, 0.5, 0.5, params.MarketParams{})
	require.False(t, d.ShouldTrade)
	assert.Equal(t, "no_entry_params", string(d.Reason))
}

func TestShouldTradeQualityFilterRejectsBadSum(t *testing.T) {
	ig := New(100, 100)
	mp := basicMarketParams()
	mp.Quality.MaxPriceSumDeviation = 0.01
	d := ig.ShouldTrade(market.BTC15m, 1000, 0.9, 0.9, mp)
	assert.False(t, d.ShouldTrade)
}

func TestShouldTradeCadenceBlocksSecondImmediateTick(t *testing.T) {
	ig := New(100, 100)
	mp := basicMarketParams()
	mp.Cadence.MinInterTradeMs = 5000

	ig.RecordTradeExecution(market.BTC15m, 1000, market.Up, 5, 2.5)
	d := ig.ShouldTrade(market.BTC15m, 2000, 0.5, 0.5, mp)
	assert.False(t, d.ShouldTrade)
}

func TestShouldTradeInventoryCapBlocks(t *testing.T) {
	ig := New(100, 100)
	mp := basicMarketParams()
	mp.Inventory.MaxTotalShares = 1

	ig.RecordTradeExecution(market.BTC15m, 500, market.Up, 5, 2.5)
	d := ig.ShouldTrade(market.BTC15m, 1000, 0.5, 0.5, mp)
	assert.False(t, d.ShouldTrade)
	assert.Equal(t, "inventory_limit_exceeded", string(d.Reason))
}

func TestRecordTradeExecutionUpdatesInventoryAndSession(t *testing.T) {
	ig := New(100, 100)
	ig.RecordTradeExecution(market.BTC15m, 1000, market.Up, 10, 4.0)
	st := ig.stateFor(market.BTC15m)
	assert.Equal(t, 10.0, st.inv.UpShares)
	assert.Equal(t, 1, st.session.TradesThisSession)
}

func TestCloseMarketRemovesState(t *testing.T) {
	ig := New(100, 100)
	ig.RecordTradeExecution(market.BTC15m, 1000, market.Up, 10, 4.0)
	ig.CloseMarket(market.BTC15m)
	st := ig.stateFor(market.BTC15m)
	assert.Equal(t, 0.0, st.inv.UpShares)
}

func TestShouldTradeIsDeterministicGivenUnchangedState(t *testing.T) {
	mp := basicMarketParams()
	ig1 := New(100, 100)
	ig2 := New(100, 100)
	d1 := ig1.ShouldTrade(market.BTC15m, 1000, 0.5, 0.5, mp)
	d2 := ig2.ShouldTrade(market.BTC15m, 1000, 0.5, 0.5, mp)
	assert.Equal(t, d1.Side, d2.Side)
	assert.Equal(t, d1.Shares, d2.Shares)
	assert.Equal(t, d1.ShouldTrade, d2.ShouldTrade)
}
