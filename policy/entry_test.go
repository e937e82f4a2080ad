package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchcore/features"
	"watchcore/market"
	"watchcore/params"
)

func f64(v float64) *float64 { return &v }

func TestEntryBandNoneModeQualifies(t *testing.T) {
	ep := params.EntryParams{UpPriceMin: f64(0.4), UpPriceMax: f64(0.6), Mode: params.EntryModeNone}
	_, _, result := EntrySignal(0.5, 0.5, features.Features{}, ep, true)
	assert.True(t, result.ShouldTrade)
	assert.Equal(t, market.Up, result.Side)
	assert.Equal(t, ReasonUpPriceBand, result.Reason)
}

func TestEntryNoEntryParams(t *testing.T) {
	_, _, result := EntrySignal(0.5, 0.5, features.Features{}, params.EntryParams{}, false)
	assert.False(t, result.ShouldTrade)
	assert.Equal(t, ReasonNoEntryParams, result.Reason)
}

func TestEntryMomentumRequiresThreshold(t *testing.T) {
	ep := params.EntryParams{
		UpPriceMin:        f64(0.0),
		UpPriceMax:        f64(1.0),
		Mode:              params.EntryModeMomentum,
		MomentumThreshold: 0.01,
	}
	f := features.Features{HasDelta5s: true, Delta5sUp: 0.02, Delta5sSide: 0.02}
	up := CheckSideEntry(market.Up, 0.5, 0.5, f, ep)
	assert.True(t, up.Qualifies)
	assert.Equal(t, ReasonMomentumMet, up.Reason)

	f.Delta5sUp = 0.001
	f.Delta5sSide = 0.001
	up = CheckSideEntry(market.Up, 0.5, 0.5, f, ep)
	assert.False(t, up.Qualifies)
	assert.Equal(t, ReasonMomentumNotMet, up.Reason)
}

func TestEntryNoBandsConfiguredNeverQualifies(t *testing.T) {
	ep := params.EntryParams{Mode: params.EntryModeNone}
	up := CheckSideEntry(market.Up, 0.5, 0.5, features.Features{}, ep)
	assert.False(t, up.Qualifies)
	assert.Equal(t, ReasonUpPriceNotInBand, up.Reason)
}

func TestEntryOutOfBand(t *testing.T) {
	ep := params.EntryParams{DownPriceMin: f64(0.4), DownPriceMax: f64(0.6), Mode: params.EntryModeNone}
	down := CheckSideEntry(market.Down, 0.5, 0.7, features.Features{}, ep)
	assert.False(t, down.Qualifies)
	assert.Equal(t, ReasonDownPriceNotInBand, down.Reason)
}
