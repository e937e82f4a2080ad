package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCanonicalPassthrough(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, BTC15m, n.Normalize("BTC_15m"))
}

func TestNormalizeVenueSlugs(t *testing.T) {
	n := NewNormalizer()
	cases := map[string]Key{
		"BTC-UpDown-15":     BTC15m,
		"bitcoin 15 minute": BTC15m,
		"BTC-UpDown-1h":     BTC1h,
		"BTC 1 hour":        BTC1h,
		"eth-updown-15":     ETH15m,
		"Ethereum-1h":       ETH1h,
	}
	for raw, want := range cases {
		assert.Equal(t, want, n.Normalize(raw), raw)
	}
}

func TestNormalizeUnknownPassesThrough(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, Key("SOL_15m"), n.Normalize("SOL_15m"))
}

func TestOtherTimeframe(t *testing.T) {
	other, ok := BTC15m.OtherTimeframe()
	assert.True(t, ok)
	assert.Equal(t, BTC1h, other)

	_, ok = Key("SOL_15m").OtherTimeframe()
	assert.False(t, ok)
}
