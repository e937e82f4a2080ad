// Package market holds the canonical market-key closed set, venue-slug
// normalization, and the tape/price-history primitives shared by every
// other package. Nothing here performs I/O.
package market

import "strings"

// Key is a canonical market identifier. The closed set is {BTC,ETH}_{15m,1h}.
type Key string

const (
	BTC15m Key = "BTC_15m"
	ETH15m Key = "ETH_15m"
	BTC1h  Key = "BTC_1h"
	ETH1h  Key = "ETH_1h"
)

// Known reports whether key belongs to the closed set.
func (k Key) Known() bool {
	switch k {
	case BTC15m, ETH15m, BTC1h, ETH1h:
		return true
	default:
		return false
	}
}

// Asset returns the asset prefix ("BTC"/"ETH") and true if k is canonical.
func (k Key) Asset() (string, bool) {
	switch k {
	case BTC15m, BTC1h:
		return "BTC", true
	case ETH15m, ETH1h:
		return "ETH", true
	default:
		return "", false
	}
}

// OtherTimeframe returns the sibling key for the same asset at the other
// window (BTC_15m <-> BTC_1h), used by the fallback-market read path.
func (k Key) OtherTimeframe() (Key, bool) {
	switch k {
	case BTC15m:
		return BTC1h, true
	case BTC1h:
		return BTC15m, true
	case ETH15m:
		return ETH1h, true
	case ETH1h:
		return ETH15m, true
	default:
		return "", false
	}
}

// Normalizer maps venue-specific market identifiers/slugs to canonical Keys.
// Grounded on the substring/tag matching in cctx/exchanges and on
// host/library/models/crypto_hourly.go's closed MarketType/Direction set.
type Normalizer struct{}

// NewNormalizer constructs a Normalizer. It holds no state.
func NewNormalizer() Normalizer { return Normalizer{} }

// Normalize canonicalizes a raw venue identifier. Inputs already in
// canonical form pass through unchanged. Unmatched inputs pass through
// verbatim; callers then find no parameters for them and emit no trade.
func (Normalizer) Normalize(raw string) Key {
	if Key(raw).Known() {
		return Key(raw)
	}

	lower := strings.ToLower(raw)
	hasBTC := strings.Contains(lower, "btc") || strings.Contains(lower, "bitcoin")
	hasETH := strings.Contains(lower, "eth") || strings.Contains(lower, "ethereum")
	has15 := strings.Contains(lower, "15")
	has1h := strings.Contains(lower, "1h") || strings.Contains(lower, "1 hour")

	switch {
	case hasBTC && has15:
		return BTC15m
	case hasBTC && has1h:
		return BTC1h
	case hasETH && has15:
		return ETH15m
	case hasETH && has1h:
		return ETH1h
	default:
		return Key(raw)
	}
}
