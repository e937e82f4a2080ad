// Package feed adapts venue connectivity into the core's tape-ingress
// contract (§6): a push of (market_key_raw, timestamp_ms, up_price,
// down_price). Venue connectivity itself is an explicit Non-goal of the
// core (§1); this package is the documented external-collaborator
// boundary and a concrete websocket implementation of it, grounded on
// host/library/exchanges/polymarket_ws.go's dial/reconnect shape in the
// teacher repo.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Tick is one tape-ingress push.
type Tick struct {
	MarketKeyRaw string
	TimestampMs  int64
	UpPrice      float64
	DownPrice    float64
}

// Source delivers ticks to a callback until the context is canceled.
type Source interface {
	Run(ctx context.Context, onTick func(Tick)) error
}

// wireMessage is the loosely shaped payload a Polymarket market channel
// emits per update; only the fields the core's tape-ingress contract
// needs are extracted.
type wireMessage struct {
	Market    string  `json:"market"`
	TimestampMs int64 `json:"timestamp_ms"`
	UpPrice   float64 `json:"up_price"`
	DownPrice float64 `json:"down_price"`
}

// PolymarketTapeSource dials a Polymarket market-channel websocket stream
// and turns each message into a Tick. Reconnects with backoff on drop.
type PolymarketTapeSource struct {
	URL              string
	ReconnectBackoff time.Duration
	dialer           *websocket.Dialer
}

// NewPolymarketTapeSource constructs a source dialing url. backoff
// defaults to 2 seconds when <= 0.
func NewPolymarketTapeSource(url string, backoff time.Duration) *PolymarketTapeSource {
	if backoff <= 0 {
		backoff = 2 * time.Second
	}
	return &PolymarketTapeSource{URL: url, ReconnectBackoff: backoff, dialer: websocket.DefaultDialer}
}

// Run implements Source. It reconnects on any read/dial error until ctx
// is canceled.
func (s *PolymarketTapeSource) Run(ctx context.Context, onTick func(Tick)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.runOnce(ctx, onTick); err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.ReconnectBackoff):
			}
		}
	}
}

func (s *PolymarketTapeSource) runOnce(ctx context.Context, onTick func(Tick)) error {
	conn, _, err := s.dialer.DialContext(ctx, s.URL, nil)
	if err != nil {
		return fmt.Errorf("dial tape source: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read tape message: %w", err)
		}
		tick, ok := parseWireMessage(data)
		if !ok {
			continue
		}
		onTick(tick)
	}
}

// parseWireMessage decodes one raw websocket frame into a Tick. Malformed
// frames are dropped (ok=false) rather than surfaced as an error — the
// tape-ingress contract has no notion of a malformed-frame error, only
// ticks.
func parseWireMessage(data []byte) (Tick, bool) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Tick{}, false
	}
	return Tick{
		MarketKeyRaw: msg.Market,
		TimestampMs:  msg.TimestampMs,
		UpPrice:      msg.UpPrice,
		DownPrice:    msg.DownPrice,
	}, true
}
