package integrator

import (
	"sync"

	"watchcore/market"
)

// marketState is the full mutable state for one market key: price
// history ring, inventory, cadence ring, session counters, and the last
// tape snapshot used by the quality filter. Grounded on the
// constructor-owned, mutex-guarded per-entity state pattern of
// hersh/manager/manager.go.
type marketState struct {
	mu sync.Mutex

	history  *market.History
	inv      market.Inventory
	cadence  *market.Cadence
	session  market.Session
	snapshot market.TapeState
	hasSnap  bool
}

func newMarketState(historyCapacity, recentTradesCapacity int) *marketState {
	return &marketState{
		history: market.NewHistory(historyCapacity),
		cadence: market.NewCadence(recentTradesCapacity),
	}
}
