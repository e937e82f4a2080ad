package params

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"watchcore/logwire"
	"watchcore/market"
)

// Notifier is an optional additional transport for change notifications,
// alongside the in-process Subscribe callback. Satisfied by RedisNotifier.
type Notifier interface {
	NotifyReload(ctx context.Context, path string, reloadedAt time.Time) error
}

// Store is the hot-reloading Parameter Store (C1). Construct with NewStore;
// the zero value is not usable.
type Store struct {
	path     string
	pollEvery time.Duration
	logger   *logwire.Logger
	notifier Notifier

	mu            sync.RWMutex
	snapshot      *Snapshot
	lastModTime   time.Time
	lastErrorText string

	subMu       sync.Mutex
	subscribers []func(*Snapshot)

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// StoreOption configures optional Store behavior.
type StoreOption func(*Store)

// WithNotifier attaches an additional pub/sub-style notifier, invoked
// after a successful swap alongside in-process subscribers.
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) { s.notifier = n }
}

// WithLogger attaches a structured logger for single-line-per-distinct-error
// reporting (§4.1).
func WithLogger(l *logwire.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore constructs a Store over path, polling at pollEvery (defaults to
// 3s per §6 if pollEvery <= 0). It performs one synchronous initial load;
// a missing file is not an error — the store serves empty defaults.
func NewStore(path string, pollEvery time.Duration, opts ...StoreOption) *Store {
	if pollEvery <= 0 {
		pollEvery = 3 * time.Second
	}
	s := &Store{
		path:      path,
		pollEvery: pollEvery,
		snapshot:  &Snapshot{Markets: map[market.Key]MarketParams{}},
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reload(context.Background())
	return s
}

// GetParams returns the current immutable snapshot. Safe for concurrent
// use; the returned pointer is never mutated in place.
func (s *Store) GetParams() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// GetMarketParams returns the parameters for key, applying the
// supplemented fallback chain when key has no section of its own: same
// asset + opposite timeframe, then the average across all known markets,
// then the empty/no-trade default.
func (s *Store) GetMarketParams(key market.Key) MarketParams {
	snap := s.GetParams()
	if mp, ok := snap.Markets[key]; ok {
		return mp
	}
	if other, ok := key.OtherTimeframe(); ok {
		if mp, ok := snap.Markets[other]; ok {
			return mp
		}
	}
	if avg, ok := averageMarketParams(snap.Markets); ok {
		return avg
	}
	return defaultMarketParams()
}

// averageMarketParams builds a coarse global-average fallback from every
// known market's inventory numeric fields, per §12's fallback chain.
// Non-numeric/structural fields (tables, mode enums) are taken from an
// arbitrary member since averaging them has no meaning.
func averageMarketParams(all map[market.Key]MarketParams) (MarketParams, bool) {
	if len(all) == 0 {
		return MarketParams{}, false
	}
	var sample MarketParams
	var sumMaxUp, sumMaxDown, sumMaxTotal, sumRebalance float64
	for _, mp := range all {
		sample = mp
		sumMaxUp += mp.Inventory.MaxUpShares
		sumMaxDown += mp.Inventory.MaxDownShares
		sumMaxTotal += mp.Inventory.MaxTotalShares
		sumRebalance += mp.Inventory.RebalanceRatioR
	}
	n := float64(len(all))
	sample.Inventory.MaxUpShares = sumMaxUp / n
	sample.Inventory.MaxDownShares = sumMaxDown / n
	sample.Inventory.MaxTotalShares = sumMaxTotal / n
	sample.Inventory.RebalanceRatioR = clampRebalanceRatio(sumRebalance / n)
	return sample, true
}

// Subscribe registers a callback invoked after every successful reload
// swap. Subscriber panics/errors must not prevent further swaps; callbacks
// run synchronously on the polling goroutine in registration order.
func (s *Store) Subscribe(callback func(*Snapshot)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, callback)
}

// Start begins the background poll loop. It returns immediately; call
// Stop to halt it. Calling Start twice is a no-op after the first Stop.
func (s *Store) Start(ctx context.Context) {
	select {
	case <-s.stopCh:
		return
	default:
	}
	go s.pollLoop(ctx)
}

// Stop halts the poll loop and waits for it to exit.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}

func (s *Store) pollLoop(ctx context.Context) {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

// reload implements the hot-reload protocol of §4.1: poll mtime, and only
// on strictly-newer mtime parse+validate+swap. Failures retain the prior
// snapshot and are logged once per distinct error message.
func (s *Store) reload(ctx context.Context) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		s.logOnce(fmt.Sprintf("stat parameter file: %v", err))
		return
	}

	s.mu.RLock()
	unchanged := !info.ModTime().After(s.lastModTime)
	s.mu.RUnlock()
	if unchanged {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logOnce(fmt.Sprintf("read parameter file: %v", err))
		return
	}

	snap, err := parseDocument(data)
	if err != nil {
		s.logOnce(err.Error())
		return
	}

	s.mu.Lock()
	s.snapshot = snap
	s.lastModTime = info.ModTime()
	s.lastErrorText = ""
	s.mu.Unlock()

	s.notifySubscribers(snap)

	if s.notifier != nil {
		if err := s.notifier.NotifyReload(ctx, s.path, info.ModTime()); err != nil {
			s.logOnce(fmt.Sprintf("notify reload: %v", err))
		}
	}
}

func (s *Store) notifySubscribers(snap *Snapshot) {
	s.subMu.Lock()
	subs := append([]func(*Snapshot){}, s.subscribers...)
	s.subMu.Unlock()
	for _, cb := range subs {
		func() {
			defer func() { recover() }()
			cb(snap)
		}()
	}
}

func (s *Store) logOnce(message string) {
	s.mu.Lock()
	already := s.lastErrorText == message
	s.lastErrorText = message
	s.mu.Unlock()
	if already || s.logger == nil {
		return
	}
	s.logger.Errorf("params", "%s", message)
}
