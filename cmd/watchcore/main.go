// Command watchcore is an example process wiring the core together: it
// loads configuration, constructs a core.Core, starts parameter polling,
// feeds a tape from a websocket source, and logs each decision that
// trades. Collaborators
// are constructed explicitly here; there are no package globals.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchcore/audit"
	"watchcore/config"
	"watchcore/core"
	"watchcore/feed"
	"watchcore/logwire"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logwire.New(os.Stdout)

	var auditLog *audit.Log
	if cfg.AuditEnabled {
		auditLog, err = audit.Open(cfg.AuditPath)
		if err != nil {
			log.Fatalf("open audit log: %v", err)
		}
		defer auditLog.Close()
	}

	c := core.New(core.Options{
		ParamsPath:           cfg.ParamsPath,
		ParamsPollInterval:   time.Duration(cfg.ParamsPollMs) * time.Millisecond,
		HistoryCapacity:      cfg.HistoryCapacity,
		RecentTradesCapacity: cfg.RecentTradesCapacity,
		AuditLog:             auditLog,
		Logger:               logger,
	})
	c.Start()
	defer c.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TapeWebsocketURL == "" {
		logger.Infof("cmd", "TAPE_WS_URL not set, idling until interrupted")
		<-ctx.Done()
		return
	}

	source := feed.NewPolymarketTapeSource(cfg.TapeWebsocketURL, 2*time.Second)
	err = source.Run(ctx, func(tick feed.Tick) {
		key, decision := c.Tick(tick.MarketKeyRaw, tick.TimestampMs, tick.UpPrice, tick.DownPrice)
		if decision.ShouldTrade {
			logger.Infof("cmd", "trade %s %s shares=%.4f fill=%.4f reason=%s",
				key, decision.Side, decision.Shares, decision.FillPrice, decision.Reason)
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("tape source: %v", err)
	}
}
