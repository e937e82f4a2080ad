// Package config loads the core's env-style configuration (§6),
// grounded on the caarlos0/env-driven construction used elsewhere in the
// example pack (forgequant-context8-mcp's internal config packages).
package config

import "github.com/caarlos0/env/v11"

// Config holds every env-configurable knob named in §6.
type Config struct {
	ParamsPath            string `env:"PARAMS_PATH" envDefault:"watch_bot_analyzer/output/params_latest.json"`
	ParamsPollMs          int    `env:"PARAMS_POLL_MS" envDefault:"3000"`
	AuditEnabled          bool   `env:"AUDIT_ENABLED" envDefault:"false"`
	AuditPath             string `env:"AUDIT_PATH" envDefault:"logs/parity_debug.jsonl"`
	HistoryCapacity       int    `env:"HISTORY_CAPACITY" envDefault:"1000"`
	RecentTradesCapacity  int    `env:"RECENT_TRADES_CAPACITY" envDefault:"100"`

	RedisAddr    string `env:"REDIS_ADDR"`
	RedisChannel string `env:"REDIS_PARAMS_CHANNEL" envDefault:"watchcore:params:reload"`

	PostgresDSN string `env:"POSTGRES_DSN"`

	TapeWebsocketURL string `env:"TAPE_WS_URL"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
