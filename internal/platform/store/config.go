package store

import (
	"time"

	"akkadian/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing (translation cache)
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 20 (about 35s with capped exponential backoff)
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity (sign usage analytics)
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
	AsyncInsert bool
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*. Both backends
// are optional; a disabled backend stays nil on the Store
func ConfigFromEnv(appName string) Config {
	pgc := config.New().Prefix("SERVICE_PGSQL_")
	chc := config.New().Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pgc.MayBool("ENABLED", false),
			MaxConns:       int32(pgc.MayIntRange("MAX_CONNS", 8, 1, 256)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 250),
			ConnectRetries: pgc.MayIntRange("CONNECT_RETRIES", 20, 1, 100),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:     chc.MayBool("ENABLED", false),
			DialTimeout: chc.MayDuration("DIAL_TIMEOUT", 5*time.Second),
			AsyncInsert: chc.MayBool("ASYNC_INSERT", true),
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pgc.MustString("DBURL")
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = chc.MustString("DBURL")
	}
	return cfg
}
