package store

import (
	"context"
	"time"

	"akkadian/internal/core/version"
	"akkadian/internal/platform/store/ch"
	"akkadian/internal/platform/store/pg"
)

// seams for tests
var (
	openPGPool = pg.Open
	openCHConn = ch.Open
)

// openPG opens the pool and publishes the adapter only once the server answers
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := openPGPool(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
	}, tracer)
	if err != nil {
		return nil, err
	}

	a := newPGAdapter(p)
	err = pg.WaitReady(ctx, a.Ping, pg.Backoff{
		Attempts: cfg.PG.ConnectRetries,
		Timeout:  cfg.PG.PingTimeout,
	}, s.Log)
	if err != nil {
		p.Close()
		return nil, err
	}
	return a, nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := openCHConn(ctx, ch.Config{
		URL:         cfg.CH.URL,
		Role:        cfg.AppName,
		Tag:         version.Info().Version,
		DialTimeout: cfg.CH.DialTimeout,
		AsyncInsert: cfg.CH.AsyncInsert,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
