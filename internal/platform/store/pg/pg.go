// Package pg opens the postgres pool that backs the translation cache
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"akkadian/internal/platform/logger"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	// Slow flags statements at or above it in traces; zero flags none
	Slow time.Duration
}

// PG is an open pool plus the tracer the store adapter reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	Slow   time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg and creates the pool. pgxpool connects lazily so Open does
// not prove the server is reachable; WaitReady does
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("pg: empty url")
	}
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, Slow: cfg.Slow}, nil
}

// Backoff bounds WaitReady
type Backoff struct {
	Attempts int
	Timeout  time.Duration // per ping
	Start    time.Duration
	Max      time.Duration
}

func (b Backoff) withDefaults() Backoff {
	if b.Attempts <= 0 {
		b.Attempts = 20
	}
	if b.Timeout <= 0 {
		b.Timeout = 3 * time.Second
	}
	if b.Start <= 0 {
		b.Start = 150 * time.Millisecond
	}
	if b.Max < b.Start {
		b.Max = 2 * time.Second
	}
	return b
}

// WaitReady pings until the server answers. Containers started next to the
// API usually need a few seconds before they accept connections
func WaitReady(ctx context.Context, ping func(context.Context) error, b Backoff, log logger.Logger) error {
	b = b.withDefaults()
	delay := b.Start

	var last error
	for attempt := 1; attempt <= b.Attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, b.Timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		log.Debug().Int("attempt", attempt).Err(last).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, b.Max)
	}
	return fmt.Errorf("pg: not ready after %d attempts: %w", b.Attempts, last)
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
