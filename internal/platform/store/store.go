// Package store opens the optional postgres and clickhouse backends and
// exposes them through narrow seams
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"akkadian/internal/platform/logger"
)

// Store holds the optional backends. Postgres caches translations and
// ClickHouse keeps sign usage; either may be nil and the zero Store is valid
type Store struct {
	Log logger.Logger

	// PG is nil unless SERVICE_PGSQL_ENABLED
	PG TxRunner

	// CH is nil unless SERVICE_CLICKHOUSE_ENABLED
	CH Clickhouse

	migrations []Migration
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is a tiny seam for columnar writes and queries. Insert rows
// follow the table's column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// CHExecer is implemented by clickhouse seams that can run statements
// without a result set
type CHExecer interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the backends cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}
	s.migrate(ctx)
	return s, nil
}

// each runs fn on every open backend and joins the failures by name
func (s *Store) each(fn func(seam any) error) error {
	var errs []error
	for _, b := range []struct {
		name string
		seam any
		open bool
	}{
		{"pg", s.PG, s.PG != nil},
		{"ch", s.CH, s.CH != nil},
	} {
		if !b.open {
			continue
		}
		if err := fn(b.seam); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

// Guard pings every open backend that can be pinged
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	return s.each(func(seam any) error {
		if p, ok := seam.(Pinger); ok {
			return p.Ping(ctx)
		}
		return nil
	})
}

// Close releases every open backend. A nil store closes nothing
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	return s.each(func(seam any) error {
		if c, ok := seam.(interface{ Close() error }); ok {
			return c.Close()
		}
		return nil
	})
}
