package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"akkadian/internal/platform/store/pg"
)

// pgxQuerier is what pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced implements RowQuerier over a pool or a transaction and reports every
// statement to the tracer. QueryRow reports once Scan has run
type traced struct {
	q      pgxQuerier
	tracer pg.QueryTracer
	slow   time.Duration
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.q.Exec(ctx, sql, args...)
	t.report(ctx, sql, args, start, err)
	return ct, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.q.Query(ctx, sql, args...)
	t.report(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgxRows{rs}, nil
}

func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.q.QueryRow(ctx, sql, args...)
	return scanHook{r, func(err error) { t.report(ctx, sql, args, start, err) }}
}

func (t traced) report(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsed := time.Since(start)
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:     sql,
		Args:    args,
		Elapsed: elapsed,
		Err:     err,
		Slow:    t.slow > 0 && elapsed >= t.slow,
	})
}

// txBeginner is the pool surface Tx needs
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgAdapter is the Store.PG seam over an open pool
type pgAdapter struct {
	traced
	pool  txBeginner
	close func()
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		traced: traced{q: p.Pool, tracer: p.Tracer, slow: p.Slow},
		pool:   p.Pool,
		close:  p.Close,
	}
}

// Ping round trips a trivial statement through the adapter
func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "select 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	if a.close != nil {
		a.close()
	}
	return nil
}

// Tx commits when fn returns nil and rolls back otherwise. Statements inside
// the transaction are traced like any other
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(traced{q: tx, tracer: a.tracer, slow: a.slow}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

type scanHook struct {
	r     pgx.Row
	after func(error)
}

func (s scanHook) Scan(dst ...any) error {
	err := s.r.Scan(dst...)
	s.after(err)
	return err
}

type pgxRows struct{ pgx.Rows }

func (r pgxRows) Columns() []string {
	fd := r.FieldDescriptions()
	out := make([]string, len(fd))
	for i, f := range fd {
		out[i] = f.Name
	}
	return out
}
