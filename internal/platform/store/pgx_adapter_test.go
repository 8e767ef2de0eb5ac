package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"akkadian/internal/platform/store/pg"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type stubRow struct{ err error }

func (s stubRow) Scan(dst ...any) error {
	if s.err != nil {
		return s.err
	}
	if p, ok := dst[0].(*int); ok {
		*p = 1
	}
	return nil
}

type stubRows struct {
	pgx.Rows
	cols []string
}

func (s stubRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(s.cols))
	for i, c := range s.cols {
		out[i].Name = c
	}
	return out
}

// stubQ plays both pool and transaction
type stubQ struct {
	pgx.Tx
	delay     time.Duration
	execErr   error
	scanErr   error
	committed bool
	rolled    bool
}

func (s *stubQ) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	time.Sleep(s.delay)
	return pgconn.NewCommandTag("INSERT 0 1"), s.execErr
}

func (s *stubQ) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return stubRows{cols: []string{"digest", "translation"}}, nil
}

func (s *stubQ) QueryRow(context.Context, string, ...any) pgx.Row { return stubRow{err: s.scanErr} }
func (s *stubQ) Begin(context.Context) (pgx.Tx, error)            { return s, nil }
func (s *stubQ) Commit(context.Context) error                     { s.committed = true; return nil }
func (s *stubQ) Rollback(context.Context) error                   { s.rolled = true; return nil }

func newStubAdapter(q *stubQ, tr pg.QueryTracer, slow time.Duration) *pgAdapter {
	return &pgAdapter{traced: traced{q: q, tracer: tr, slow: slow}, pool: q}
}

func TestTraced_ReportsStatements(t *testing.T) {
	tr := &recTracer{}
	a := newStubAdapter(&stubQ{delay: 2 * time.Millisecond}, tr, time.Millisecond)

	ct, err := a.Exec(context.Background(), "insert into translation_cache values ($1)", "x")
	if err != nil || ct.RowsAffected() != 1 {
		t.Fatalf("exec = %v %v", ct, err)
	}
	rows, err := a.Query(context.Background(), "select digest, translation from translation_cache")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[1] != "translation" {
		t.Fatalf("columns = %v", cols)
	}
	if err := a.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if len(tr.events) != 3 {
		t.Fatalf("events = %d", len(tr.events))
	}
	if !tr.events[0].Slow || tr.events[0].Args[0] != "x" {
		t.Fatalf("exec event = %+v", tr.events[0])
	}
	if tr.events[2].SQL != "select 1" {
		t.Fatalf("ping event = %+v", tr.events[2])
	}
}

func TestTraced_QueryRowReportsScanError(t *testing.T) {
	tr := &recTracer{}
	a := newStubAdapter(&stubQ{scanErr: pgx.ErrNoRows}, tr, 0)

	var n int
	err := a.QueryRow(context.Background(), "select 1").Scan(&n)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("err = %v", err)
	}
	if len(tr.events) != 1 || !errors.Is(tr.events[0].Err, pgx.ErrNoRows) || tr.events[0].Slow {
		t.Fatalf("events = %+v", tr.events)
	}
}

func TestTx(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		q := &stubQ{}
		tr := &recTracer{}
		err := newStubAdapter(q, tr, 0).Tx(context.Background(), func(rq RowQuerier) error {
			_, err := rq.Exec(context.Background(), "set local statement_timeout = 2000")
			return err
		})
		if err != nil || !q.committed || q.rolled {
			t.Fatalf("err=%v committed=%v rolled=%v", err, q.committed, q.rolled)
		}
		if len(tr.events) != 1 {
			t.Fatalf("statement inside tx not traced")
		}
	})

	t.Run("rolls back", func(t *testing.T) {
		q := &stubQ{}
		boom := errors.New("boom")
		err := newStubAdapter(q, nil, 0).Tx(context.Background(), func(RowQuerier) error { return boom })
		if !errors.Is(err, boom) || q.committed || !q.rolled {
			t.Fatalf("err=%v committed=%v rolled=%v", err, q.committed, q.rolled)
		}
	})
}
