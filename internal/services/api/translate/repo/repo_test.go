package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"akkadian/internal/platform/store"
)

type fakeRow struct{ err error }

func (r fakeRow) Scan(...any) error { return r.err }

type fakeQ struct {
	sql  string
	args []any
	row  fakeRow
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.sql, f.args = sql, args
	return nil, nil
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.sql, f.args = sql, args
	return f.row
}

func TestGet_NoRowsIsMiss(t *testing.T) {
	q := &fakeQ{row: fakeRow{err: pgx.ErrNoRows}}
	_, ok, err := NewPG().Bind(q).Get(context.Background(), "abc")
	if err != nil || ok {
		t.Fatalf("Get = ok %v err %v, want miss", ok, err)
	}
	if len(q.args) != 1 || q.args[0] != "abc" {
		t.Fatalf("args = %v", q.args)
	}
}

func TestGet_ErrorBubbles(t *testing.T) {
	boom := errors.New("boom")
	q := &fakeQ{row: fakeRow{err: boom}}
	if _, _, err := NewPG().Bind(q).Get(context.Background(), "abc"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestPut_AssignsIDAndChunks(t *testing.T) {
	q := &fakeQ{}
	if err := NewPG().Bind(q).Put(context.Background(), Row{Digest: "d", Source: "a-na", Translation: "to"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.Contains(q.sql, "on conflict (digest) do nothing") {
		t.Fatalf("sql = %s", q.sql)
	}
	id, ok := q.args[0].(uuid.UUID)
	if !ok || id == uuid.Nil || id.Version() != 7 {
		t.Fatalf("id = %v", q.args[0])
	}
	if chunks, ok := q.args[4].([]string); !ok || chunks == nil {
		t.Fatalf("chunks = %#v", q.args[4])
	}
}

func TestMigrate(t *testing.T) {
	q := &fakeQ{}
	if err := Migrate(context.Background(), q); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !strings.Contains(q.sql, "create table if not exists translation_cache") {
		t.Fatalf("sql = %s", q.sql)
	}
}
