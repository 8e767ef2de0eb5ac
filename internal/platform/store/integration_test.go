//go:build integration_pg

package store_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"akkadian/internal/platform/store"
	"akkadian/internal/services/api/translate/repo"
)

// postgres starts a throwaway server and returns its DSN
func postgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "akkadian",
				"POSTGRES_PASSWORD": "akkadian",
				"POSTGRES_DB":       "akkadian",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://akkadian:akkadian@%s:%s/akkadian?sslmode=disable", host, port.Port())
}

func TestTranslationCache_RoundTrip(t *testing.T) {
	dsn := postgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "akkadian-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, LogSQL: true},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if err := st.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if err := repo.Migrate(ctx, st.PG); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// migrations are re-run on every start
	if err := repo.Migrate(ctx, st.PG); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	row := repo.Row{
		Digest:      "d1",
		Source:      "a-na šar-ri be-li₂-ia",
		Translation: "to the king, my lord",
		Chunks:      []string{"to the king, my lord"},
	}
	err = st.PG.Tx(ctx, func(q store.RowQuerier) error {
		r := repo.NewPG().Bind(q)
		if err := r.Put(ctx, row); err != nil {
			return err
		}
		// same digest twice keeps the first row
		return r.Put(ctx, repo.Row{Digest: "d1", Source: "x", Translation: "other"})
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := repo.NewPG().Bind(st.PG).Get(ctx, "d1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Translation != row.Translation || len(got.Chunks) != 1 || got.CreatedAt.IsZero() {
		t.Fatalf("row = %+v", got)
	}

	if _, ok, err := repo.NewPG().Bind(st.PG).Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}
}

func TestTx_RollsBack(t *testing.T) {
	dsn := postgres(t)
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })
	if err := repo.Migrate(ctx, st.PG); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	boom := errors.New("boom")
	err = st.PG.Tx(ctx, func(q store.RowQuerier) error {
		if err := repo.NewPG().Bind(q).Put(ctx, repo.Row{Digest: "gone", Source: "a", Translation: "b"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, ok, _ := repo.NewPG().Bind(st.PG).Get(ctx, "gone"); ok {
		t.Fatal("row survived rollback")
	}
}
