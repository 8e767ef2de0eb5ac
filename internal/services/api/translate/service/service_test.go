package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"akkadian/internal/adapters/translator"
	"akkadian/internal/modkit/repokit"
	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/store"
	"akkadian/internal/services/api/translate/domain"
	"akkadian/internal/services/api/translate/repo"
)

type fakeTranslator struct {
	available bool
	calls     int
	err       error
}

func (f *fakeTranslator) Available() bool { return f.available }

func (f *fakeTranslator) Translate(_ context.Context, text string) (translator.Result, error) {
	f.calls++
	if f.err != nil {
		return translator.Result{}, f.err
	}
	return translator.Result{Text: strings.ToUpper(text), Chunks: []string{strings.ToUpper(text)}}, nil
}

// fakeTx runs fn against a nil Queryer; the repo binder ignores it
type fakeTx struct {
	txCalls int
	sqls    []string
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	f.txCalls++
	return fn(f)
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	return nil, nil
}

func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row { return nil }

type memRepo struct {
	mu     sync.Mutex
	rows   map[string]repo.Row
	getErr error
}

func (m *memRepo) Get(_ context.Context, digest string) (repo.Row, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return repo.Row{}, false, m.getErr
	}
	r, ok := m.rows[digest]
	return r, ok, nil
}

func (m *memRepo) Put(_ context.Context, row repo.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[row.Digest] = row
	return nil
}

func binderFor(m *memRepo) repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

func TestTranslate_NoCache(t *testing.T) {
	tr := &fakeTranslator{available: true}
	s := New(Options{Translator: tr})

	out, err := s.Translate(context.Background(), domain.TranslateInput{Text: "  a-na  "})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out.Translation != "A-NA" || out.Cached {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestTranslate_CacheHitSkipsBackend(t *testing.T) {
	tr := &fakeTranslator{available: true}
	mem := &memRepo{rows: map[string]repo.Row{}}
	tx := &fakeTx{}
	s := New(Options{Translator: tr, DB: tx, Binder: binderFor(mem)})

	first, err := s.Translate(context.Background(), domain.TranslateInput{Text: "a-na"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := s.Translate(context.Background(), domain.TranslateInput{Text: " a-na\n"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if tr.calls != 1 {
		t.Fatalf("backend calls = %d, want 1", tr.calls)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags = %v, %v", first.Cached, second.Cached)
	}
	if second.Translation != first.Translation {
		t.Fatalf("cached translation %q != %q", second.Translation, first.Translation)
	}
	// every tx starts with the statement timeout hook
	for _, sql := range tx.sqls {
		if !strings.HasPrefix(sql, "set local statement_timeout") {
			t.Fatalf("unexpected statement %q", sql)
		}
	}
	if len(tx.sqls) != tx.txCalls {
		t.Fatalf("hooks ran %d times over %d txs", len(tx.sqls), tx.txCalls)
	}
}

func TestTranslate_CacheErrorFallsThrough(t *testing.T) {
	tr := &fakeTranslator{available: true}
	mem := &memRepo{rows: map[string]repo.Row{}, getErr: errors.New("db down")}
	s := New(Options{Translator: tr, DB: &fakeTx{}, Binder: binderFor(mem)})

	out, err := s.Translate(context.Background(), domain.TranslateInput{Text: "ša"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out.Translation != "ŠA" || tr.calls != 1 {
		t.Fatalf("unexpected output %+v calls=%d", out, tr.calls)
	}
}

func TestTranslate_Errors(t *testing.T) {
	cases := []struct {
		name string
		tr   *fakeTranslator
		text string
		want perr.ErrorCode
	}{
		{"blank", &fakeTranslator{available: true}, "   ", perr.ErrorCodeInvalidArgument},
		{"unavailable", &fakeTranslator{}, "a-na", perr.ErrorCodeUnavailable},
		{"upstream", &fakeTranslator{available: true, err: perr.Upstreamf("boom")}, "a-na", perr.ErrorCodeUpstream},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New(Options{Translator: c.tr})
			_, err := s.Translate(context.Background(), domain.TranslateInput{Text: c.text})
			if got := perr.CodeOf(err); got != c.want {
				t.Fatalf("code = %v, want %v (err=%v)", got, c.want, err)
			}
		})
	}
}

func TestDigest_TrimsAndIsStable(t *testing.T) {
	a := Digest("a-na")
	if a != Digest("  a-na\t") {
		t.Fatal("digest must ignore surrounding space")
	}
	if len(a) != 64 {
		t.Fatalf("digest length = %d", len(a))
	}
	if a == Digest("a-na-ku") {
		t.Fatal("distinct texts share a digest")
	}
}

func TestSample(t *testing.T) {
	s := New(Options{Translator: &fakeTranslator{}})
	out, err := s.Sample(context.Background())
	if err != nil || out.Text != translator.SampleText {
		t.Fatalf("Sample = %+v, %v", out, err)
	}
}
