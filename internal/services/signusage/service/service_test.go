package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"akkadian/internal/core/cuneify"
	perr "akkadian/internal/platform/errors"
	dom "akkadian/internal/services/signusage/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/goleak"
)

type fakeStorage struct {
	batches []dom.Batch
	window  dom.Window
	limit   int
	rows    []dom.SignCount
	err     error
}

func (f *fakeStorage) Insert(_ context.Context, b dom.Batch) error {
	f.batches = append(f.batches, b)
	return f.err
}

func (f *fakeStorage) TopSigns(_ context.Context, w dom.Window, limit int) ([]dom.SignCount, error) {
	f.window, f.limit = w, limit
	return f.rows, f.err
}

var fixed = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func newSvc(st *fakeStorage) *Service {
	s := New(st, Config{HardLimit: 10})
	s.now = func() time.Time { return fixed }
	return s
}

func TestRecord_StampsTime(t *testing.T) {
	st := &fakeStorage{}
	s := newSvc(st)
	err := s.Record(context.Background(), dom.Batch{
		ConversionID: "c1",
		Occurrences:  []dom.Occurrence{{Key: "an", Sign: "AN", Count: 2}},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(st.batches) != 1 || !st.batches[0].At.Equal(fixed) {
		t.Fatalf("unexpected batches %+v", st.batches)
	}
	// "c1" is not a uuid; the column needs one
	if _, err := uuid.Parse(st.batches[0].ConversionID); err != nil {
		t.Fatalf("conversion id %q not replaced", st.batches[0].ConversionID)
	}
}

func TestRecord_KeepsValidConversionID(t *testing.T) {
	st := &fakeStorage{}
	id := uuid.NewString()
	err := newSvc(st).Record(context.Background(), dom.Batch{
		ConversionID: id,
		Occurrences:  []dom.Occurrence{{Key: "an", Sign: "AN", Count: 1}},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if st.batches[0].ConversionID != id {
		t.Fatalf("conversion id = %q, want %q", st.batches[0].ConversionID, id)
	}
}

func TestRecord_SkipsEmptyAndDisabled(t *testing.T) {
	st := &fakeStorage{}
	if err := newSvc(st).Record(context.Background(), dom.Batch{}); err != nil {
		t.Fatal(err)
	}
	if len(st.batches) != 0 {
		t.Fatal("empty batch should not be stored")
	}

	off := New(nil, Config{})
	if off.Enabled() {
		t.Fatal("nil storage should disable the service")
	}
	if err := off.Record(context.Background(), dom.Batch{Occurrences: []dom.Occurrence{{Key: "a"}}}); err != nil {
		t.Fatalf("disabled record should be a no-op, got %v", err)
	}
}

func TestRecord_StorageError(t *testing.T) {
	st := &fakeStorage{err: errors.New("ch down")}
	err := newSvc(st).Record(context.Background(), dom.Batch{Occurrences: []dom.Occurrence{{Key: "a"}}})
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestTopSigns(t *testing.T) {
	st := &fakeStorage{}
	s := newSvc(st)
	since := fixed.Add(-24 * time.Hour)

	rows, err := s.TopSigns(context.Background(), dom.Window{Since: since}, 500)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if rows == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if st.limit != 10 {
		t.Fatalf("limit not clamped: %d", st.limit)
	}
	if !st.window.Until.Equal(fixed) {
		t.Fatalf("until not defaulted: %v", st.window.Until)
	}

	if _, err := s.TopSigns(context.Background(), dom.Window{Since: fixed, Until: fixed}, 5); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("want invalid argument for empty window, got %v", err)
	}
	if _, err := New(nil, Config{}).TopSigns(context.Background(), dom.Window{Since: since}, 5); perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("want unavailable when disabled, got %v", err)
	}
}

func TestOccurrences(t *testing.T) {
	conv := cuneify.MustDefault()
	lines := conv.Map("an-na an\nša")

	got := Occurrences(lines)
	want := []dom.Occurrence{
		{Line: 0, Key: "an", Sign: "AN", Count: 2},
		{Line: 0, Key: "na", Sign: "NA", Count: 1},
		{Line: 1, Key: "ša", Sign: "ŠA", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("occurrences mismatch (-want +got):\n%s", diff)
	}
}

type lockedStorage struct {
	mu sync.Mutex
	fakeStorage
}

func (l *lockedStorage) Insert(ctx context.Context, b dom.Batch) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fakeStorage.Insert(ctx, b)
}

func TestRecordAsync_DrainWaitsForWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := &lockedStorage{}
	s := New(st, Config{})
	for i := 0; i < 8; i++ {
		s.RecordAsync(dom.Batch{
			Source:      "cuneiform",
			Occurrences: []dom.Occurrence{{Key: "a", Sign: "A", Count: 1}},
		})
	}
	// nothing to record is not tracked
	s.RecordAsync(dom.Batch{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(st.batches) != 8 {
		t.Fatalf("batches = %d", len(st.batches))
	}
}

func TestRecordAsync_DroppedAfterDrain(t *testing.T) {
	st := &lockedStorage{}
	s := New(st, Config{})
	if err := s.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	s.RecordAsync(dom.Batch{Occurrences: []dom.Occurrence{{Key: "a", Sign: "A", Count: 1}}})
	if err := s.Drain(context.Background()); err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	if len(st.batches) != 0 {
		t.Fatalf("batches = %d after drain", len(st.batches))
	}
}

func TestRecordAsync_ConcurrentWithDrain(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	st := &lockedStorage{}
	s := New(st, Config{})
	batch := dom.Batch{Occurrences: []dom.Occurrence{{Key: "a", Sign: "A", Count: 1}}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.RecordAsync(batch)
			}
		}()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	wg.Wait()

	// everything accepted before the drain landed; later batches were dropped
	st.mu.Lock()
	got := len(st.batches)
	st.mu.Unlock()
	if err := s.Drain(ctx); err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(st.batches) != got || got > 16*20 {
		t.Fatalf("batches moved after drain: %d then %d", got, len(st.batches))
	}
}

func TestDrain_HonorsContext(t *testing.T) {
	s := New(nil, Config{})
	s.pending.Add(1)
	defer s.pending.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Drain(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
