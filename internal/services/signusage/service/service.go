// Package service implements sign usage recording and queries
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"akkadian/internal/core/cuneify"
	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"
	dom "akkadian/internal/services/signusage/domain"
	"akkadian/internal/services/signusage/repo"
)

// Config for the sign usage service
type Config struct {
	HardLimit int
}

// Service implements domain.RecorderPort and domain.QueryPort
// a nil Storage disables recording and fails queries as unavailable
type Service struct {
	Storage repo.Storage
	Cfg     Config

	log logger.Logger
	now func() time.Time

	// mu orders pending.Add against the Wait in Drain
	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// New constructs the service; storage may be nil
func New(storage repo.Storage, cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	return &Service{
		Storage: storage,
		Cfg:     cfg,
		log:     *logger.Named("signusage"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether a backing store is configured
func (s *Service) Enabled() bool { return s != nil && s.Storage != nil }

// Record implements domain.RecorderPort
func (s *Service) Record(ctx context.Context, b dom.Batch) error {
	if !s.Enabled() || len(b.Occurrences) == 0 {
		return nil
	}
	if b.At.IsZero() {
		b.At = s.now()
	}
	if _, err := uuid.Parse(b.ConversionID); err != nil {
		b.ConversionID = uuid.NewString()
	}
	if err := s.Storage.Insert(ctx, b); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "sign usage insert failed")
	}
	return nil
}

// TopSigns implements domain.QueryPort
func (s *Service) TopSigns(ctx context.Context, w dom.Window, limit int) ([]dom.SignCount, error) {
	if !s.Enabled() {
		return nil, perr.Unavailablef("sign usage analytics disabled")
	}
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	if w.Until.IsZero() {
		w.Until = s.now()
	}
	if !w.Since.Before(w.Until) {
		return nil, perr.InvalidArgf("window start must be before end")
	}
	rows, err := s.Storage.TopSigns(ctx, w, limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "sign usage query failed")
	}
	if rows == nil {
		rows = []dom.SignCount{}
	}
	return rows, nil
}

// Occurrences flattens resolved chunks of lines into per line sign counts
// output is ordered by line then key
func Occurrences(lines []cuneify.Line) []dom.Occurrence {
	var out []dom.Occurrence
	for _, ln := range lines {
		type k struct{ key, sign string }
		counts := map[k]int{}
		for _, c := range ln.Chunks {
			if c.Kind == cuneify.Resolved {
				counts[k{c.Key, c.Sign}]++
			}
		}
		start := len(out)
		for kk, n := range counts {
			out = append(out, dom.Occurrence{Line: ln.Index, Key: kk.key, Sign: kk.sign, Count: n})
		}
		part := out[start:]
		sort.Slice(part, func(i, j int) bool { return part[i].Key < part[j].Key })
	}
	return out
}

// RecordAsync records b on its own goroutine with a short deadline
// failures are logged and never reach the caller. Batches handed in after
// Drain has started are dropped
func (s *Service) RecordAsync(b dom.Batch) {
	if !s.Enabled() || len(b.Occurrences) == 0 {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Debug().Str("conversion_id", b.ConversionID).Msg("sign usage dropped after drain")
		return
	}
	s.pending.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Record(ctx, b); err != nil {
			s.log.Warn().Err(err).Str("conversion_id", b.ConversionID).Msg("sign usage not recorded")
		}
	}()
}

// Drain stops accepting RecordAsync batches and blocks until every
// accepted write has finished or ctx is done
func (s *Service) Drain(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
