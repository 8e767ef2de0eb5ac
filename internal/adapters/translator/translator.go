// Package translator turns Akkadian transliteration into English through a remote model backend
//
// Input is cut into fixed size word chunks, each chunk is sent to the backend
// on its own, and the answers are joined with a single space in input order.
package translator

import (
	"context"
	"strings"

	"akkadian/internal/core/passage"
	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// SampleText is the fixed sentence served by the sample endpoint
const SampleText = "un-gal_-_nibru-ki gaszan_ szur-bu-tu _gaszan_-ia szi-pir szu-a-tu ha-disz lip-pa-lis-ma a-mat _sig5_-ti-ia lisz-szA-kin szap-tusz-szA _tin ud-mesz su-mesz_ sze-b√©-e lit-tu-u-tu _dug_-ub _uzu_ u hu-ud lib-bi li-szim szi-ma-a-ti"

const defaultWorkers = 4

// Backend translates one chunk
type Backend interface {
	Translate(ctx context.Context, chunk string) (string, error)
}

// BackendFunc adapts a function to Backend
type BackendFunc func(ctx context.Context, chunk string) (string, error)

// Translate calls f
func (f BackendFunc) Translate(ctx context.Context, chunk string) (string, error) { return f(ctx, chunk) }

// Config tunes chunking and fan out
type Config struct {
	// ChunkWords is the number of words per backend call, zero means 20
	ChunkWords int
	// Workers bounds concurrent backend calls, zero means 4
	Workers int
}

// Result is a finished translation
type Result struct {
	Text   string   `json:"text"`
	Chunks []string `json:"chunks"`
}

// Translator fans chunks out to a Backend
type Translator struct {
	backend Backend
	cfg     Config
	log     logger.Logger
}

// New builds a Translator; a nil backend makes every call fail as unavailable
func New(b Backend, cfg Config) *Translator {
	if cfg.ChunkWords <= 0 {
		cfg.ChunkWords = passage.DefaultWords
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Translator{backend: b, cfg: cfg, log: *logger.Named("translator")}
}

// Available reports whether a backend is configured
func (t *Translator) Available() bool { return t != nil && t.backend != nil }

// Config returns the effective configuration
func (t *Translator) Config() Config { return t.cfg }

// Translate chunks text and translates every chunk
// the first failing chunk cancels the rest
func (t *Translator) Translate(ctx context.Context, text string) (Result, error) {
	if !t.Available() {
		return Result{}, perr.Unavailablef("translation service unavailable")
	}
	chunks := passage.Words(text, t.cfg.ChunkWords)
	if len(chunks) == 0 {
		return Result{}, perr.InvalidArgf("text is required")
	}

	out := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			s, err := t.backend.Translate(gctx, chunk)
			if err != nil {
				return err
			}
			out[i] = strings.TrimSpace(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.log.Warn().Err(err).Int("chunks", len(chunks)).Msg("translation failed")
		return Result{}, classify(ctx, err)
	}

	t.log.Debug().Int("chunks", len(chunks)).Msg("translation done")
	return Result{Text: strings.Join(out, " "), Chunks: out}, nil
}

// classify keeps coded errors and maps context failures
func classify(ctx context.Context, err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	if ctx.Err() != nil {
		return perr.Wrapf(err, perr.ErrorCodeTimeout, "translation timed out")
	}
	return perr.Wrapf(err, perr.ErrorCodeUpstream, "translation backend error")
}
