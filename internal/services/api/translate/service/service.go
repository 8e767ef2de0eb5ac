// Package service contains translation workflows
package service

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"akkadian/internal/adapters/translator"
	"akkadian/internal/modkit/repokit"
	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"
	"akkadian/internal/services/api/translate/domain"
	"akkadian/internal/services/api/translate/repo"
)

// Service defines the translate service contract
type Service interface {
	domain.ServicePort
}

// Translator is the part of the translator adapter the service needs
type Translator interface {
	Available() bool
	Translate(ctx context.Context, text string) (translator.Result, error)
}

// Options configures the service
type Options struct {
	Translator Translator
	// DB and Binder enable the cache; both nil disables it
	DB           repokit.TxRunner
	Binder       repokit.Binder[repo.Repo]
	CacheTimeout time.Duration
}

// Svc implements the translate service
type Svc struct {
	tr     Translator
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
}

// New constructs a translate service
func New(o Options) *Svc {
	if o.Translator == nil {
		panic("translate.Service requires a non nil Translator")
	}
	s := &Svc{tr: o.Translator}
	if o.DB != nil && o.Binder != nil {
		timeout := o.CacheTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		s.db = repokit.WithBeginHooks(o.DB, repokit.StatementTimeout(timeout))
		s.binder = o.Binder
	}
	return s
}

// Digest keys the cache: blake3 of the trimmed text, hex encoded
func Digest(text string) string {
	sum := blake3.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// Translate implements domain.ServicePort
func (s *Svc) Translate(ctx context.Context, in domain.TranslateInput) (domain.TranslateOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return domain.TranslateOutput{}, perr.WithField(perr.InvalidArgf("text is required"), "text")
	}
	if !s.tr.Available() {
		return domain.TranslateOutput{}, perr.Unavailablef("translation service unavailable")
	}

	log := logger.C(ctx)
	digest := Digest(text)

	if row, ok := s.lookup(ctx, digest); ok {
		log.Debug().Str("digest", digest).Msg("translation cache hit")
		return domain.TranslateOutput{Translation: row.Translation, Chunks: row.Chunks, Cached: true}, nil
	}

	res, err := s.tr.Translate(ctx, text)
	if err != nil {
		return domain.TranslateOutput{}, err
	}
	s.store(ctx, repo.Row{Digest: digest, Source: text, Translation: res.Text, Chunks: res.Chunks})

	chunks := res.Chunks
	if chunks == nil {
		chunks = []string{}
	}
	return domain.TranslateOutput{Translation: res.Text, Chunks: chunks}, nil
}

// lookup misses on any cache error; the cache never fails a request
func (s *Svc) lookup(ctx context.Context, digest string) (repo.Row, bool) {
	if s.db == nil {
		return repo.Row{}, false
	}
	var (
		row repo.Row
		ok  bool
	)
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		row, ok, err = s.binder.Bind(q).Get(ctx, digest)
		return err
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("translation cache lookup failed")
		return repo.Row{}, false
	}
	return row, ok
}

func (s *Svc) store(ctx context.Context, row repo.Row) {
	if s.db == nil {
		return
	}
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Put(ctx, row)
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("translation cache write failed")
	}
}

// Sample implements domain.ServicePort
func (s *Svc) Sample(context.Context) (domain.SampleOutput, error) {
	return domain.SampleOutput{Text: translator.SampleText}, nil
}
