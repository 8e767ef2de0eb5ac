// Package service contains corpus search workflows
package service

import (
	"context"
	"strings"

	"akkadian/internal/adapters/cdli"
	"akkadian/internal/core/cuneify"
	"akkadian/internal/core/passage"
	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"
	pnet "akkadian/internal/platform/net"
	"akkadian/internal/services/api/search/domain"
	usage "akkadian/internal/services/signusage/domain"
	usagesvc "akkadian/internal/services/signusage/service"
)

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Searcher is the part of the corpus client the service needs
type Searcher interface {
	SearchURL(term string) string
	Search(ctx context.Context, term string) ([]cdli.Artifact, error)
}

// Options configures the service
type Options struct {
	Searcher     Searcher
	Converter    *cuneify.Converter
	Usage        domain.UsagePort // optional
	TableVersion string
}

// Svc implements the search service
type Svc struct {
	search  Searcher
	conv    *cuneify.Converter
	usage   domain.UsagePort
	version string
}

// New constructs a search service
func New(o Options) *Svc {
	if o.Searcher == nil {
		panic("search.Service requires a non nil Searcher")
	}
	if o.Converter == nil {
		panic("search.Service requires a non nil Converter")
	}
	return &Svc{search: o.Searcher, conv: o.Converter, usage: o.Usage, version: o.TableVersion}
}

// Search implements domain.ServicePort
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput, error) {
	term := strings.TrimSpace(in.Text)
	if term == "" {
		return domain.SearchOutput{}, perr.WithField(perr.InvalidArgf("text is required"), "text")
	}

	arts, err := s.search.Search(ctx, term)
	if err != nil {
		return domain.SearchOutput{}, err
	}

	var (
		occ  []usage.Occurrence
		line int
	)
	out := domain.SearchOutput{
		Query:     term,
		SourceURL: s.search.SearchURL(term),
		Results:   make([]domain.Result, 0, len(arts)),
	}
	for _, a := range arts {
		res, found := s.result(a, line)
		line += len(res.Passages)
		occ = append(occ, found...)
		out.Results = append(out.Results, res)
	}

	logger.C(ctx).Debug().Str("query", term).Int("results", len(out.Results)).Msg("corpus search")
	s.record(ctx, occ)
	return out, nil
}

// result renders every passage of a; passage i is usage line base+i
func (s *Svc) result(a cdli.Artifact, base int) (domain.Result, []usage.Occurrence) {
	texts, rep := passage.SplitReport(a.Transliteration)

	meta := a.Metadata
	if meta == nil {
		meta = []cdli.Field{}
	}
	res := domain.Result{
		Title:           a.Title,
		ArtifactLink:    a.ArtifactLink,
		ImageURL:        a.ImageURL,
		Metadata:        meta,
		Transliteration: a.Transliteration,
		Passages:        make([]domain.Passage, 0, len(texts)),
		Unparsed:        rep.Unparsed,
	}

	var occ []usage.Occurrence
	for i, t := range texts {
		lines := cuneify.DefaultPolicy.Pick(s.conv.Map(t))
		res.Passages = append(res.Passages, domain.Passage{
			Text:      t,
			Cuneiform: cuneify.Render(lines, cuneify.DefaultPolicy),
		})
		for _, o := range usagesvc.Occurrences(lines) {
			o.Line = base + i
			occ = append(occ, o)
		}
	}
	return res, occ
}

func (s *Svc) record(ctx context.Context, occ []usage.Occurrence) {
	if s.usage == nil || len(occ) == 0 {
		return
	}
	s.usage.RecordAsync(usage.Batch{
		ConversionID: pnet.ConversionID(ctx),
		TableVersion: s.version,
		Source:       "search",
		Occurrences:  occ,
	})
}
