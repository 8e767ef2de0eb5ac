// Package service contains cuneiform rendering workflows
package service

import (
	"context"

	"akkadian/internal/core/cuneify"
	perr "akkadian/internal/platform/errors"
	pnet "akkadian/internal/platform/net"
	"akkadian/internal/services/api/cuneiform/domain"
	usage "akkadian/internal/services/signusage/domain"
	usagesvc "akkadian/internal/services/signusage/service"
)

// Service defines the cuneiform service contract
type Service interface {
	domain.ServicePort
}

// Options configures the service
type Options struct {
	Converter    *cuneify.Converter
	Usage        domain.UsagePort // optional
	TableVersion string
}

// Svc implements the cuneiform service
type Svc struct {
	conv    *cuneify.Converter
	usage   domain.UsagePort
	version string
}

// New constructs a cuneiform service
func New(o Options) *Svc {
	if o.Converter == nil {
		panic("cuneiform.Service requires a non nil Converter")
	}
	return &Svc{conv: o.Converter, usage: o.Usage, version: o.TableVersion}
}

// policy resolves the request policy against the converter default
func (s *Svc) policy(in domain.RenderInput) (cuneify.Policy, error) {
	def := s.conv.Policy()
	if in.Policy == "" && in.Separator == nil {
		return def, nil
	}
	name := in.Policy
	if name == "" {
		name = def.String()
	}
	sep := def.Separator
	if in.Separator != nil {
		sep = *in.Separator
	}
	p, err := cuneify.ParsePolicy(name, sep)
	if err != nil {
		return cuneify.Policy{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown policy %q", name), "policy")
	}
	return p, nil
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Render implements domain.ServicePort
func (s *Svc) Render(ctx context.Context, in domain.RenderInput) (domain.RenderOutput, error) {
	res, err := s.analyze(ctx, in)
	if err != nil {
		return domain.RenderOutput{}, err
	}
	return domain.RenderOutput{
		Cuneiform:    res.Cuneiform,
		Normalized:   res.Normalized,
		Lines:        len(res.Lines),
		Policy:       res.Policy,
		ConversionID: res.ConversionID,
	}, nil
}

// Analyze implements domain.ServicePort
func (s *Svc) Analyze(ctx context.Context, in domain.RenderInput) (domain.AnalyzeOutput, error) {
	return s.analyze(ctx, in)
}

func (s *Svc) analyze(ctx context.Context, in domain.RenderInput) (domain.AnalyzeOutput, error) {
	p, err := s.policy(in)
	if err != nil {
		return domain.AnalyzeOutput{}, err
	}
	res := s.conv.Analyze(text(in.Text), p)
	lines := res.Lines
	if lines == nil {
		lines = []cuneify.Line{}
	}

	unresolved := 0
	for _, ln := range lines {
		for _, c := range ln.Chunks {
			if c.Kind == cuneify.Unresolved {
				unresolved++
			}
		}
	}

	out := domain.AnalyzeOutput{
		ConversionID: pnet.ConversionID(ctx),
		Normalized:   res.Normalized,
		Cuneiform:    res.Output,
		Policy:       res.Policy,
		Lines:        lines,
		Occurrences:  res.Occurrences,
		Unresolved:   unresolved,
	}
	s.record(out.ConversionID, p.Pick(lines))
	return out, nil
}

// record reports resolved signs of the rendered lines
func (s *Svc) record(conversionID string, lines []cuneify.Line) {
	if s.usage == nil {
		return
	}
	occ := usagesvc.Occurrences(lines)
	if len(occ) == 0 {
		return
	}
	s.usage.RecordAsync(usage.Batch{
		ConversionID: conversionID,
		TableVersion: s.version,
		Source:       "cuneiform",
		Occurrences:  occ,
	})
}

// Normalize implements domain.ServicePort
func (s *Svc) Normalize(_ context.Context, in domain.NormalizeInput) (domain.NormalizeOutput, error) {
	return domain.NormalizeOutput{Normalized: s.conv.Normalize(text(in.Text))}, nil
}
