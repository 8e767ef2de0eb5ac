// Package service contains stats workflows
package service

import (
	"context"
	"time"

	"akkadian/internal/services/api/stats/domain"
	usage "akkadian/internal/services/signusage/domain"
)

const (
	defaultLimit = 20
	defaultDays  = 30
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Query usage.QueryPort
	now   func() time.Time
}

// New constructs a stats service
func New(q usage.QueryPort) *Svc {
	if q == nil {
		panic("stats.Service requires a non nil QueryPort")
	}
	return &Svc{Query: q, now: func() time.Time { return time.Now().UTC() }}
}

// TopSigns returns the most frequent signs in the window
func (s *Svc) TopSigns(ctx context.Context, in domain.TopSignsInput) (domain.TopSignsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	days := in.Days
	if days <= 0 {
		days = defaultDays
	}
	until := s.now()
	since := until.AddDate(0, 0, -days)

	rows, err := s.Query.TopSigns(ctx, usage.Window{Since: since, Until: until}, limit)
	if err != nil {
		return domain.TopSignsOutput{}, err
	}
	out := domain.TopSignsOutput{
		Since: since.Format(time.DateOnly),
		Until: until.Format(time.DateOnly),
		Signs: make([]domain.SignRow, 0, len(rows)),
	}
	for _, r := range rows {
		out.Signs = append(out.Signs, domain.SignRow{Sign: r.Sign, Count: r.Count, Conversions: r.Conversions})
	}
	return out, nil
}
