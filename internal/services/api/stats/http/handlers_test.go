package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "akkadian/internal/platform/errors"
	phttp "akkadian/internal/platform/net/http"
	"akkadian/internal/services/api/stats/domain"
)

type fakeSvc struct {
	in  domain.TopSignsInput
	err error
}

func (f *fakeSvc) TopSigns(_ context.Context, in domain.TopSignsInput) (domain.TopSignsOutput, error) {
	f.in = in
	return domain.TopSignsOutput{Signs: []domain.SignRow{}}, f.err
}

func serve(s *fakeSvc, target string) *httptest.ResponseRecorder {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), s)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	return rec
}

func TestSigns_Query(t *testing.T) {
	cases := []struct {
		name   string
		target string
		status int
		want   domain.TopSignsInput
	}{
		{"defaults", "/signs", stdhttp.StatusOK, domain.TopSignsInput{}},
		{"limit and days", "/signs?limit=5&days=7", stdhttp.StatusOK, domain.TopSignsInput{Limit: 5, Days: 7}},
		{"not a number", "/signs?limit=five", stdhttp.StatusBadRequest, domain.TopSignsInput{}},
		{"out of range", "/signs?limit=5000", stdhttp.StatusBadRequest, domain.TopSignsInput{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &fakeSvc{}
			rec := serve(s, c.target)
			if rec.Code != c.status {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			if s.in != c.want {
				t.Fatalf("input = %+v, want %+v", s.in, c.want)
			}
		})
	}
}

func TestSigns_Disabled(t *testing.T) {
	rec := serve(&fakeSvc{err: perr.Unavailablef("sign usage disabled")}, "/signs")
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
