package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	perr "akkadian/internal/platform/errors"
	phttp "akkadian/internal/platform/net/http"
	"akkadian/internal/platform/net/middleware"
)

type normalizeIn struct {
	Text string `json:"text" validate:"required"`
}

func newAPI(t *testing.T) Router {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	MountV1(r, CommonStack(StackOptions{CORSOrigins: []string{"*"}}), func(api Router) {
		api.Route("/cuneiform", func(c Router) {
			PostJSON(c, "/normalize", func(_ *http.Request, in normalizeIn) (any, error) {
				return map[string]string{"normalized": strings.ToLower(in.Text)}, nil
			})
			Get(c, "/boom", func(*http.Request) (any, error) { panic("boom") })
			Get(c, "/gone", func(*http.Request) (any, error) { return nil, errors.New("gone") })
		})
	})
	return r
}

func do(r Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	return rec
}

func TestMountV1_Stack(t *testing.T) {
	r := newAPI(t)

	rec := do(r, http.MethodPost, V1+"/cuneiform/normalize/", `{"text":"SZA"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d %s", rec.Code, rec.Body.String())
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.RequestID == "" || env.Data.(map[string]any)["normalized"] != "sza" {
		t.Fatalf("envelope %+v", env)
	}
	if _, err := uuid.Parse(rec.Header().Get(middleware.ConversionHeader)); err != nil {
		t.Fatalf("conversion header %q", rec.Header().Get(middleware.ConversionHeader))
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatal("no cache headers")
	}
}

func TestMountV1_Errors(t *testing.T) {
	r := newAPI(t)
	cases := []struct {
		method, path, body string
		status             int
		code               perr.ErrorCode
	}{
		{http.MethodGet, V1 + "/cuneiform/boom", "", http.StatusInternalServerError, perr.ErrorCodePanic},
		{http.MethodGet, V1 + "/cuneiform/gone", "", http.StatusInternalServerError, perr.ErrorCodeUnknown},
		{http.MethodPost, V1 + "/cuneiform/normalize", `{}`, http.StatusBadRequest, perr.ErrorCodeValidation},
	}
	for _, c := range cases {
		rec := do(r, c.method, c.path, c.body)
		var env Envelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		if rec.Code != c.status || env.Code != c.code {
			t.Errorf("%s: %d %+v", c.path, rec.Code, env)
		}
	}
}

func TestMountV1_Heartbeat(t *testing.T) {
	rec := do(newAPI(t), http.MethodGet, V1+"/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
