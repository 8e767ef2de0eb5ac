package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "akkadian/internal/platform/net"
	"akkadian/internal/platform/net/middleware"

	"github.com/google/uuid"
)

func TestConversion_MintsID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.ConversionID(r.Context())
	})

	rr := httptest.NewRecorder()
	middleware.Conversion(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if seen == "" {
		t.Fatal("expected a conversion id on the context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("minted id is not a uuid: %q", seen)
	}
	if got := rr.Header().Get(middleware.ConversionHeader); got != seen {
		t.Fatalf("header %q does not echo context id %q", got, seen)
	}
}

func TestConversion_ReusesClientID(t *testing.T) {
	const in = "0192f2a4-6f1e-7c3a-9d2b-5e8f1a2b3c4d"

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.ConversionID(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(middleware.ConversionHeader, in)
	rr := httptest.NewRecorder()
	middleware.Conversion(next).ServeHTTP(rr, req)

	if seen != in {
		t.Fatalf("want %q got %q", in, seen)
	}
}

func TestConversion_ReplacesGarbage(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.ConversionID(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(middleware.ConversionHeader, "not-an-id\n")
	rr := httptest.NewRecorder()
	middleware.Conversion(next).ServeHTTP(rr, req)

	if seen == "" || seen == "not-an-id\n" {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
}
