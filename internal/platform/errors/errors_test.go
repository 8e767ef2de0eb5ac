package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode(500), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.code.Status(); got != c.want {
			t.Errorf("code %d: status %d want %d", c.code, got, c.want)
		}
	}
}

func TestErrorString(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render %q", nilErr.Error())
	}
	if got := InvalidArgf("unknown policy %q", "every").Error(); got != `unknown policy "every"` {
		t.Fatalf("got %q", got)
	}
	cause := stderrs.New("connection refused")
	err := Wrapf(cause, ErrorCodeUnavailable, "translator %s", "down")
	if got := err.Error(); got != "translator down: connection refused" {
		t.Fatalf("got %q", got)
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("cause lost")
	}
}

func TestCodeOf_FindsCodeThroughWrapping(t *testing.T) {
	inner := Upstreamf("cdli answered 500")
	outer := fmt.Errorf("search: %w", inner)

	if CodeOf(outer) != ErrorCodeUpstream {
		t.Fatalf("code %v", CodeOf(outer))
	}
	if HTTPStatus(outer) != http.StatusBadGateway {
		t.Fatalf("status %d", HTTPStatus(outer))
	}
	if CodeOf(context.Canceled) != ErrorCodeUnknown {
		t.Fatal("foreign errors are unknown")
	}
	if _, ok := As(context.Canceled); ok {
		t.Fatal("As matched a foreign error")
	}
}

func TestWithField_CopiesOnWrite(t *testing.T) {
	base := New(ErrorCodeValidation, "required")
	named := WithField(base, "text")

	if e, _ := As(base); e.Field() != "" {
		t.Fatal("original mutated")
	}
	if e, _ := As(named); e.Field() != "text" || e.Code() != ErrorCodeValidation {
		t.Fatalf("got %+v", e)
	}

	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatal("foreign error should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Wire
	}{
		{"nil", nil, Wire{}},
		{"coded", WithField(JSONErrf("bad body"), "lines"), Wire{Code: ErrorCodeJSON, Message: "bad body", Field: "lines"}},
		{"wrapped cause hidden", Wrapf(stderrs.New("dial tcp"), ErrorCodeUnavailable, "store down"), Wire{Code: ErrorCodeUnavailable, Message: "store down"}},
		{"foreign", stderrs.New("boom"), Wire{Code: ErrorCodeUnknown, Message: "boom"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WireFrom(c.err); got != c.want {
				t.Fatalf("got %+v want %+v", got, c.want)
			}
		})
	}
}

func TestRoot(t *testing.T) {
	cause := stderrs.New("eof")
	err := fmt.Errorf("read: %w", Wrapf(cause, ErrorCodeUpstream, "decode"))
	if Root(err) != cause {
		t.Fatalf("root %v", Root(err))
	}
	if Root(nil) != nil {
		t.Fatal("nil root")
	}
	if got := PanicErrf("x"); Root(got) != got {
		t.Fatal("unwrapped error is its own root")
	}
}
