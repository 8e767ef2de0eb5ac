package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "akkadian/internal/platform/errors"
)

type lineReq struct {
	Text  string `json:"text" validate:"required,translit"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Note  string `validate:"max=3"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{name: "ok", body: `{"text":"a-na be-li₂-ia"}`},
		{name: "keeps line breaks", body: `{"text":"1. a-na\n2. be-li"}`},
		{name: "empty", body: ``, code: perr.ErrorCodeJSON, msg: "empty body"},
		{name: "broken", body: `{"text":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"text":"a","policy":"x"}`, code: perr.ErrorCodeJSON},
		{name: "trailing", body: `{"text":"a"}{"text":"b"}`, code: perr.ErrorCodeJSON, msg: "unexpected trailing data"},
		{name: "required", body: `{}`, code: perr.ErrorCodeValidation, field: "text"},
		{name: "control char", body: `{"text":"a\u0007na"}`, code: perr.ErrorCodeValidation, field: "text", msg: "text must be printable transliteration text"},
		{name: "min", body: `{"text":"a","limit":-1}`, code: perr.ErrorCodeValidation, field: "limit", msg: "limit must be at least 1"},
		{name: "max", body: `{"text":"a","limit":99}`, code: perr.ErrorCodeValidation, field: "limit", msg: "limit must be at most 50"},
		{name: "untagged field name", body: `{"text":"a","Note":"long"}`, code: perr.ErrorCodeValidation, field: "Note"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[lineReq](post(c.body))
			if c.code == 0 {
				if err != nil {
					t.Fatalf("unexpected %v", err)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != c.code {
				t.Fatalf("got %v want code %d", err, c.code)
			}
			if e.Field() != c.field {
				t.Fatalf("field %q want %q", e.Field(), c.field)
			}
			if c.msg != "" && err.Error() != c.msg {
				t.Fatalf("msg %q want %q", err.Error(), c.msg)
			}
		})
	}
}

func TestParseJSON_BodyLimit(t *testing.T) {
	old := MaxBody
	MaxBody = 16
	t.Cleanup(func() { MaxBody = old })

	_, err := ParseJSON[lineReq](post(`{"text":"` + strings.Repeat("a", 64) + `"}`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if perr.CodeOf(Validate("a-na")) != perr.ErrorCodeJSON {
		t.Fatal("expected misuse to surface as a json error")
	}
}
