// Package bind decodes request bodies and validates them with
// go-playground/validator, turning failures into coded errors
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"
)

// MaxBody caps how much of a request body ParseJSON reads
var MaxBody int64 = 1 << 20

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	chk  *checker
)

// validatorFor builds the shared validator on first use. Messages name
// fields by their json tag
func validatorFor() *checker {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = entrans.RegisterDefaultTranslations(v, trans)

		message(v, trans, "min", "{0} must be at least {1}")
		message(v, trans, "max", "{0} must be at most {1}")
		_ = v.RegisterValidation("translit", translit)
		message(v, trans, "translit", "{0} must be printable transliteration text")

		chk = &checker{v: v, trans: trans}
	})
	return chk
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// message overrides the english text for tag; {0} is the field, {1} the param
func message(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// translit accepts UTF-8 text without control characters other than the
// line breaks and tabs pasted tablet text keeps
func translit(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
	}
	return true
}

// ParseJSON decodes exactly one JSON value into T, rejecting unknown
// fields, then validates it
func ParseJSON[T any](r *http.Request) (T, error) {
	var out T
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("closing request body")
		}
	}()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, perr.JSONErrf("empty body")
		}
		return out, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected trailing data")
	}
	return out, Validate(out)
}

// Validate checks v's validate tags. The first failing field is named on
// the returned error
func Validate(v any) error {
	c := validatorFor()
	err := c.v.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		logger.Get().Error().Err(err).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	fe := fields[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(c.trans)), fe.Field())
}
