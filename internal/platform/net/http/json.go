package http

import (
	"net/http"

	"akkadian/internal/platform/net/http/bind"
)

// JSONBody decodes and validates a T from the body before calling fn.
// fn may return a Response to pick its own status
func JSONBody[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// NoBody calls fn without reading the body
func NoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
