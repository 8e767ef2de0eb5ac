// Package http holds the server, the chi router seam and the JSON envelope
// every endpoint answers with
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "akkadian/internal/platform/errors"
	pnet "akkadian/internal/platform/net"
)

// Envelope wraps every JSON body the api writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	// transliterations carry < and > for damaged text
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// Response is what return-style handlers hand back. An error Body picks
// its own status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent is a bodiless 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is a response whose status comes from err's code
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a return-style handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

// WriteError writes err as an envelope; used by middleware that has no Response
func WriteError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	Error(err).write(w, r)
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	env := Envelope{RequestID: pnet.RequestID(r.Context())}

	status := resp.Status
	if err, ok := resp.Body.(error); ok && err != nil {
		wire := perr.WireFrom(err)
		status = perr.HTTPStatus(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	} else {
		if status == 0 {
			status = stdhttp.StatusOK
		}
		if status == stdhttp.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		env.Data = resp.Body
	}
	env.StatusCode, env.Status = status, stdhttp.StatusText(status)
	JSON(w, status, env)
}
