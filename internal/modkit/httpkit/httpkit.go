// Package httpkit is what modules import for routing; it keeps them off
// the platform http package
package httpkit

import (
	"net/http"

	phttp "akkadian/internal/platform/net/http"
)

type (
	// Router is the routing seam
	Router = phttp.Router
	// Envelope is the body every endpoint answers with; named in swagger docs
	Envelope = phttp.Envelope
	// Response lets a handler pick its status
	Response = phttp.Response
)

// V1 is the mount point of every module
const V1 = "/api/v1"

// Get registers a handler that takes no body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBody(h))
}

// PostJSON registers a handler for a validated JSON body of type T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONBody(h))
}

// MountV1 runs mount on a router scoped to V1 behind mw
func MountV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(V1, func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
