package http

import "net/http"

// Handler is the handler shape modules register
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(prefix string, fn func(Router))

	// Mux is the underlying handler, for tests and servers
	Mux() http.Handler
}
