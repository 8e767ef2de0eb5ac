package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter satisfies Router for a chi mux or any of its sub routers
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi router
func AdaptChi(r chi.Router) Router { return chiRouter{r: r} }

func (c chiRouter) Get(p string, h Handler)  { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler) { c.r.Post(p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
