package modkit

import (
	"net/http"

	"akkadian/internal/modkit/httpkit"
	pstrings "akkadian/internal/platform/strings"
)

// Built is the result of applying options; modules keep it and mount
// through it
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order, later options winning
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// InjectedPorts returns b.Ports as T, or the zero T when none or another
// type was injected
func InjectedPorts[T any](b Built) T {
	p, _ := b.Ports.(T)
	return p
}

// Mount routes register under b.Prefix behind b's middleware. An empty
// prefix panics
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(pstrings.MustPrefix(b.Prefix), func(sub httpkit.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		register(sub)
	})
}
