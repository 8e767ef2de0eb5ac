package http

import (
	stdhttp "net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	pprof := stdhttp.StripPrefix(prefix, chimw.Profiler())
	r.Handle(prefix, pprof)
	r.Handle(prefix+"/*", pprof)
}
