// Package middleware holds the http middleware the api stack is built
// from: chi's stock pieces behind plain func types, plus our own
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	pstrings "akkadian/internal/platform/strings"
)

// Middleware is the shape everything here returns
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an incoming X-Request-Id or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// NoCache marks every response uncacheable
func NoCache() Middleware { return chimw.NoCache }

// StripSlashes routes /render/ as /render
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with a bare 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips and deflates responses at flate.BestSpeed
func Compress() Middleware { return chimw.Compress(flate.BestSpeed) }

// Throttle admits limit requests at once, queues up to backlog more for
// wait and refuses the rest with 429
func Throttle(limit, backlog int, wait time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// CORSOptions is the part of go-chi/cors we configure
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int
}

// CORS applies o, defaulting methods to GET, POST and OPTIONS and headers
// to the ones the api reads
func CORS(o CORSOptions) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id", ConversionHeader}),
		ExposedHeaders: o.ExposedHeaders,
		MaxAge:         o.MaxAge,
	})
}
