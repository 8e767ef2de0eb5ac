package httpkit

import (
	"net/http"
	"time"

	"akkadian/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins lists allowed origins; empty allows none
	CORSOrigins []string
	// Timeout cancels the request context, default 30s
	Timeout time.Duration
	// Slow is where access lines turn to warn, default 500ms
	Slow time.Duration
}

// CommonStack is the middleware every V1 route runs behind, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 500 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Conversion,
		middleware.AccessLog(o.Slow),
		middleware.Recover,
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: o.CORSOrigins,
			ExposedHeaders: []string{"X-Request-Id", middleware.ConversionHeader},
		}),
		middleware.NoCache(),
		middleware.Heartbeat(V1 + "/health"),
		middleware.StripSlashes(),
		middleware.Compress(),
		middleware.Timeout(o.Timeout),
	}
}

// Throttle caps a module's in-flight requests; see middleware.Throttle
func Throttle(limit, backlog int, wait time.Duration) func(http.Handler) http.Handler {
	return middleware.Throttle(limit, backlog, wait)
}
