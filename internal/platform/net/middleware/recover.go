package middleware

import (
	"net/http"
	"runtime/debug"

	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"
	phttp "akkadian/internal/platform/net/http"
)

// Recover turns a panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.WriteError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
