package middleware

import (
	"net/http"

	"github.com/google/uuid"

	pnet "akkadian/internal/platform/net"
)

// ConversionHeader carries the conversion id in both directions
const ConversionHeader = "X-Conversion-ID"

// Conversion puts a conversion id on every request. A uuid sent by the
// client is kept; anything else is replaced
func Conversion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id, err := uuid.Parse(r.Header.Get(ConversionHeader)); err == nil {
			ctx = pnet.WithRequest(ctx, "", id.String())
		}
		ctx, id := pnet.EnsureConversion(ctx)
		w.Header().Set(ConversionHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
