package middleware

import (
	"net/http"
	"runtime/debug"

	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/logger"
	pnet "producescan/internal/platform/net"
	phttp "producescan/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into the error envelope with status 500
// http.ErrAbortHandler is re-raised so net/http can drop the connection quietly
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			phttp.JSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
