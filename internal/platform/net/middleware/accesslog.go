package middleware

import (
	"net/http"
	"time"

	"producescan/internal/platform/logger"
	pnet "producescan/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLog writes one line per request and puts a request scoped logger on the context
// the line is warn when the request took slow or longer (0 turns that off) and error on a 5xx
// mount it after RequestID
func AccessLog(slow time.Duration) Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))
			took := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			lvl := zerolog.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				lvl = zerolog.ErrorLevel
			case slow > 0 && took >= slow:
				lvl = zerolog.WarnLevel
			}
			logger.C(ctx).WithLevel(lvl).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
