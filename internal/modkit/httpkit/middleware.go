package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "producescan/internal/platform/net/http"
	"producescan/internal/platform/net/middleware"
)

// CommonStack returns the middleware every API route runs behind
// auth is applied per module
func CommonStack(corsOrigins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		// outside the recoverer so a recovered panic still gets its 500 line
		middleware.AccessLog(500 * time.Millisecond),
		middleware.RecoverJSON,
		middleware.NoCache(),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: corsOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth rejects unauthenticated requests with the JSON envelope
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// OptionalAuth is Auth that lets requests without an Authorization header through
func OptionalAuth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.OptionalAuth(p, phttp.JSON)
}
