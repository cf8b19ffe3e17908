// Package middleware adapts chi and go-chi/cors middleware to plain net/http signatures
package middleware

import (
	"net/http"
	"time"

	pstrings "producescan/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Func is the net/http middleware shape the router facade accepts
type Func = func(http.Handler) http.Handler

func fixed(f Func) func() Func { return func() Func { return f } }

var (
	// RequestID reuses an inbound X-Request-Id or mints one
	RequestID = fixed(chimw.RequestID)
	// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
	RealIP = fixed(chimw.RealIP)
	// NoCache keeps scan results out of shared caches
	NoCache = fixed(chimw.NoCache)
	// RedirectSlashes redirects /nutrition/ to /nutrition
	RedirectSlashes = fixed(chimw.RedirectSlashes)
	// StripSlashes routes /nutrition/ as /nutrition without a redirect
	StripSlashes = fixed(chimw.StripSlashes)
)

// Timeout cancels the request context after d
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// Compress gzips and deflates responses, level is a compress/flate level
func Compress(level int) Func {
	return chimw.NewCompressor(level).Handler
}

// throttleRetry is advertised in Retry-After on a 429
const throttleRetry = time.Second

// Throttle admits at most limit concurrent requests, the rest get 429 without queueing
func Throttle(limit int) Func {
	return chimw.ThrottleWithOpts(chimw.ThrottleOpts{
		Limit:        limit,
		RetryAfterFn: func(bool) time.Duration { return throttleRetry },
	})
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
)

// CORSOptions is the subset of go-chi/cors the API sets
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS builds a go-chi/cors handler, unset method and header lists fall back to what the API serves
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
