// Package logger owns the process zerolog logger and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"producescan/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string // zerolog level name, "warning" accepted, default debug
	Format      string // "console" or "json"
	Service     string
	Component   string
	Writer      io.Writer // default stdout
	WithCaller  bool
	SampleEvery int // keep 1 of every N events when above 1

	// StaticFields are stamped on every line, e.g. version and label set
	StaticFields map[string]string
}

// FromEnv reads LOG_*, service is the default for LOG_SERVICE
// it goes through raw because config logs and would recurse into Get
func FromEnv(service string) Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(rc.Get("LEVEL", "debug")),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", service),
		Component:   rc.Get("COMPONENT", ""),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv("producescan"))
	return root.Load()
}

// Init builds the root logger, only the first call in a process has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opt.Writer
		if w == nil {
			w = os.Stdout
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		fields := map[string]any{}
		for k, v := range opt.StaticFields {
			fields[k] = v
		}
		if opt.Service != "" {
			fields["service"] = opt.Service
		}
		if opt.Component != "" {
			fields["component"] = opt.Component
		}
		if bi, ok := debug.ReadBuildInfo(); ok {
			fields["go_version"] = bi.GoVersion
		}

		b := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Fields(fields)
		if opt.WithCaller {
			b = b.Caller()
		}
		l := b.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
	})
}

// parseLevel accepts zerolog level names plus "warning", anything else is debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

// WithRequest returns ctx carrying a child of C(ctx) with request_id and actor added
// empty values are skipped, so a later call can add the actor alone
func WithRequest(ctx context.Context, reqID, actor string) context.Context {
	if reqID == "" && actor == "" {
		return ctx
	}
	b := C(ctx).With()
	if reqID != "" {
		b = b.Str("request_id", reqID)
	}
	if actor != "" {
		b = b.Str("actor", actor)
	}
	l := b.Logger()
	return l.WithContext(ctx)
}

// C returns the logger carried by ctx, or the root logger
func C(ctx context.Context) *Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return Get()
}

// Named returns a child of the root logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
