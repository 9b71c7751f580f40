// Package logger owns the process zerolog root and request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger under the project name
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Format  string // "console" or "json"
	Service string
	Writer  io.Writer
	Caller  bool
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER.
// It uses os directly since config logs through this package.
func FromEnv() Options {
	env := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	caller := strings.ToLower(env("CALLER", ""))
	return Options{
		Level:   env("LEVEL", "info"),
		Format:  strings.ToLower(env("FORMAT", "console")),
		Service: env("SERVICE", "jobmail"),
		Caller:  caller == "1" || caller == "true",
	}
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init builds the root logger; only the first call has effect
func Init(opt Options) {
	once.Do(func() { root = build(opt) })
}

func build(opt Options) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opt.Writer
	if w == nil {
		w = os.Stderr
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	c := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Caller {
		c = c.Caller()
	}
	return c.Logger()
}

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	once.Do(func() { root = build(FromEnv()) })
	return &root
}

// C is the root logger with the request id chi stored on ctx, if any
func C(ctx context.Context) *Logger {
	id := chimw.GetReqID(ctx)
	if id == "" {
		return Get()
	}
	l := Get().With().Str("request_id", id).Logger()
	return &l
}

// Named tags the root logger with a component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
