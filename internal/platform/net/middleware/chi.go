// Package middleware is the request pipeline: chi and go-chi/cors adapters plus
// the zerolog access log and the json panic guard
package middleware

import (
	"net/http"
	"time"

	pstrings "jobmail/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Middleware is the net/http decorator shape every stack entry has
type Middleware = func(http.Handler) http.Handler

func RequestID() Middleware              { return chimw.RequestID }
func RealIP() Middleware                 { return chimw.RealIP }
func NoCache() Middleware                { return chimw.NoCache }
func RedirectSlashes() Middleware        { return chimw.RedirectSlashes }
func StripSlashes() Middleware           { return chimw.StripSlashes }
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }
func Heartbeat(path string) Middleware   { return chimw.Heartbeat(path) }
func Compress(level int) Middleware      { return chimw.Compress(level) }

// CORSOptions narrows go-chi/cors to the knobs the api exposes
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	MaxAge         int
}

// CORS allows any origin when AllowedOrigins is empty; methods default to GET, POST and OPTIONS
func CORS(o CORSOptions) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
