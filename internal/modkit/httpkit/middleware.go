package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"jobmail/internal/platform/net/middleware"
)

// slowRequest marks access log lines at warn level
const slowRequest = 500 * time.Millisecond

// CommonStack returns a baseline per module middleware slice
// origins narrows CORS; none allows any origin
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slowRequest}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// CompatStack is the stack for unversioned root routes; those own /health themselves
// and answer with bare json, so heartbeat, compression and slash rewriting stay off
func CompatStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slowRequest}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Timeout(30 * time.Second),
	}
}
