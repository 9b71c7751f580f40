package middleware

import (
	"net/http"
	"runtime/debug"

	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
	phttp "jobmail/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into a 500 error envelope and logs the stack
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
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.Handle(func(*http.Request) phttp.Response {
				return phttp.Error(perr.PanicErrf("panic recovered"))
			}).ServeHTTP(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
