// Package http exposes classification over http
package http

import (
	stdhttp "net/http"

	"jobmail/internal/modkit/httpkit"
	perr "jobmail/internal/platform/errors"
	phttp "jobmail/internal/platform/net/http"
	"jobmail/internal/platform/net/http/bind"
	"jobmail/internal/services/api/classify/domain"
)

// lenient accepts empty bodies and unknown keys
var lenient = bind.JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: false, AllowEmptyBody: true}

type handlers struct{ svc domain.ClassifierPort }

// Register mounts the enveloped classify route on r
func Register(r httpkit.Router, svc domain.ClassifierPort) {
	h := &handlers{svc: svc}
	httpkit.Post(r, "/", h.classify)
}

// RegisterCompat mounts the bare wire routes GET /health and POST /classify on r
func RegisterCompat(r httpkit.Router, svc domain.ClassifierPort) {
	h := &handlers{svc: svc}
	r.Get("/health", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		phttp.JSON(w, stdhttp.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/classify", h.classifyBare)
}

// swagger:route POST /classify Classify classifyMessage
// @Summary Classify one message into a job application stage
// @Tags Classify
// @Accept json
// @Produce json
// @Param body body domain.Input false "message; every field optional"
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} phttp.Envelope "invalid json"
// @Router /classify [post]
func (h *handlers) classify(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.Input](r, lenient)
	if err != nil {
		return nil, err
	}
	return h.svc.Classify(r.Context(), in)
}

func (h *handlers) classifyBare(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.Input](r, lenient)
	if err == nil {
		var res domain.Result
		if res, err = h.svc.Classify(r.Context(), in); err == nil {
			phttp.JSON(w, stdhttp.StatusOK, res)
			return
		}
	}
	phttp.JSON(w, perr.HTTPStatus(err), map[string]string{"detail": perr.WireFrom(err).Message})
}
