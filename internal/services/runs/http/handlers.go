// Package http provides http transport for training runs
package http

import (
	stdhttp "net/http"
	"strconv"

	"jobmail/internal/modkit/httpkit"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/services/runs/domain"
)

// Register mounts runs endpoints on the given router
func Register(r httpkit.Router, reader domain.ReaderPort) {
	h := &handlers{reader: reader}
	httpkit.Get(r, "/", h.recent)
}

type handlers struct{ reader domain.ReaderPort }

// swagger:route GET /runs Runs runsRecent
// @Summary Recent training runs, newest first
// @Tags Runs
// @Produce json
// @Param limit query int false "max rows (1-200)"
// @Param reports query bool false "include text reports"
// @Success 200 {array} domain.Run "ok"
// @Router /runs [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	var in domain.ListInput
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be an integer in [1,200]"), "limit")
		}
		in.Limit = n
	}
	if v := q.Get("reports"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("reports must be a boolean"), "reports")
		}
		in.WithReports = b
	}
	return h.reader.Recent(r.Context(), in)
}
