// Package module wires meta endpoints into the API
package module

import (
	"time"

	"jobmail/internal/core/model"
	modkit "jobmail/internal/modkit"
	"jobmail/internal/modkit/httpkit"
	metahttp "jobmail/internal/services/api/meta/http"
)

type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module; art may be nil in tools that serve no model
func New(deps modkit.Deps, art *model.Artifact, opts ...modkit.Option) modkit.Module {
	md := metahttp.Deps{ServiceName: "jobmail-api", StartedAt: time.Now(), Model: art}
	// a nil TxRunner must stay a nil interface for the readiness probe
	if deps.PG != nil {
		md.PG = deps.PG
	}
	return &Module{
		b:    modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		deps: md,
	}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

func (m *Module) Name() string { return m.b.ModuleName() }
func (m *Module) Ports() any   { return nil }
