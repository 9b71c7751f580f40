// Package module wires the training-run registry into the API and the trainer
package module

import (
	modkit "jobmail/internal/modkit"
	"jobmail/internal/modkit/httpkit"
	"jobmail/internal/services/runs/domain"
	runshttp "jobmail/internal/services/runs/http"
	runsrepo "jobmail/internal/services/runs/repo"
	runssvc "jobmail/internal/services/runs/service"
)

// Ports is the runs port set
type Ports = domain.Ports

type Module struct {
	b   modkit.Built
	svc *runssvc.Svc
}

// New constructs the runs module; deps.PG must be set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return &Module{
		b:   modkit.Build([]modkit.Option{modkit.WithName("runs"), modkit.WithPrefix("/runs")}, opts...),
		svc: runssvc.New(deps.PG, runsrepo.NewPG()),
	}
}

// Service exposes the underlying service for schema setup
func (m *Module) Service() runssvc.Service { return m.svc }

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { runshttp.Register(rr, m.svc) })
}

func (m *Module) Name() string { return m.b.ModuleName() }
func (m *Module) Ports() any   { return Ports{Writer: m.svc, Reader: m.svc} }
