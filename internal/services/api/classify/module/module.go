// Package module wires classification into the API
package module

import (
	"jobmail/internal/core/model"
	modkit "jobmail/internal/modkit"
	"jobmail/internal/modkit/httpkit"
	"jobmail/internal/services/api/classify/domain"
	classifyhttp "jobmail/internal/services/api/classify/http"
	"jobmail/internal/services/api/classify/service"
)

// Ports exposed by the classify module
type Ports struct {
	Classifier domain.ClassifierPort
}

type Module struct {
	b   modkit.Built
	svc *service.Svc
}

// New constructs the classify module around a loaded artifact
func New(_ modkit.Deps, art *model.Artifact, opts ...modkit.Option) *Module {
	return &Module{
		b:   modkit.Build([]modkit.Option{modkit.WithName("classify"), modkit.WithPrefix("/classify")}, opts...),
		svc: service.New(art),
	}
}

// MountCompat mounts the unversioned routes at the router root
func (m *Module) MountCompat(r httpkit.Router) { classifyhttp.RegisterCompat(r, m.svc) }

// Artifact returns the served model
func (m *Module) Artifact() *model.Artifact { return m.svc.Artifact() }

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { classifyhttp.Register(rr, m.svc) })
}

func (m *Module) Name() string { return m.b.ModuleName() }
func (m *Module) Ports() any   { return Ports{Classifier: m.svc} }
