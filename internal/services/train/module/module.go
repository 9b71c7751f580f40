// Package module wires the training pipeline
package module

import (
	"jobmail/internal/core/model"
	"jobmail/internal/modkit"
	"jobmail/internal/modkit/httpkit"
	"jobmail/internal/services/train/domain"
	"jobmail/internal/services/train/service"
)

// Ports exposed by the train module
type Ports struct {
	Trainer domain.TrainerPort
}

type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the train module; WithPorts(domain.Ports) is optional
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("train")}, opts...)

	var ports domain.Ports
	if b.Ports != nil {
		p, ok := b.Ports.(domain.Ports)
		if !ok {
			panic("train module: expected WithPorts(train/domain.Ports)")
		}
		ports = p
	}

	o := FromConfig(deps.Cfg).merge(overrides)
	vcfg := model.DefaultVectorizerConfig()
	vcfg.MinDF = o.MinDF
	vcfg.MaxFeatures = o.MaxFeatures
	fcfg := model.DefaultFitConfig()
	fcfg.C = o.C
	fcfg.MaxIter = o.MaxIter

	trainer := service.New(domain.Config{
		Dataset:     o.Dataset,
		ArtifactDir: o.ArtifactDir,
		Seed:        uint64(o.Seed),
		TestRatio:   o.TestRatio,
		Vectorizer:  vcfg,
		Fit:         fcfg,
	}, ports.Runs)

	return &Module{deps: deps, opts: o, ports: Ports{Trainer: trainer}}
}

// Options returns the merged settings the trainer runs with
func (m *Module) Options() Options { return m.opts }

func (m *Module) Name() string { return "train" }
func (m *Module) Ports() any   { return m.ports }

// MountRoutes is a no-op; training runs from the CLI only
func (m *Module) MountRoutes(httpkit.Router) {}
