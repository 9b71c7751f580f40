// Package api provides the HTTP API for the application
package api

import (
	"jobmail/internal/core/model"
	"jobmail/internal/platform/config"
	"jobmail/internal/platform/logger"
	phttp "jobmail/internal/platform/net/http"
	"jobmail/internal/platform/store"

	"jobmail/internal/modkit"
	"jobmail/internal/modkit/httpkit"
	"jobmail/internal/modkit/module"
	"jobmail/internal/modkit/swaggerkit"

	classifymod "jobmail/internal/services/api/classify/module"
	metamod "jobmail/internal/services/api/meta/module"
	runsmod "jobmail/internal/services/runs/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	// Store is optional; without postgres the runs routes are not mounted
	Store  *store.Store
	Logger *logger.Logger

	// Artifact is the loaded model and must not be nil
	Artifact *model.Artifact

	// Origins narrows CORS; empty allows any origin
	Origins []string

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	cls := classifymod.New(deps, opt.Artifact)
	mods := []module.Module{
		metamod.New(deps, opt.Artifact),
		cls,
	}
	if deps.PG != nil {
		mods = append(mods, runsmod.New(deps))
	} else {
		deps.Log.Info().Msg("no postgres configured, runs routes disabled")
	}

	// unversioned wire: GET /health and POST /classify with bare json
	r.Group(func(g phttp.Router) {
		g.Use(httpkit.CompatStack(opt.Origins...)...)
		cls.MountCompat(g)
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Origins...), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
