// Package api provides the HTTP API for the application
package api

import (
	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"
	phttp "producescan/internal/platform/net/http"
	"producescan/internal/platform/net/middleware"
	"producescan/internal/platform/store"

	"producescan/internal/modkit"
	"producescan/internal/modkit/httpkit"
	"producescan/internal/modkit/module"
	"producescan/internal/modkit/swaggerkit"

	metamod "producescan/internal/services/api/meta/module"
	auditmod "producescan/internal/services/audit/module"
	nutritionmod "producescan/internal/services/nutrition/module"
	recmod "producescan/internal/services/recognition/module"
	scanmod "producescan/internal/services/scan/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	// CORSOrigins restricts browser callers, empty allows any origin
	CORSOrigins []string

	// Auth attaches the acting user to scans, nil means every scan is anonymous
	Auth middleware.AuthPort
	// Recognition reuses an already opened model runtime, nil opens one from config
	Recognition *recmod.Runtime
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	mods := Modules(Deps(opt), opt)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}

// Deps builds the shared module deps from the opened store
func Deps(opt Options) modkit.Deps {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.SQL = opt.Store.Primary()
		deps.CH = opt.Store.CH
	}
	return deps
}

// Modules constructs every API module, providers before the scan module that consumes them
// each module's ports are registered under its name for lookups outside the router
func Modules(deps modkit.Deps, opt Options) []module.Module {
	var recognition modkit.Module
	if opt.Recognition != nil {
		recognition = recmod.NewWithRuntime(deps, *opt.Recognition)
	} else {
		recognition = recmod.New(deps)
	}
	nutrition := nutritionmod.New(deps)
	audit := auditmod.New(deps)

	rec := module.MustPortsOf[recmod.Ports](recognition)
	scan := scanmod.New(deps, modkit.WithPorts(scanmod.Requires{
		Lifecycle:  rec.Lifecycle,
		Classifier: rec.Classifier,
		Assessor:   rec.Assessor,
		Nutrition:  module.MustPortsOf[nutritionmod.Ports](nutrition).Reader,
		Sink:       module.MustPortsOf[auditmod.Ports](audit).Sink,
		Auth:       opt.Auth,
	}))

	meta := metamod.New(deps, modkit.WithPorts(metamod.Requires{Models: rec.Status}))

	mods := []module.Module{
		meta,
		recognition,
		nutrition,
		audit, // mounts nothing, listed so its ports are registered
		scan,
	}
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
	}
	return mods
}
