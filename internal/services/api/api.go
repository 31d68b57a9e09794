// Package api provides the HTTP API for the application
package api

import (
	"storewatch/internal/platform/config"
	"storewatch/internal/platform/logger"
	phttp "storewatch/internal/platform/net/http"
	"storewatch/internal/platform/store"

	"storewatch/internal/modkit"
	"storewatch/internal/modkit/httpkit"
	"storewatch/internal/modkit/module"
	"storewatch/internal/modkit/swaggerkit"

	metamod "storewatch/internal/services/api/meta/module"
	reportsmod "storewatch/internal/services/reports/module"
	storesmod "storewatch/internal/services/stores/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Construct the stores module first and extract its reader port
	stores := storesmod.New(deps)
	reader := module.MustPortsOf[storesmod.Ports](stores).Reader

	// Inject that reader into the reports module
	reports := reportsmod.New(
		deps,
		reportsmod.FromConfig(deps.Cfg),
		modkit.WithPorts(reportsmod.PortsIn{Stores: reader}),
	)

	mods := []module.Module{
		metamod.New(deps),
		stores,
		reports,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
