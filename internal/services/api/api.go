// Package api provides the HTTP API for the application
package api

import (
	"geotwin/internal/platform/config"
	"geotwin/internal/platform/logger"
	phttp "geotwin/internal/platform/net/http"
	"geotwin/internal/platform/store"

	"geotwin/internal/modkit"
	"geotwin/internal/modkit/httpkit"
	"geotwin/internal/modkit/module"
	"geotwin/internal/modkit/swaggerkit"

	analyticsmod "geotwin/internal/services/api/analytics/module"
	assetsmod "geotwin/internal/services/api/assets/module"
	detectionmod "geotwin/internal/services/api/detection/module"
	lidarmod "geotwin/internal/services/api/lidar/module"
	metamod "geotwin/internal/services/api/meta/module"
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
		CH:  opt.Store.CH,
	}

	// analytics first, the assets module mounts its summary port
	analytics := analyticsmod.New(deps)
	summary := module.MustPortsOf[analyticsmod.Ports](analytics).Summary

	lidar := lidarmod.New(deps)
	lidarPorts := module.MustPortsOf[lidarmod.Ports](lidar)

	assets := assetsmod.New(deps, modkit.WithPorts(assetsmod.Ports{Summary: summary}))
	writer := module.MustPortsOf[assetsmod.Ports](assets).Writer

	detection := detectionmod.New(deps, modkit.WithPorts(detectionmod.Ports{
		Lidar:       lidarPorts.Reader,
		LidarStatus: lidarPorts.Status,
		Assets:      writer,
	}))

	mods := []module.Module{
		metamod.New(deps),
		analytics,
		lidar,
		assets,
		detection,
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
