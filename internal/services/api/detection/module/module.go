// Package module wires detection orchestration into the API using modkit
package module

import (
	"net/http"

	"geotwin/internal/adapters/detect"
	modkit "geotwin/internal/modkit"
	"geotwin/internal/modkit/httpkit"
	str "geotwin/internal/platform/strings"
	detectionhttp "geotwin/internal/services/api/detection/http"
	detectionrepo "geotwin/internal/services/api/detection/repo"
	detectionsvc "geotwin/internal/services/api/detection/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc detectionsvc.Service
}

// New constructs the detection module
// the caller injects the lidar and assets ports via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("detection"),
		modkit.WithPrefix("/detection"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Lidar == nil || injected.LidarStatus == nil {
		panic("detection module requires the lidar ports (from services/api/lidar)")
	}
	if injected.Assets == nil {
		panic("detection module requires the assets writer port (from services/api/assets)")
	}

	runner := injected.Runner
	if runner == nil {
		runner = detect.NewClient(detect.Options{
			BaseURL:   cfg.BaseURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
	}

	svc := detectionsvc.New(deps.PG, detectionrepo.NewPG(), detectionsvc.Options{
		Runner:      runner,
		Lidar:       injected.Lidar,
		LidarStatus: injected.LidarStatus,
		Assets:      injected.Assets,
		KnownModels: cfg.KnownModels,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = nil

	external := b.Register
	m.register = func(r httpkit.Router) {
		detectionhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
