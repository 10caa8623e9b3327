// Package module wires assets into the API using modkit
package module

import (
	"net/http"

	modkit "geotwin/internal/modkit"
	"geotwin/internal/modkit/httpkit"
	str "geotwin/internal/platform/strings"
	assetshttp "geotwin/internal/services/api/assets/http"
	assetsrepo "geotwin/internal/services/api/assets/repo"
	assetssvc "geotwin/internal/services/api/assets/service"
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

	svc assetssvc.Service
}

// New constructs an assets module with the provided dependencies and options
// the caller injects the analytics summary port via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assets"), modkit.WithPrefix("/assets")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Summary == nil {
		panic("assets module requires the analytics Summary port")
	}

	svc := assetssvc.New(deps.PG, assetsrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	injected.Writer = svc
	m.ports = injected

	external := b.Register
	m.register = func(r httpkit.Router) {
		assetshttp.Register(r, m.svc, injected.Summary)
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
