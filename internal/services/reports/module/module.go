// Package module wires reports into the API using modkit
package module

import (
	"net/http"

	modkit "storewatch/internal/modkit"
	"storewatch/internal/modkit/httpkit"
	str "storewatch/internal/platform/strings"
	reportshttp "storewatch/internal/services/reports/http"
	reportsrepo "storewatch/internal/services/reports/repo"
	reportssvc "storewatch/internal/services/reports/service"
	storesdom "storewatch/internal/services/stores/domain"
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

	svc reportssvc.Service
}

// PortsIn are the cross module ports the reports module consumes
type PortsIn struct {
	Stores storesdom.ReaderPort
}

// New constructs a reports module with the provided dependencies and options.
// A stores reader port must be injected via modkit.WithPorts(PortsIn{...})
func New(deps modkit.Deps, cfg reportssvc.Config, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)

	in, ok := b.Ports.(PortsIn)
	if !ok || in.Stores == nil {
		panic("reports module requires a stores reader port")
	}

	repo := reportsrepo.NewPG()
	svc := reportssvc.New(deps.PG, repo, in.Stores, cfg)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc, Runner: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reportshttp.Register(r, m.svc)
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
