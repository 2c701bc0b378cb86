// Package module wires the webhook dispatcher into the API using modkit
package module

import (
	"net/http"

	modkit "gatehouse/internal/modkit"
	"gatehouse/internal/modkit/httpkit"
	str "gatehouse/internal/platform/strings"

	"gatehouse/internal/core/authn"
	"gatehouse/internal/core/secrets"

	eventsdomain "gatehouse/internal/services/api/events/domain"
	whhttp "gatehouse/internal/services/api/webhook/http"
	whsvc "gatehouse/internal/services/api/webhook/service"
)

// Module implements the webhook API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc whsvc.Service
}

// Ports declares the injected storage port and exposes the authenticator
type Ports struct {
	Recorder eventsdomain.RecorderPort
	Auth     *authn.Authenticator
}

// New constructs the webhook module
// an empty secret registry with enforcement on is a configuration error
// and fails the process before any request is served
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("webhook"),
		modkit.WithPrefix("/webhook"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Recorder == nil {
		panic("webhook module requires Recorder port (from services/api/events)")
	}

	reg := secrets.Load(cfg.SecretsCSV)
	auth, err := authn.New(reg, cfg.RequireSignature)
	if err != nil {
		panic(err)
	}

	svc := whsvc.New(auth, injected.Recorder)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Recorder: injected.Recorder, Auth: auth}

	external := b.Register
	m.register = func(r httpkit.Router) {
		whhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
