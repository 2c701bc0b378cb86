// Package module wires configuration introspection into the API using modkit
package module

import (
	"net/http"

	modkit "gatehouse/internal/modkit"
	"gatehouse/internal/modkit/httpkit"
	str "gatehouse/internal/platform/strings"

	"gatehouse/internal/core/authn"
	cfghttp "gatehouse/internal/services/api/configinfo/http"
	eventsmod "gatehouse/internal/services/api/events/module"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// Ports declares the authenticator this module introspects
type Ports struct {
	Auth *authn.Authenticator
}

// New constructs the config introspection module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("config"),
		modkit.WithPrefix("/config"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Auth == nil {
		panic("config module requires Auth port (from services/api/webhook)")
	}

	store := eventsmod.FromConfig(deps.Cfg)
	filePath := store.FilePath
	if store.Backend != eventsmod.BackendFile {
		filePath = ""
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cfghttp.Register(r, cfghttp.Deps{
			Auth:     injected.Auth,
			Backend:  store.Backend,
			FilePath: filePath,
		})
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

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
