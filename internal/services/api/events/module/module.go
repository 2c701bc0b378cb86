// Package module wires the event log into the API using modkit
package module

import (
	"context"
	"net/http"
	"time"

	modkit "gatehouse/internal/modkit"
	"gatehouse/internal/modkit/httpkit"
	str "gatehouse/internal/platform/strings"

	"gatehouse/internal/services/api/events/domain"
	eventshttp "gatehouse/internal/services/api/events/http"
	eventsrepo "gatehouse/internal/services/api/events/repo"
	eventssvc "gatehouse/internal/services/api/events/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc eventssvc.Service
}

// Ports exposes the event log to other modules
type Ports struct {
	Recorder domain.RecorderPort
	Reader   domain.ReaderPort
}

// New constructs an events module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("events"),
		modkit.WithPrefix("/webhooks"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	svc := eventssvc.New(newRepo(deps, cfg))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Recorder: svc, Reader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		eventshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// newRepo picks the storage backend from config
func newRepo(deps modkit.Deps, cfg Options) eventsrepo.Repo {
	switch cfg.Backend {
	case BackendPostgres:
		if deps.PG == nil {
			panic("events module: postgres backend requires an open PG store")
		}
		r := eventsrepo.NewPG(deps.PG)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.EnsureSchema(ctx); err != nil {
			panic(err)
		}
		return r
	default:
		r, err := eventsrepo.NewFile(cfg.FilePath)
		if err != nil {
			panic(err)
		}
		return r
	}
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
func (m *Module) Ports() any { return m.ports }
