// Package api provides the HTTP API for the webhook receiver
package api

import (
	stdhttp "net/http"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	phttp "gatehouse/internal/platform/net/http"
	"gatehouse/internal/platform/store"

	"gatehouse/internal/modkit"
	"gatehouse/internal/modkit/httpkit"
	"gatehouse/internal/modkit/module"

	cfgmod "gatehouse/internal/services/api/configinfo/module"
	eventsmod "gatehouse/internal/services/api/events/module"
	metamod "gatehouse/internal/services/api/meta/module"
	webhookmod "gatehouse/internal/services/api/webhook/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// IndexResponse is the root discovery payload
type IndexResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// Mount mounts the API service onto the given router
// sender facing paths stay at the root, the platform that posts
// webhooks is configured with a bare /webhook URL
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// events owns the storage ports, construct it first
	events := eventsmod.New(deps)
	recorder := module.MustPortsOf[eventsmod.Ports](events).Recorder

	// the dispatcher consumes the Recorder port
	webhook := webhookmod.New(
		deps,
		modkit.WithPorts(webhookmod.Ports{Recorder: recorder}),
	)
	auth := module.MustPortsOf[webhookmod.Ports](webhook).Auth

	// introspection reads the authenticator the dispatcher runs with
	configInfo := cfgmod.New(
		deps,
		modkit.WithPorts(cfgmod.Ports{Auth: auth}),
	)

	mods := []module.Module{
		metamod.New(deps),
		events,
		webhook,
		configInfo,
	}

	for _, mw := range httpkit.CommonStack() {
		r.Use(mw)
	}

	phttp.MountSwagger(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.Get(r, "/", func(_ *stdhttp.Request) (any, error) {
		return IndexResponse{
			Message:   "Webhook Receiver API is running!",
			Endpoints: []string{"/webhook", "/webhooks", "/config", "/meta", "/docs"},
		}, nil
	})

	for _, m := range mods {
		// register each module's ports under its own name (for cross-module lookups)
		module.Register(m.Name(), m.Ports())

		// mount module routes under its Prefix()
		m.MountRoutes(r)
	}
}
