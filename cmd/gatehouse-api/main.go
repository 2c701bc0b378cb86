// @title         Gatehouse API
// @version       0.1.0
// @description   Multi-tenant webhook receiver for data access request events

package main

import (
	"context"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	phttp "gatehouse/internal/platform/net/http"
	"gatehouse/internal/platform/store"

	"gatehouse/internal/services/api"
	eventsmod "gatehouse/internal/services/api/events/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// postgres only comes up when the event log is stored there,
	// the file backend runs with no database at all
	var st *store.Store
	if eventsmod.FromConfig(root).Backend == eventsmod.BackendPostgres {
		var err error
		st, err = store.Open(
			context.Background(),
			store.Config{
				AppName: "gatehouse-api",
				PG: store.PGConfig{
					Enabled:     true,
					URL:         pgCfg.MustString("DBURL"),
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", true),
				},
			},
			store.WithLogger(*logger.Get()),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API, module config (WEBHOOK_*, STORE_*) reads from the root view
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
