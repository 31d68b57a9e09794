// @title         Storewatch API
// @version       0.1.0
// @description   Store uptime reports over polled status data

package main

import (
	"context"

	"github.com/joho/godotenv"

	"storewatch/internal/platform/config"
	"storewatch/internal/platform/logger"
	phttp "storewatch/internal/platform/net/http"
	"storewatch/internal/platform/store"

	"storewatch/internal/modkit/module"
	"storewatch/internal/services/api"
	reportsmod "storewatch/internal/services/reports/module"
	reportsrepo "storewatch/internal/services/reports/repo"
	storesrepo "storewatch/internal/services/stores/repo"
)

func main() {
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// open the platform store
	st, err := store.Open(
		context.Background(),
		store.Config{
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

	ctx := context.Background()
	if err := storesrepo.EnsureSchema(ctx, st.PG); err != nil {
		l.Panic().Err(err).Msg("stores schema bootstrap failed")
	}
	if err := reportsrepo.EnsureSchema(ctx, st.PG); err != nil {
		l.Panic().Err(err).Msg("reports schema bootstrap failed")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run the report worker next to the server
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if ports, ok := module.PortsAs[reportsmod.Ports]("reports"); ok {
		go func() {
			if err := ports.Runner.Run(workerCtx); err != nil && workerCtx.Err() == nil {
				l.Error().Err(err).Msg("report worker stopped")
			}
		}()
	} else {
		l.Panic().Msg("reports module ports not registered")
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
