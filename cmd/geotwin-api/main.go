// @title         GeoTwin API
// @version       0.1.0
// @description   LiDAR asset detection backend: registry, detection jobs, spatial assets, analytics

package main

import (
	"context"

	"fmt"

	"geotwin/internal/modkit/repokit"
	"geotwin/internal/platform/config"
	"geotwin/internal/platform/logger"
	phttp "geotwin/internal/platform/net/http"
	"geotwin/internal/platform/store"

	"geotwin/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	// bring up logging early
	l := logger.Get()

	// the crash feed is optional, no URL means no clickhouse
	chURL := chCfg.MayString("DBURL", "")

	// open the platform store (postgres + CH adapter)
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
			CH: store.CHConfig{
				Enabled:    chURL != "" && chCfg.MayBool("ENABLED", true),
				URL:        chURL,
				ClientRole: "api",
				ClientTag:  "geotwin",
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

	// fail fast when a configured seam cannot answer
	repokit.MustGuard(context.Background(), st)

	// cap transactional statements so a stuck spatial query cannot pin a tx
	if ms := pgCfg.MayInt("TX_TIMEOUT_MS", 5000); ms > 0 {
		timeout := fmt.Sprintf("set local statement_timeout = %d", ms)
		st.PG = repokit.WithBeginHooks(st.PG, func(ctx context.Context, q repokit.Queryer) error {
			_, err := q.Exec(ctx, timeout)
			return err
		})
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

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
