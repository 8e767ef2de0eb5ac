// @title         Akkadian API
// @version       0.1.0
// @description   Transliteration to cuneiform rendering, translation, corpus search and sign usage

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"akkadian/internal/platform/config"
	"akkadian/internal/platform/logger"
	phttp "akkadian/internal/platform/net/http"
	"akkadian/internal/platform/store"

	"akkadian/internal/services/api"
	translaterepo "akkadian/internal/services/api/translate/repo"
	usagerepo "akkadian/internal/services/signusage/repo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// modules read their own prefixes off the root (CORE_*, SERVICE_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early; LOG_SERVICE overrides the name
	lopt := logger.FromEnv()
	if lopt.Service == "" {
		lopt.Service = "akkadian-api"
	}
	logger.Init(lopt)
	l := logger.Get()

	// both backends are optional (SERVICE_PGSQL_ENABLED / SERVICE_CLICKHOUSE_ENABLED)
	st, err := store.Open(ctx, store.ConfigFromEnv("akkadian"),
		store.WithLogger(*logger.Get()),
		store.WithMigrations(migrations...),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	drain := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}

	dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := drain(dctx); err != nil {
		l.Warn().Err(err).Msg("sign usage writes still pending at exit")
	}
}

// migrations prepare the schemas of enabled backends; a failure degrades
// the feature instead of stopping the server
var migrations = []store.Migration{
	{Name: "translation cache", Run: func(ctx context.Context, st *store.Store) error {
		if st.PG == nil {
			return nil
		}
		return translaterepo.Migrate(ctx, st.PG)
	}},
	{Name: "sign usage", Run: func(ctx context.Context, st *store.Store) error {
		if st.CH == nil {
			return nil
		}
		return usagerepo.Migrate(ctx, st.CH)
	}},
}
