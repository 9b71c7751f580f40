package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"jobmail/internal/core/model"
	"jobmail/internal/modkit/repokit"
	"jobmail/internal/platform/config"
	"jobmail/internal/platform/logger"
	phttp "jobmail/internal/platform/net/http"
	"jobmail/internal/platform/store"

	"jobmail/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the model is loaded once before serving; no model, no server
	dir := apiCfg.MayString("ARTIFACT_DIR", "artifacts")
	art, err := model.LoadArtifacts(dir)
	if err != nil {
		l.Panic().Err(err).Str("dir", dir).Msg("artifact load failed")
	}
	l.Info().
		Str("dir", dir).
		Str("artifact_id", art.ID.String()).
		Int("vocab", len(art.Vectorizer.Vocabulary)).
		Msg("model loaded")

	// postgres only backs the training run listing
	dbURL := pgCfg.MayString("DBURL", "")
	st, err := store.Open(ctx, store.Config{
		AppName: "jobmail-api",
		PG: store.PGConfig{
			Enabled:     dbURL != "",
			URL:         dbURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if st.PG != nil {
		repokit.MustGuard(ctx, st)
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Artifact:       art,
			Origins:        apiCfg.MayCSV("CORS_ORIGINS", nil),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
