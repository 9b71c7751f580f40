package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"jobmail/internal/modkit"
	"jobmail/internal/modkit/module"
	"jobmail/internal/platform/config"
	"jobmail/internal/platform/logger"
	"jobmail/internal/platform/store"

	runsmod "jobmail/internal/services/runs/module"
	traindom "jobmail/internal/services/train/domain"
	trainmod "jobmail/internal/services/train/module"
)

func main() {
	// values are read back through exportFlags, only for flags given explicitly
	flag.String("dataset", "dataset_hard.csv", "corpus csv")
	flag.String("artifacts", "artifacts", "artifact output dir")
	flag.Int("seed", 42, "split seed")
	flag.Float64("test-ratio", 0.30, "held out share of groups")
	flag.Float64("c", 0, "inverse regularization strength (default from CORE_TRAIN_C)")
	flag.Int("max-iter", 0, "optimizer iterations (default from CORE_TRAIN_MAX_ITER)")
	flag.Int("min-df", 0, "minimum document frequency (default from CORE_TRAIN_MIN_DF)")
	flag.Int("max-features", 0, "vocabulary cap (default from CORE_TRAIN_MAX_FEATURES)")
	flag.Parse()

	l := logger.Get()
	// Pass CLI flags into CORE_TRAIN_* so the module reads one config surface
	if err := exportFlags(flag.CommandLine, trainEnv); err != nil {
		l.Fatal().Err(err).Msg("export flags")
	}

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	ctx := context.Background()

	// the run registry is optional; training never needs it
	dbURL := pgCfg.MayString("DBURL", "")
	st, err := store.Open(ctx, store.Config{
		AppName: "jobmail-train",
		PG: store.PGConfig{
			Enabled:     dbURL != "",
			URL:         dbURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, PG: st.PG, Log: *l}

	var ports traindom.Ports
	if st.PG != nil {
		rm := runsmod.New(deps)
		sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := rm.Service().EnsureSchema(sctx)
		cancel()
		if err != nil {
			l.Fatal().Err(err).Msg("runs schema")
		}
		module.Register(rm.Name(), rm.Ports())
		ports.Runs = module.MustPortsOf[runsmod.Ports](rm).Writer
	}

	tm := trainmod.New(deps, trainmod.Options{}, modkit.WithPorts(ports))
	module.Register(tm.Name(), tm.Ports())

	res, err := module.MustPortsOf[trainmod.Ports](tm).Trainer.Run(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("training failed")
	}

	fmt.Println(res.Report.String())
	l.Info().
		Str("run_id", res.RunID).
		Str("artifacts", res.ArtifactDir).
		Int("rows", res.Rows).
		Dur("took", res.FinishedAt.Sub(res.StartedAt)).
		Msg("training done")
}
