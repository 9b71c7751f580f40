package main

import (
	"context"
	"flag"
	"time"

	"jobmail/internal/platform/logger"

	"jobmail/internal/services/generate/domain"
	"jobmail/internal/services/generate/profile"
	"jobmail/internal/services/generate/service"
)

func main() {
	var (
		n           = flag.Int("n", 8000, "rows to generate")
		seed        = flag.Uint64("seed", 42, "random seed")
		out         = flag.String("out", "dataset_hard.csv", "output csv path")
		profilePath = flag.String("profile", "", "optional yaml profile (label_distribution, strength, window_days)")
		anchorStr   = flag.String("anchor", "", "RFC3339 timestamp the window ends at; empty means now")
	)
	flag.Parse()

	l := logger.Named("jobmail-gen")

	var anchor time.Time
	if *anchorStr != "" {
		t, err := time.Parse(time.RFC3339, *anchorStr)
		if err != nil {
			l.Fatal().Err(err).Str("anchor", *anchorStr).Msg("bad -anchor")
		}
		anchor = t
	}

	p, err := profile.Load(*profilePath)
	if err != nil {
		l.Fatal().Err(err).Str("profile", *profilePath).Msg("profile load failed")
	}

	res, err := service.New().Generate(context.Background(), domain.Request{
		Count:   *n,
		Seed:    *seed,
		Out:     *out,
		Anchor:  anchor,
		Profile: p,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("generate failed")
	}
	l.Info().Str("path", res.Path).Int("rows", res.Rows).Msg("corpus written")
}
