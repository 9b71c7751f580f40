// Package service generates synthetic corpora and writes them as CSV
package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"jobmail/internal/core/corpus"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
	"jobmail/internal/services/generate/domain"
	"jobmail/internal/services/generate/profile"
)

// Svc implements domain.GeneratorPort
type Svc struct{}

// New returns a generation service
func New() *Svc { return &Svc{} }

// Build turns a request into generated rows without writing anything
func (s *Svc) Build(req domain.Request) ([]corpus.Row, error) {
	if req.Count < 1 {
		return nil, perr.WithField(perr.InvalidArgf("count must be positive, got %d", req.Count), "n")
	}
	if err := profile.Validate(req.Profile); err != nil {
		return nil, err
	}
	g, err := corpus.NewGenerator(corpus.Options{
		Seed:         req.Seed,
		Distribution: profile.Distribution(req.Profile),
		Strength:     req.Profile.Strength,
		Anchor:       req.Anchor,
		Window:       time.Duration(req.Profile.WindowDays) * 24 * time.Hour,
	})
	if err != nil {
		return nil, err
	}
	return g.Generate(req.Count)
}

// Generate builds the corpus and writes it to req.Out, replacing any previous file
func (s *Svc) Generate(ctx context.Context, req domain.Request) (domain.Result, error) {
	log := logger.C(ctx)
	rows, err := s.Build(req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := writeAtomic(req.Out, rows); err != nil {
		return domain.Result{}, err
	}

	counts := corpus.Counts(rows)
	log.Info().
		Str("out", req.Out).
		Int("rows", len(rows)).
		Uint64("seed", req.Seed).
		Float64("strength", req.Profile.Strength).
		Str("labels", corpus.FormatCounts(counts)).
		Msg("corpus written")
	return domain.Result{Path: req.Out, Rows: len(rows), Counts: counts}, nil
}

func writeAtomic(path string, rows []corpus.Row) error {
	if path == "" {
		return perr.WithField(perr.InvalidArgf("output path is required"), "out")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "create %s", dir)
	}
	f, err := os.CreateTemp(dir, ".corpus-*.csv")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "create temp in %s", dir)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := corpus.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "close %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "rename into %s", path)
	}
	return nil
}
