// Package service records and lists training runs
package service

import (
	"context"
	"time"

	"jobmail/internal/modkit/repokit"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
	"jobmail/internal/services/runs/domain"
	"jobmail/internal/services/runs/repo"
)

const (
	defaultLimit   = 20
	maxLimit       = 200
	opTimeout      = 5 * time.Second
	statementLimit = 4000 // ms
)

// Service is the runs contract
type Service interface {
	domain.WriterPort
	domain.ReaderPort
	EnsureSchema(ctx context.Context) error
}

// Svc implements Service over a Postgres repo
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a runs service; writes run inside a tx with a statement timeout
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("runs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("runs.Service requires a non nil Repo binder")
	}
	return &Svc{
		binder: binder,
		db:     repokit.WithBeginHooks(db, repokit.StatementTimeout(statementLimit)),
	}
}

// EnsureSchema creates the training_runs table when missing
func (s *Svc) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.binder.Bind(s.db).EnsureSchema(ctx)
}

// Record stores one run
func (s *Svc) Record(ctx context.Context, r domain.Run) error {
	if r.ID == "" || r.ArtifactID == "" {
		return perr.InvalidArgf("run id and artifact id are required")
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, toRow(r))
	})
	if err != nil {
		return err
	}
	logger.C(ctx).Info().
		Str("run_id", r.ID).
		Float64("test_accuracy", r.TestAccuracy).
		Msg("training run recorded")
	return nil
}

// Recent lists the newest runs; limit is clamped to [1,200] and defaults to 20
func (s *Svc) Recent(ctx context.Context, in domain.ListInput) ([]domain.Run, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := s.binder.Bind(s.db).Recent(ctx, limit, in.WithReports)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(rows))
	for _, x := range rows {
		out = append(out, fromRow(x))
	}
	return out, nil
}

func toRow(r domain.Run) repo.RowRun {
	return repo.RowRun{
		ID:            r.ID,
		StartedAt:     r.StartedAt.UTC(),
		FinishedAt:    r.FinishedAt.UTC(),
		Dataset:       r.Dataset,
		Rows:          r.Rows,
		TrainRows:     r.TrainRows,
		TestRows:      r.TestRows,
		TrainAccuracy: r.TrainAccuracy,
		TestAccuracy:  r.TestAccuracy,
		MacroF1:       r.MacroF1,
		Vocabulary:    r.Vocabulary,
		ModelVersion:  r.ModelVersion,
		ArtifactID:    r.ArtifactID,
		Report:        r.Report,
	}
}

func fromRow(x repo.RowRun) domain.Run {
	return domain.Run{
		ID:            x.ID,
		StartedAt:     x.StartedAt.UTC(),
		FinishedAt:    x.FinishedAt.UTC(),
		Dataset:       x.Dataset,
		Rows:          x.Rows,
		TrainRows:     x.TrainRows,
		TestRows:      x.TestRows,
		TrainAccuracy: x.TrainAccuracy,
		TestAccuracy:  x.TestAccuracy,
		MacroF1:       x.MacroF1,
		Vocabulary:    x.Vocabulary,
		ModelVersion:  x.ModelVersion,
		ArtifactID:    x.ArtifactID,
		Report:        x.Report,
	}
}
