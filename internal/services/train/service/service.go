// Package service runs the training pipeline
package service

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"jobmail/internal/core/corpus"
	"jobmail/internal/core/model"
	"jobmail/internal/core/split"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
	"jobmail/internal/services/train/domain"
	runsdom "jobmail/internal/services/runs/domain"
)

// skew rows logged individually before the summary takes over
const skewSample = 5

// Svc implements domain.TrainerPort
type Svc struct {
	cfg  domain.Config
	runs runsdom.WriterPort
	now  func() time.Time
}

// New builds a trainer; runs may be nil
func New(cfg domain.Config, runs runsdom.WriterPort) *Svc {
	if cfg.TestRatio == 0 {
		cfg.TestRatio = split.DefaultTestRatio
	}
	return &Svc{cfg: cfg, runs: runs, now: time.Now}
}

// Run reads the dataset, trains, evaluates on the held out groups and saves the artifacts
func (s *Svc) Run(ctx context.Context) (domain.Result, error) {
	log := logger.C(ctx).With().Str("component", "train").Logger()
	started := s.now().UTC()

	f, err := os.Open(s.cfg.Dataset)
	if err != nil {
		return domain.Result{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "open dataset %s", s.cfg.Dataset)
	}
	rows, err := corpus.ReadCSV(f)
	_ = f.Close()
	if err != nil {
		return domain.Result{}, err
	}
	log.Info().Str("dataset", s.cfg.Dataset).Int("rows", len(rows)).Msg("dataset loaded")

	res, err := s.Fit(ctx, rows)
	if err != nil {
		return domain.Result{}, err
	}
	res.StartedAt = started
	res.Dataset = s.cfg.Dataset

	if err := model.SaveArtifacts(s.cfg.ArtifactDir, res.Artifact); err != nil {
		return domain.Result{}, err
	}
	res.ArtifactDir = s.cfg.ArtifactDir
	res.FinishedAt = s.now().UTC()
	log.Info().
		Str("dir", s.cfg.ArtifactDir).
		Str("artifact_id", res.Artifact.ID.String()).
		Msg("artifacts saved")

	if s.runs != nil {
		if err := s.runs.Record(ctx, toRun(res)); err != nil {
			// artifacts are already on disk; a registry outage must not fail the run
			log.Warn().Err(err).Str("run_id", res.RunID).Msg("recording training run failed")
		}
	}
	return res, nil
}

// Fit trains on rows without touching the filesystem
func (s *Svc) Fit(ctx context.Context, rows []corpus.Row) (domain.Result, error) {
	log := logger.C(ctx).With().Str("component", "train").Logger()
	if len(rows) == 0 {
		return domain.Result{}, perr.New(perr.ErrorCodeValidation, "dataset has no rows")
	}

	p := Prepare(rows)
	if n := len(p.SkewRows); n > 0 {
		for _, r := range p.SkewRows[:min(n, skewSample)] {
			log.Warn().Int("row", r).Msg("sender_type disagrees with inferred kind")
		}
		log.Warn().Int("rows", n).Msg("sender kind skew between dataset and inference")
	}

	sp, err := split.ByGroup(p.Groups, s.cfg.TestRatio, s.cfg.Seed)
	if err != nil {
		return domain.Result{}, err
	}
	trainGroups, testGroups := split.Groups(p.Groups, sp.Train), split.Groups(p.Groups, sp.Test)
	log.Info().
		Int("train", len(sp.Train)).
		Int("test", len(sp.Test)).
		Int("test_groups", len(testGroups)).
		Msg("group split")

	xTrain, yTrain := pick(p.Texts, sp.Train), pick(p.Labels, sp.Train)
	xTest, yTest := pick(p.Texts, sp.Test), pick(p.Labels, sp.Test)

	art, err := model.Train(xTrain, yTrain, s.cfg.Vectorizer, s.cfg.Fit, s.now().UTC())
	if err != nil {
		return domain.Result{}, err
	}

	rep := model.Report{
		TrainRows:  len(yTrain),
		TestRows:   len(yTest),
		TrainDist:  model.Distribution(yTrain),
		TestDist:   model.Distribution(yTest),
		Train:      model.Evaluate(yTrain, art.PredictLabels(xTrain)),
		Test:       model.Evaluate(yTest, art.PredictLabels(xTest)),
		Vocabulary: art.Vectorizer.Dim(),
		Iterations: art.Classifier.Iter,
	}
	log.Info().
		Float64("train_accuracy", rep.Train.Accuracy).
		Float64("test_accuracy", rep.Test.Accuracy).
		Float64("macro_f1", rep.Test.MacroF1()).
		Int("vocabulary", rep.Vocabulary).
		Msg("model evaluated")

	return domain.Result{
		RunID:       uuid.NewString(),
		Rows:        len(rows),
		KindSkew:    len(p.SkewRows),
		TrainGroups: trainGroups,
		TestGroups:  testGroups,
		Artifact:    art,
		Report:      rep,
	}, nil
}

func toRun(r domain.Result) runsdom.Run {
	return runsdom.Run{
		ID:            r.RunID,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		Dataset:       r.Dataset,
		Rows:          r.Rows,
		TrainRows:     r.Report.TrainRows,
		TestRows:      r.Report.TestRows,
		TrainAccuracy: r.Report.Train.Accuracy,
		TestAccuracy:  r.Report.Test.Accuracy,
		MacroF1:       r.Report.Test.MacroF1(),
		Vocabulary:    r.Report.Vocabulary,
		ModelVersion:  r.Artifact.Version,
		ArtifactID:    r.Artifact.ID.String(),
		Report:        r.Report.String(),
	}
}
