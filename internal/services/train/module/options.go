package module

import (
	"jobmail/internal/core/model"
	"jobmail/internal/core/split"
	"jobmail/internal/platform/config"
)

// Options holds configuration settings for the train module
type Options struct {
	Dataset     string
	ArtifactDir string
	Seed        int
	TestRatio   float64
	C           float64
	MaxIter     int
	MinDF       int
	MaxFeatures int
}

// FromConfig extracts Options from CORE_TRAIN_* env vars
func FromConfig(cfg config.Conf) Options {
	tc := cfg.Prefix("CORE_TRAIN_")
	return Options{
		Dataset:     tc.MayString("DATASET", "dataset_hard.csv"),
		ArtifactDir: tc.MayString("ARTIFACT_DIR", "artifacts"),
		Seed:        tc.MayInt("SEED", 42),
		TestRatio:   tc.MayFloat64("TEST_RATIO", split.DefaultTestRatio),
		C:           tc.MayFloat64("C", model.DefaultC),
		MaxIter:     tc.MayInt("MAX_ITER", model.DefaultMaxIter),
		MinDF:       tc.MayInt("MIN_DF", model.DefaultMinDF),
		MaxFeatures: tc.MayInt("MAX_FEATURES", model.DefaultMaxFeatures),
	}
}

// merge lays non zero overrides on top of o
func (o Options) merge(ov Options) Options {
	if ov.Dataset != "" {
		o.Dataset = ov.Dataset
	}
	if ov.ArtifactDir != "" {
		o.ArtifactDir = ov.ArtifactDir
	}
	if ov.Seed != 0 {
		o.Seed = ov.Seed
	}
	if ov.TestRatio != 0 {
		o.TestRatio = ov.TestRatio
	}
	if ov.C != 0 {
		o.C = ov.C
	}
	if ov.MaxIter != 0 {
		o.MaxIter = ov.MaxIter
	}
	if ov.MinDF != 0 {
		o.MinDF = ov.MinDF
	}
	if ov.MaxFeatures != 0 {
		o.MaxFeatures = ov.MaxFeatures
	}
	return o
}
