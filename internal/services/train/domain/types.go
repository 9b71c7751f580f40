// Package domain holds the training pipeline's types and ports
package domain

import (
	"time"

	"jobmail/internal/core/model"
)

// Config controls one training run
type Config struct {
	Dataset     string
	ArtifactDir string
	Seed        uint64
	TestRatio   float64
	Vectorizer  model.VectorizerConfig
	Fit         model.FitConfig
}

// Result is what a finished run produced
type Result struct {
	RunID       string
	Dataset     string
	ArtifactDir string
	StartedAt   time.Time
	FinishedAt  time.Time
	Rows        int
	// KindSkew counts rows whose recorded sender_type disagrees with the inferred one
	KindSkew int
	// TrainGroups and TestGroups are the sorted group keys on each side of the split
	TrainGroups []string
	TestGroups  []string
	Artifact    *model.Artifact
	Report      model.Report
}
