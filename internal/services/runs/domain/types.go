// Package domain holds the training-run record and the ports that read and write it
package domain

import "time"

// Run is one finished training run
type Run struct {
	ID            string    `json:"id"              example:"0b6f6c9e-4f0a-4c61-9a56-0d2b3c8f7a11"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Dataset       string    `json:"dataset"         example:"dataset_hard.csv"`
	Rows          int       `json:"rows"            example:"8000"`
	TrainRows     int       `json:"train_rows"      example:"5600"`
	TestRows      int       `json:"test_rows"       example:"2400"`
	TrainAccuracy float64   `json:"train_accuracy"  example:"0.91"`
	TestAccuracy  float64   `json:"test_accuracy"   example:"0.74"`
	MacroF1       float64   `json:"macro_f1"        example:"0.61"`
	Vocabulary    int       `json:"vocabulary"      example:"18231"`
	ModelVersion  string    `json:"model_version"   example:"logreg-v1"`
	ArtifactID    string    `json:"artifact_id"`
	Report        string    `json:"report,omitempty"`
}

// ListInput narrows a listing
type ListInput struct {
	Limit       int  `json:"limit"        validate:"omitempty,min=1,max=200" example:"20"`
	WithReports bool `json:"with_reports"`
}
