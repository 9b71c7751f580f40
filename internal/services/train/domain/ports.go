package domain

import (
	"context"

	runsdom "jobmail/internal/services/runs/domain"
)

// TrainerPort runs the full pipeline from CSV to saved artifacts
type TrainerPort interface {
	Run(ctx context.Context) (Result, error)
}

// Ports are the train module's optional dependencies
type Ports struct {
	Runs runsdom.WriterPort // nil skips run recording
}
