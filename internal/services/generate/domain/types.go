// Package domain holds the corpus generation types
package domain

import (
	"context"
	"time"

	"jobmail/internal/core/label"
)

// Profile tunes the generator; zero fields keep the stock values
type Profile struct {
	LabelDistribution map[string]float64 `koanf:"label_distribution" json:"label_distribution" validate:"omitempty,dive,keys,oneof=applied interview rejected offer other not_job,endkeys,gte=0"`
	Strength          float64            `koanf:"strength" json:"strength" validate:"gte=0,lte=1"`
	WindowDays        int                `koanf:"window_days" json:"window_days" validate:"gte=1,lte=3650"`
}

// Request is one generation job
type Request struct {
	Count   int
	Seed    uint64
	Out     string
	Anchor  time.Time // zero means now
	Profile Profile
}

// Result describes the written corpus
type Result struct {
	Path   string
	Rows   int
	Counts map[label.Label]int
}

// GeneratorPort writes a synthetic corpus
type GeneratorPort interface {
	Generate(ctx context.Context, req Request) (Result, error)
}
