// Package service classifies messages with a loaded model artifact
package service

import (
	"context"

	"jobmail/internal/core/features"
	"jobmail/internal/core/model"
	"jobmail/internal/services/api/classify/domain"
)

// Svc implements domain.ClassifierPort; the artifact is never mutated
type Svc struct {
	art *model.Artifact
}

// New wraps a loaded artifact
func New(art *model.Artifact) *Svc {
	if art == nil || art.Vectorizer == nil || art.Classifier == nil {
		panic("classify.Service requires a loaded artifact")
	}
	return &Svc{art: art}
}

// Artifact returns the model the service scores with
func (s *Svc) Artifact() *model.Artifact { return s.art }

// Classify encodes the message the same way training did and takes the argmax
func (s *Svc) Classify(ctx context.Context, in domain.Input) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	sender := string(in.From)
	text := features.Encode(string(in.Subject), sender, string(in.Body), features.InferSenderKind(sender))
	p := s.art.Predict(text)
	return domain.Result{
		IsJobRelated: p.Label.IsJobRelated(),
		EventType:    p.Label,
		Confidence:   p.Confidence,
		Reason:       domain.Reason,
		ModelVersion: s.art.Version,
	}, nil
}
