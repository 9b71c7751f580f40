// Package model holds the tf-idf vectorizer, the softmax classifier, evaluation and the
// on-disk artifact pair. Nothing here knows how text is encoded; callers hand in encoded text
package model

import (
	"time"

	"github.com/google/uuid"

	"jobmail/internal/core/label"
)

// Version names the model family written into every artifact and inference result
const Version = "logreg-v1"

// Artifact is a fitted vectorizer and classifier pair, read-only once built or loaded
type Artifact struct {
	ID         uuid.UUID
	Version    string
	TrainedAt  time.Time
	Vectorizer *Vectorizer
	Classifier *Classifier
}

// NewArtifact stamps a fresh id and the current model version onto a fitted pair
func NewArtifact(v *Vectorizer, c *Classifier, at time.Time) *Artifact {
	return &Artifact{
		ID:         uuid.New(),
		Version:    Version,
		TrainedAt:  at.UTC(),
		Vectorizer: v,
		Classifier: c,
	}
}

// Prediction is the scored outcome for one encoded text
type Prediction struct {
	Label         label.Label
	Confidence    float64
	Probabilities map[label.Label]float64
}

// Predict vectorizes text and returns the argmax label with its probability
func (a *Artifact) Predict(text string) Prediction {
	x := a.Vectorizer.Transform(text)
	p := a.Classifier.PredictProba(x)
	out := Prediction{Probabilities: make(map[label.Label]float64, len(p))}
	best := 0
	for j, l := range a.Classifier.Labels {
		out.Probabilities[l] = p[j]
		if p[j] > p[best] {
			best = j
		}
	}
	out.Label = a.Classifier.Labels[best]
	out.Confidence = p[best]
	return out
}

// PredictLabels scores a batch of encoded texts
func (a *Artifact) PredictLabels(texts []string) []label.Label {
	out := make([]label.Label, len(texts))
	for i, t := range texts {
		out[i], _ = a.Classifier.Predict(a.Vectorizer.Transform(t))
	}
	return out
}

// Summary describes an artifact without its weights
type Summary struct {
	ID         string        `json:"id"`
	Version    string        `json:"version"`
	TrainedAt  time.Time     `json:"trained_at"`
	Labels     []label.Label `json:"labels"`
	Vocabulary int           `json:"vocabulary"`
	MinDF      int           `json:"min_df"`
	NgramMax   int           `json:"ngram_max"`
}

// Summary returns the artifact's descriptive fields
func (a *Artifact) Summary() Summary {
	return Summary{
		ID:         a.ID.String(),
		Version:    a.Version,
		TrainedAt:  a.TrainedAt,
		Labels:     append([]label.Label(nil), a.Classifier.Labels...),
		Vocabulary: a.Vectorizer.Dim(),
		MinDF:      a.Vectorizer.Config.MinDF,
		NgramMax:   a.Vectorizer.Config.NgramMax,
	}
}

// Train fits the vectorizer on texts and the classifier on the resulting rows
func Train(texts []string, y []label.Label, vcfg VectorizerConfig, fcfg FitConfig, at time.Time) (*Artifact, error) {
	v, err := FitVectorizer(texts, vcfg)
	if err != nil {
		return nil, err
	}
	c, err := FitClassifier(v.TransformAll(texts), y, v.Dim(), fcfg)
	if err != nil {
		return nil, err
	}
	return NewArtifact(v, c, at), nil
}
