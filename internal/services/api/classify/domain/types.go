// Package domain holds the inference request and result shapes
package domain

import (
	"context"
	"encoding/json"

	"jobmail/internal/core/label"
)

// Reason is the fixed explanation attached to every model result
const Reason = "tfidf+logreg classification"

// Text decodes any JSON value; anything that is not a string becomes ""
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// Input is one message to classify; absent fields are empty
type Input struct {
	Subject Text `json:"subject" example:"Interview invitation"`
	From    Text `json:"from"    example:"careers@acme.com"`
	Body    Text `json:"body"    example:"We would like to schedule a call"`
}

// Result is the classification wire shape
type Result struct {
	IsJobRelated bool        `json:"is_job_related" example:"true"`
	EventType    label.Label `json:"event_type"     example:"interview"`
	Confidence   float64     `json:"confidence"     example:"0.71"`
	Reason       string      `json:"reason"         example:"tfidf+logreg classification"`
	ModelVersion string      `json:"model_version"  example:"logreg-v1"`
}

// ClassifierPort scores messages
type ClassifierPort interface {
	Classify(ctx context.Context, in Input) (Result, error)
}
