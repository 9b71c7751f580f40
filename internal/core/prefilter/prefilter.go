// Package prefilter is a cheap phrase heuristic that decides whether a message is worth
// sending to the classifier at all
package prefilter

import (
	"strings"

	"jobmail/internal/core/features"
)

const (
	// Threshold is the score at which a message counts as job related
	Threshold = 3

	atsScore    = 3
	strongScore = 3
	bodyScan    = 4000
)

var strongPhrases = []string{
	"thank you for applying",
	"application received",
	"we have received your application",
	"we received your application",
	"your application has been received",
	"application confirmation",
	"application submitted",
	"submission received",
	"candidate portal",
	"check application status",
	"talent acquisition",
	"recruiting team",
	"hiring team",
	"employment update",
	"next stage",
	"next steps",
	"shortlisted",
	"interview invitation",
	"interview scheduling",
	"select a time",
	"assessment invitation",
	"coding assessment",
	"online assessment",
	"offer letter",
	"we are pleased to offer",
	"regret to inform",
	"not moving forward",
}

var mediumPhrases = []string{
	"position of",
	"role at",
	"job posting",
	"career site",
	"careers site",
	"job application",
	"application status",
	"application update",
	"requisition",
	"req #",
	"candidate id",
}

// hard negatives veto only a weak score
var hardNegatives = []string{
	"order confirmation",
	"your order",
	"delivery",
	"shipped",
	"invoice",
	"payment receipt",
	"your receipt",
	"subscription renewed",
	"limited time sale",
	"promotion",
	"newsletter",
	"unsubscribe",
}

// Verdict explains how a message was scored
type Verdict struct {
	JobRelated bool     `json:"job_related"`
	Score      int      `json:"score"`
	ATS        bool     `json:"ats"`
	Strong     string   `json:"strong,omitempty"`
	Medium     []string `json:"medium,omitempty"`
	Negative   string   `json:"negative,omitempty"`
}

// Evaluate scores subject, sender and the first 4000 runes of body
func Evaluate(subject, from, body string) Verdict {
	f := strings.ToLower(from)
	text := strings.ToLower(subject) + " " + f + " " + strings.ToLower(features.Truncate(body, bodyScan))

	var v Verdict
	for _, d := range features.ATSDomains() {
		if strings.Contains(f, d) {
			v.ATS = true
			v.Score += atsScore
			break
		}
	}
	for _, p := range strongPhrases {
		if strings.Contains(text, p) {
			v.Strong = p
			v.Score += strongScore
			break
		}
	}
	for _, p := range mediumPhrases {
		if strings.Contains(text, p) {
			v.Medium = append(v.Medium, p)
			v.Score++
		}
	}
	for _, p := range hardNegatives {
		if strings.Contains(text, p) {
			v.Negative = p
			break
		}
	}

	if v.Negative != "" && v.Score < Threshold {
		return v
	}
	v.JobRelated = v.Score >= Threshold
	return v
}

// LooksJobRelated is Evaluate reduced to its decision
func LooksJobRelated(subject, from, body string) bool {
	return Evaluate(subject, from, body).JobRelated
}
