package corpus

import (
	"math"

	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
)

// Distribution weights each label for the per-row label draw. Weights need not sum to 1
type Distribution map[label.Label]float64

// DefaultDistribution is skewed towards not_job, the way a real inbox is
func DefaultDistribution() Distribution {
	return Distribution{
		label.NotJob:    0.45,
		label.Applied:   0.18,
		label.Interview: 0.14,
		label.Rejected:  0.14,
		label.Offer:     0.05,
		label.Other:     0.04,
	}
}

// Validate rejects unknown labels, negative or non-finite weights, and an all-zero table
func (d Distribution) Validate() error {
	total := 0.0
	for l, w := range d {
		if !l.Valid() {
			return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "unknown label %q in distribution", l), "label_distribution")
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "weight for %s must be a finite non-negative number", l), "label_distribution")
		}
		total += w
	}
	if total <= 0 {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "distribution has no positive weight"), "label_distribution")
	}
	return nil
}

// Normalized returns a copy whose weights sum to 1, with every label present
func (d Distribution) Normalized() Distribution {
	total := 0.0
	for _, w := range d {
		total += w
	}
	out := make(Distribution, len(label.All()))
	for _, l := range label.All() {
		if total > 0 {
			out[l] = d[l] / total
		} else {
			out[l] = 0
		}
	}
	return out
}
