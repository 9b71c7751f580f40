// Package label defines the closed set of job-mail outcome labels
package label

import (
	"strings"

	perr "jobmail/internal/platform/errors"
)

// Label is one of the six job-mail outcome categories
type Label string

const (
	// Applied is an application acknowledgement
	Applied Label = "applied"
	// Interview is an invitation to interview or assessment
	Interview Label = "interview"
	// Rejected is a rejection
	Rejected Label = "rejected"
	// Offer is an offer
	Offer Label = "offer"
	// Other is a job-related message with no clear stage
	Other Label = "other"
	// NotJob is a message unrelated to a job application
	NotJob Label = "not_job"
)

// all is the canonical order; reports, confusion matrices and weighted draws use it
var all = [...]Label{Applied, Interview, Rejected, Offer, Other, NotJob}

// All returns the labels in canonical order
func All() []Label {
	out := make([]Label, len(all))
	copy(out, all[:])
	return out
}

// Index returns the canonical position of l or -1 if l is not in the set
func Index(l Label) int {
	for i, x := range all {
		if x == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l belongs to the closed set
func (l Label) Valid() bool { return Index(l) >= 0 }

// IsJobRelated reports whether l describes a job-search message
func (l Label) IsJobRelated() bool { return l != NotJob }

// String implements fmt.Stringer
func (l Label) String() string { return string(l) }

// Parse trims s and maps it onto the closed set
func Parse(s string) (Label, error) {
	l := Label(strings.TrimSpace(s))
	if l == "" {
		return "", perr.Newf(perr.ErrorCodeValidation, "missing label")
	}
	if !l.Valid() {
		return "", perr.Newf(perr.ErrorCodeValidation, "unknown label %q", s)
	}
	return l, nil
}

// Others returns every label except l, in canonical order
func Others(l Label) []Label {
	out := make([]Label, 0, len(all)-1)
	for _, x := range all {
		if x != l {
			out = append(out, x)
		}
	}
	return out
}
