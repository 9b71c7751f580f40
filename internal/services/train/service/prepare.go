package service

import (
	"strings"

	"jobmail/internal/core/corpus"
	"jobmail/internal/core/features"
	"jobmail/internal/core/label"
)

const unknownGroup = "unknown"

// Prepared is the corpus flattened into parallel slices
type Prepared struct {
	Texts  []string
	Labels []label.Label
	Groups []string
	// SkewRows lists the 1-based data rows whose sender_type disagrees with inference
	SkewRows []int
}

// Prepare encodes every row with the shared encoder and normalizes its group
func Prepare(rows []corpus.Row) Prepared {
	p := Prepared{
		Texts:  make([]string, len(rows)),
		Labels: make([]label.Label, len(rows)),
		Groups: make([]string, len(rows)),
	}
	for i, r := range rows {
		inferred := features.InferSenderKind(r.From)
		kind := r.Kind
		if kind == "" {
			kind = inferred
		} else if kind != inferred {
			p.SkewRows = append(p.SkewRows, i+1)
		}
		p.Texts[i] = features.Encode(r.Subject, r.From, r.Body, kind)
		p.Labels[i] = r.Label
		p.Groups[i] = groupOf(r.GroupKey)
	}
	return p
}

func groupOf(g string) string {
	g = strings.ToLower(strings.TrimSpace(g))
	if g == "" {
		return unknownGroup
	}
	return g
}

func pick[T any](xs []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = xs[j]
	}
	return out
}
