// Package corpus synthesizes a labeled job-mail corpus with controlled cross-label ambiguity
// and reads and writes it as CSV.
//
// Every random choice comes from one PCG source seeded per Generate call, drawn in a fixed
// order per row, so a (count, seed, anchor) triple always yields the same rows
package corpus

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"jobmail/internal/core/features"
	"jobmail/internal/core/label"
	"jobmail/internal/core/normalize"
	perr "jobmail/internal/platform/errors"
)

const (
	// DefaultStrength is the ambiguity strength used for generated corpora
	DefaultStrength = 0.60
	// DefaultWindow is how far back timestamps may reach from the anchor
	DefaultWindow = 180 * 24 * time.Hour
	// DefaultCount is the corpus size used by the generator CLI
	DefaultCount = 8000
	// DefaultSeed is the seed used by the generator CLI
	DefaultSeed = 42
)

// per-row gate probabilities
const (
	pCompanySender = 0.75
	pSubjectOrg    = 0.55
	pSubjectRole   = 0.35
	pReferenceID   = 0.65
	pPortal        = 0.60
	pTracking      = 0.45
	pSubjectTypo   = 0.35
	pBodyTypo      = 0.40
	pHTML          = 0.45
)

// Row is one generated message plus its derived fields
type Row struct {
	Label     label.Label
	Subject   string
	From      string
	Body      string
	GroupKey  string
	Kind      features.SenderKind
	Timestamp string
}

// Message converts r to the encoder's input type
func (r Row) Message() features.Message {
	return features.Message{
		Label:     r.Label,
		Subject:   r.Subject,
		Sender:    r.From,
		Body:      r.Body,
		GroupKey:  r.GroupKey,
		Kind:      r.Kind,
		Timestamp: r.Timestamp,
	}
}

// Options configures a Generator
type Options struct {
	Seed         uint64
	Distribution Distribution // nil means DefaultDistribution
	Strength     float64      // in [0,1]
	Anchor       time.Time    // zero means time.Now at construction
	Window       time.Duration
}

// DefaultOptions returns the stock generation settings with seed 42
func DefaultOptions() Options {
	return Options{
		Seed:         DefaultSeed,
		Distribution: DefaultDistribution(),
		Strength:     DefaultStrength,
		Window:       DefaultWindow,
	}
}

// Generator produces corpora for one set of Options
type Generator struct {
	opts   Options
	labels []label.Label
	cum    []float64 // cumulative weights in canonical label order
}

// NewGenerator validates opts and fills in defaults
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Distribution == nil {
		opts.Distribution = DefaultDistribution()
	}
	if err := opts.Distribution.Validate(); err != nil {
		return nil, err
	}
	if opts.Strength < 0 || opts.Strength > 1 {
		return nil, perr.InvalidArgf("strength must be in [0,1], got %v", opts.Strength)
	}
	if opts.Window < 0 {
		return nil, perr.InvalidArgf("window must not be negative, got %s", opts.Window)
	}
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}
	if opts.Anchor.IsZero() {
		opts.Anchor = time.Now()
	}

	g := &Generator{opts: opts, labels: label.All()}
	acc := 0.0
	for _, l := range g.labels {
		acc += opts.Distribution[l]
		g.cum = append(g.cum, acc)
	}
	return g, nil
}

// Options returns the effective settings, defaults included
func (g *Generator) Options() Options { return g.opts }

// Generate returns exactly count rows. It starts from a fresh source each call, so repeated
// calls return identical corpora
func (g *Generator) Generate(count int) ([]Row, error) {
	if count < 1 {
		return nil, perr.InvalidArgf("count must be positive, got %d", count)
	}
	r := rand.New(rand.NewPCG(g.opts.Seed, g.opts.Seed))
	rows := make([]Row, 0, count)
	for range count {
		rows = append(rows, g.row(r))
	}
	return rows, nil
}

func (g *Generator) row(r *rand.Rand) Row {
	truth := g.pickLabel(r)
	company := companies[r.IntN(len(companies))]
	role := roles[r.IntN(len(roles))]
	key := normalize.Key(company)

	from, kind := pickSender(r, key)

	subject := subjects[r.IntN(len(subjects))]
	if r.Float64() < pSubjectOrg {
		subject = subject + " - " + company
	}
	if r.Float64() < pSubjectRole {
		subject = subject + " (" + role + ")"
	}

	body := ambiguousBody(r, truth, g.opts.Strength)
	if r.Float64() < pReferenceID {
		body += fmt.Sprintf("\n\nReference ID: %d", randInt(r, 100000, 999999))
	}
	if r.Float64() < pPortal {
		body += fmt.Sprintf("\nPortal: https://%s.careers.example.com/candidate/%d", key, randInt(r, 10000, 99999))
	}
	if r.Float64() < pTracking {
		body += fmt.Sprintf("\nView message: https://trk.example.com/c/%d", randInt(r, 10_000_000, 99_999_999))
	}

	if r.Float64() < pSubjectTypo {
		subject = typo(r, subject)
	}
	if r.Float64() < pBodyTypo {
		body = typo(r, body)
	}
	if r.Float64() < pHTML {
		body = wrapHTML(body)
	}

	return Row{
		Label:     truth,
		Subject:   subject,
		From:      from,
		Body:      body,
		GroupKey:  key,
		Kind:      kind,
		Timestamp: g.timestamp(r),
	}
}

func (g *Generator) pickLabel(r *rand.Rand) label.Label {
	total := g.cum[len(g.cum)-1]
	u := r.Float64() * total
	for i, c := range g.cum {
		if u < c {
			return g.labels[i]
		}
	}
	// float rounding at the top edge; return the last label with weight
	for i := len(g.labels) - 1; i >= 0; i-- {
		if g.opts.Distribution[g.labels[i]] > 0 {
			return g.labels[i]
		}
	}
	return g.labels[len(g.labels)-1]
}

func pickSender(r *rand.Rand, key string) (string, features.SenderKind) {
	if r.Float64() < pCompanySender {
		return "careers@" + key + ".com", features.KindCompany
	}
	return atsSenders[r.IntN(len(atsSenders))], features.KindATS
}

func (g *Generator) timestamp(r *rand.Rand) string {
	secs := randInt(r, 0, int(g.opts.Window/time.Second))
	return g.opts.Anchor.Add(-time.Duration(secs) * time.Second).UTC().Format(time.RFC3339)
}

// randInt returns a uniform integer in [lo, hi]
func randInt(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// sample returns k distinct elements of pool in draw order; pool is not modified
func sample(r *rand.Rand, pool []string, k int) []string {
	cp := append([]string(nil), pool...)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:k]
}

// Counts tallies rows per label
func Counts(rows []Row) map[label.Label]int {
	out := make(map[label.Label]int, len(label.All()))
	for _, r := range rows {
		out[r.Label]++
	}
	return out
}

// FormatCounts renders counts in canonical label order, eg "applied=36 interview=28 ..."
func FormatCounts(c map[label.Label]int) string {
	parts := make([]string, 0, len(c))
	for _, l := range label.All() {
		parts = append(parts, fmt.Sprintf("%s=%d", l, c[l]))
	}
	return strings.Join(parts, " ")
}
