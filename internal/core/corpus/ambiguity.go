package corpus

import (
	"math/rand/v2"
	"strings"

	"jobmail/internal/core/label"
)

// secondDistractorOffset is subtracted from strength to get the second-distractor chance
const secondDistractorOffset = 0.15

// ambiguousBody builds a body from shared boilerplate, two weak cues for truth and one or two
// distractor labels' cues, shuffled and joined by newlines
func ambiguousBody(r *rand.Rand, truth label.Label, strength float64) string {
	lines := sample(r, sharedLines[:], 3)

	own := snippets[truth]
	lines = append(lines, sample(r, own[:], 2)...)

	others := label.Others(truth)
	k := 1
	if r.Float64() < strength {
		k = 2
	}
	first := others[r.IntN(len(others))]
	pool := snippets[first]
	lines = append(lines, sample(r, pool[:], k)...)

	if r.Float64() < max(0, strength-secondDistractorOffset) {
		rest := make([]label.Label, 0, len(others)-1)
		for _, l := range others {
			if l != first {
				rest = append(rest, l)
			}
		}
		second := rest[r.IntN(len(rest))]
		pool := snippets[second]
		lines = append(lines, sample(r, pool[:], 1)...)
	}

	r.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })
	return strings.Join(lines, "\n")
}
