package corpus

import (
	"math/rand/v2"
	"regexp"
)

const (
	pDeleteRune   = 0.15
	pSpaceGate    = 0.20
	pDoubleSpace  = 0.06
	minTypoLength = 20
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// typo maybe drops one rune away from the edges and maybe widens some whitespace runs
// Both gates draw even when they end up doing nothing, keeping the draw sequence fixed
func typo(r *rand.Rand, s string) string {
	if r.Float64() < pDeleteRune {
		rs := []rune(s)
		if len(rs) > minTypoLength {
			i := 5 + r.IntN(len(rs)-10)
			s = string(rs[:i]) + string(rs[i+1:])
		}
	}
	if r.Float64() < pSpaceGate {
		s = whitespaceRun.ReplaceAllStringFunc(s, func(m string) string {
			if r.Float64() < pDoubleSpace {
				return "  "
			}
			return m
		})
	}
	return s
}
