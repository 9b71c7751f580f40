// Package normalize provides the comparison key used for organization names.
// Pipeline order
// 1 Unicode lower casing
// 2 '&' spelled out as "and"
// 3 drop '.', ',', ' ' and '-'
//
// The key is used for group keys and for synthesized company sender domains, so the
// output must stay stable across releases
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// casers are not safe for concurrent use, so each call borrows one
var casePool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

var stripper = strings.NewReplacer(
	"&", "and",
	".", "",
	",", "",
	" ", "",
	"-", "",
)

// Key returns the normalized comparison key for an organization display name
// eg "Goldman Sachs" -> "goldmansachs", "AT&T" -> "atandt"
func Key(s string) string {
	if s == "" {
		return ""
	}
	c := casePool.Get().(*cases.Caser)
	lower := c.String(s)
	c.Reset()
	casePool.Put(c)
	return stripper.Replace(lower)
}
