// Package split partitions corpus rows so no sending organization appears on both sides
package split

import (
	"math"
	"math/rand/v2"
	"sort"

	perr "jobmail/internal/platform/errors"
)

// DefaultTestRatio is the share of rows held out when the caller has no preference
const DefaultTestRatio = 0.30

// Split holds row indexes for each side, ascending
type Split struct {
	Train []int
	Test  []int
}

// ByGroup assigns whole groups to test until the test row count is as close as it can get
// to round(testRatio*n). groups[i] is the group key of row i
func ByGroup(groups []string, testRatio float64, seed uint64) (Split, error) {
	if !(testRatio > 0 && testRatio < 1) {
		return Split{}, perr.InvalidArgf("test ratio must be in (0,1), got %v", testRatio)
	}

	sizes := make(map[string]int)
	for _, g := range groups {
		sizes[g]++
	}
	if len(sizes) < 2 {
		return Split{}, perr.InvalidArgf("need at least 2 distinct groups, got %d", len(sizes))
	}

	keys := make([]string, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	target := int(math.Round(testRatio * float64(len(groups))))
	inTest := make(map[string]bool, len(keys))
	cur := 0
	for _, k := range keys {
		next := cur + sizes[k]
		if abs(target-next) <= abs(target-cur) {
			inTest[k] = true
			cur = next
		}
	}
	if cur == 0 {
		inTest[keys[0]] = true
	}

	var s Split
	for i, g := range groups {
		if inTest[g] {
			s.Test = append(s.Test, i)
		} else {
			s.Train = append(s.Train, i)
		}
	}
	if len(s.Train) == 0 {
		// every group landed in test; hand the last shuffled one back
		last := keys[len(keys)-1]
		inTest[last] = false
		s = Split{}
		for i, g := range groups {
			if inTest[g] {
				s.Test = append(s.Test, i)
			} else {
				s.Train = append(s.Train, i)
			}
		}
	}
	return s, nil
}

// Groups returns the distinct group keys referenced by idx, sorted
func Groups(groups []string, idx []int) []string {
	seen := make(map[string]struct{}, len(idx))
	for _, i := range idx {
		seen[groups[i]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
