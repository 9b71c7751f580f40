package model

import (
	"math"

	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
)

// classifier defaults
const (
	DefaultC            = 1.0
	DefaultLearningRate = 1.0
	DefaultMaxIter      = 400
	DefaultTolerance    = 1e-5
)

// FitConfig controls gradient descent
type FitConfig struct {
	C            float64 // inverse L2 strength; larger means weaker regularization
	LearningRate float64
	MaxIter      int
	Tolerance    float64 // stop once the largest gradient component falls below this
}

// DefaultFitConfig returns C=1 with settings that converge on normalized tf-idf rows
func DefaultFitConfig() FitConfig {
	return FitConfig{
		C:            DefaultC,
		LearningRate: DefaultLearningRate,
		MaxIter:      DefaultMaxIter,
		Tolerance:    DefaultTolerance,
	}
}

// Classifier is a multinomial logistic regression over sparse rows
// Weights is one dense row per class in Labels order
type Classifier struct {
	Labels    []label.Label
	Weights   [][]float64
	Intercept []float64
	Iter      int
}

// FitClassifier trains with class-balanced sample weights n/(k*n_c)
// Classes are the labels present in y, in canonical order
func FitClassifier(X []SparseVec, y []label.Label, dim int, cfg FitConfig) (*Classifier, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, perr.InvalidArgf("rows=%d labels=%d", len(X), len(y))
	}
	if cfg.C <= 0 {
		return nil, perr.InvalidArgf("C must be positive, got %v", cfg.C)
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultLearningRate
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultMaxIter
	}

	present := map[label.Label]int{}
	for _, l := range y {
		if !l.Valid() {
			return nil, perr.Newf(perr.ErrorCodeValidation, "unknown label %q", l)
		}
		present[l]++
	}
	var classes []label.Label
	for _, l := range label.All() {
		if present[l] > 0 {
			classes = append(classes, l)
		}
	}
	if len(classes) < 2 {
		return nil, perr.Newf(perr.ErrorCodeValidation, "need at least 2 classes, got %d", len(classes))
	}
	pos := make(map[label.Label]int, len(classes))
	for i, l := range classes {
		pos[l] = i
	}

	n, k := len(X), len(classes)
	sw := make([]float64, n)
	target := make([]int, n)
	totalW := 0.0
	for i, l := range y {
		target[i] = pos[l]
		sw[i] = float64(n) / (float64(k) * float64(present[l]))
		totalW += sw[i]
	}
	// objective scaled by 1/(C*totalW): weighted mean log loss + ||W||^2 / (2*C*totalW)
	lambda := 1 / (cfg.C * totalW)

	c := &Classifier{
		Labels:    classes,
		Weights:   make([][]float64, k),
		Intercept: make([]float64, k),
	}
	gw := make([][]float64, k)
	for j := range k {
		c.Weights[j] = make([]float64, dim)
		gw[j] = make([]float64, dim)
	}
	gb := make([]float64, k)
	p := make([]float64, k)

	for it := 1; it <= cfg.MaxIter; it++ {
		for j := range k {
			clear(gw[j])
		}
		clear(gb)

		for i, x := range X {
			c.probaInto(x, p)
			for j := range k {
				r := p[j]
				if j == target[i] {
					r -= 1
				}
				r *= sw[i] / totalW
				gb[j] += r
				g := gw[j]
				for t, f := range x.Idx {
					g[f] += r * x.Val[t]
				}
			}
		}

		maxg := 0.0
		for j := range k {
			w, g := c.Weights[j], gw[j]
			for f := range g {
				g[f] += lambda * w[f]
				maxg = max(maxg, math.Abs(g[f]))
			}
			maxg = max(maxg, math.Abs(gb[j]))
		}
		c.Iter = it
		if maxg < cfg.Tolerance {
			break
		}
		for j := range k {
			w, g := c.Weights[j], gw[j]
			for f := range g {
				w[f] -= cfg.LearningRate * g[f]
			}
			c.Intercept[j] -= cfg.LearningRate * gb[j]
		}
	}
	return c, nil
}

// Dim is the feature count the classifier expects
func (c *Classifier) Dim() int {
	if len(c.Weights) == 0 {
		return 0
	}
	return len(c.Weights[0])
}

// PredictProba returns class probabilities in Labels order
func (c *Classifier) PredictProba(x SparseVec) []float64 {
	p := make([]float64, len(c.Labels))
	c.probaInto(x, p)
	return p
}

// Predict returns the most probable label and its probability; ties go to the earlier label
func (c *Classifier) Predict(x SparseVec) (label.Label, float64) {
	p := c.PredictProba(x)
	best := 0
	for j := 1; j < len(p); j++ {
		if p[j] > p[best] {
			best = j
		}
	}
	return c.Labels[best], p[best]
}

func (c *Classifier) probaInto(x SparseVec, p []float64) {
	top := math.Inf(-1)
	for j, w := range c.Weights {
		z := c.Intercept[j]
		for t, f := range x.Idx {
			if f < len(w) {
				z += w[f] * x.Val[t]
			}
		}
		p[j] = z
		top = max(top, z)
	}
	sum := 0.0
	for j := range p {
		p[j] = math.Exp(p[j] - top)
		sum += p[j]
	}
	for j := range p {
		p[j] /= sum
	}
}
