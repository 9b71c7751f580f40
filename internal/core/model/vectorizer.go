package model

import (
	"math"
	"sort"

	perr "jobmail/internal/platform/errors"
)

// vectorizer defaults
const (
	DefaultMinDF       = 4
	DefaultMaxFeatures = 60000
	DefaultNgramMax    = 2
)

// SparseVec is a row with ascending feature indexes
type SparseVec struct {
	Idx []int
	Val []float64
}

// VectorizerConfig selects the vocabulary
type VectorizerConfig struct {
	MinDF       int
	MaxFeatures int
	NgramMax    int
	Sublinear   bool
}

// DefaultVectorizerConfig is unigrams plus bigrams, df>=4, up to 60000 terms, sublinear tf
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MinDF:       DefaultMinDF,
		MaxFeatures: DefaultMaxFeatures,
		NgramMax:    DefaultNgramMax,
		Sublinear:   true,
	}
}

// Vectorizer maps text to L2-normalized tf-idf rows
// It is read-only after Fit and safe for concurrent Transform
type Vectorizer struct {
	Config     VectorizerConfig
	Vocabulary map[string]int
	IDF        []float64
}

// Dim is the feature count
func (v *Vectorizer) Dim() int { return len(v.IDF) }

// FitVectorizer learns the vocabulary and idf weights from docs
func FitVectorizer(docs []string, cfg VectorizerConfig) (*Vectorizer, error) {
	if len(docs) == 0 {
		return nil, perr.InvalidArgf("no documents to fit")
	}
	if cfg.MinDF < 1 {
		cfg.MinDF = 1
	}

	df := map[string]int{}
	tf := map[string]int{}
	for _, d := range docs {
		seen := map[string]struct{}{}
		for _, t := range Terms(Tokenize(d), cfg.NgramMax) {
			tf[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	kept := make([]string, 0, len(df))
	for t, n := range df {
		if n >= cfg.MinDF {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, perr.Newf(perr.ErrorCodeValidation, "no term appears in at least %d documents", cfg.MinDF)
	}
	if cfg.MaxFeatures > 0 && len(kept) > cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if tf[kept[i]] != tf[kept[j]] {
				return tf[kept[i]] > tf[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:cfg.MaxFeatures]
	}
	sort.Strings(kept)

	n := float64(len(docs))
	v := &Vectorizer{
		Config:     cfg,
		Vocabulary: make(map[string]int, len(kept)),
		IDF:        make([]float64, len(kept)),
	}
	for i, t := range kept {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v, nil
}

// Transform vectorizes one document; out-of-vocabulary terms are dropped
func (v *Vectorizer) Transform(doc string) SparseVec {
	counts := map[int]int{}
	for _, t := range Terms(Tokenize(doc), v.Config.NgramMax) {
		if i, ok := v.Vocabulary[t]; ok {
			counts[i]++
		}
	}
	out := SparseVec{Idx: make([]int, 0, len(counts)), Val: make([]float64, 0, len(counts))}
	for i := range counts {
		out.Idx = append(out.Idx, i)
	}
	sort.Ints(out.Idx)

	norm := 0.0
	for _, i := range out.Idx {
		w := float64(counts[i])
		if v.Config.Sublinear {
			w = 1 + math.Log(w)
		}
		w *= v.IDF[i]
		out.Val = append(out.Val, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range out.Val {
			out.Val[k] /= norm
		}
	}
	return out
}

// TransformAll vectorizes docs in order
func (v *Vectorizer) TransformAll(docs []string) []SparseVec {
	out := make([]SparseVec, len(docs))
	for i, d := range docs {
		out[i] = v.Transform(d)
	}
	return out
}
