package model

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
)

var fixedTime = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func toyCorpus() ([]string, []label.Label) {
	var texts []string
	var ys []label.Label
	add := func(l label.Label, base string, n int) {
		for i := range n {
			texts = append(texts, base+" ref"+string(rune('a'+i)))
			ys = append(ys, l)
		}
	}
	add(label.Applied, "we received your submission review portal", 6)
	add(label.Interview, "please share availability for scheduling interview", 6)
	add(label.NotJob, "recommended roles newsletter update preferences", 6)
	return texts, ys
}

func toyVectorizerConfig() VectorizerConfig {
	cfg := DefaultVectorizerConfig()
	cfg.MinDF = 2
	return cfg
}

func TestFitVectorizer_MinDFAndIDF(t *testing.T) {
	docs := []string{"alpha beta", "alpha gamma", "alpha beta", "delta"}
	cfg := VectorizerConfig{MinDF: 2, NgramMax: 1, Sublinear: true}
	v, err := FitVectorizer(docs, cfg)
	if err != nil {
		t.Fatalf("FitVectorizer: %v", err)
	}
	if v.Dim() != 2 {
		t.Fatalf("dim = %d, want 2 (%v)", v.Dim(), v.Vocabulary)
	}
	if v.Vocabulary["alpha"] != 0 || v.Vocabulary["beta"] != 1 {
		t.Fatalf("vocabulary not sorted: %v", v.Vocabulary)
	}
	want := math.Log(5.0/4.0) + 1
	if math.Abs(v.IDF[0]-want) > 1e-12 {
		t.Fatalf("idf(alpha) = %v, want %v", v.IDF[0], want)
	}
}

func TestFitVectorizer_MaxFeaturesTieBreak(t *testing.T) {
	docs := []string{"bb aa cc", "bb aa cc", "bb dd"}
	cfg := VectorizerConfig{MinDF: 1, MaxFeatures: 2, NgramMax: 1}
	v, err := FitVectorizer(docs, cfg)
	if err != nil {
		t.Fatalf("FitVectorizer: %v", err)
	}
	// bb=3 wins outright, aa and cc tie at 2 and aa sorts first
	if _, ok := v.Vocabulary["bb"]; !ok {
		t.Fatalf("bb missing: %v", v.Vocabulary)
	}
	if _, ok := v.Vocabulary["aa"]; !ok {
		t.Fatalf("aa missing: %v", v.Vocabulary)
	}
	if v.Dim() != 2 {
		t.Fatalf("dim = %d", v.Dim())
	}
}

func TestFitVectorizer_Errors(t *testing.T) {
	if _, err := FitVectorizer(nil, DefaultVectorizerConfig()); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty docs: %v", err)
	}
	if _, err := FitVectorizer([]string{"one two"}, DefaultVectorizerConfig()); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("min_df too high: %v", err)
	}
}

func TestTransform_UnitNorm(t *testing.T) {
	texts, _ := toyCorpus()
	v, err := FitVectorizer(texts, toyVectorizerConfig())
	if err != nil {
		t.Fatalf("FitVectorizer: %v", err)
	}
	x := v.Transform(texts[0])
	norm := 0.0
	for i, val := range x.Val {
		norm += val * val
		if i > 0 && x.Idx[i] <= x.Idx[i-1] {
			t.Fatalf("indexes not ascending: %v", x.Idx)
		}
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Fatalf("norm^2 = %v", norm)
	}
	if empty := v.Transform("zzz qqq"); len(empty.Idx) != 0 {
		t.Fatalf("oov text produced features: %v", empty.Idx)
	}
}

func TestTrain_SeparableToy(t *testing.T) {
	texts, ys := toyCorpus()
	a, err := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if got := len(a.Classifier.Labels); got != 3 {
		t.Fatalf("classes = %d, want 3", got)
	}
	pred := a.PredictLabels(texts)
	ev := Evaluate(ys, pred)
	if ev.Accuracy != 1 {
		t.Fatalf("train accuracy = %v", ev.Accuracy)
	}

	p := a.Predict("please share availability")
	if p.Label != label.Interview {
		t.Fatalf("predicted %s", p.Label)
	}
	sum := 0.0
	for _, v := range p.Probabilities {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %v", sum)
	}
	if p.Confidence <= 1.0/3 || p.Confidence > 1 {
		t.Fatalf("confidence = %v", p.Confidence)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	texts, ys := toyCorpus()
	a, _ := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)
	b, _ := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)
	pa, pb := a.Predict(texts[3]), b.Predict(texts[3])
	if pa.Label != pb.Label || pa.Confidence != pb.Confidence {
		t.Fatalf("runs differ: %+v vs %+v", pa, pb)
	}
}

func TestFitClassifier_Errors(t *testing.T) {
	x := []SparseVec{{}, {}}
	if _, err := FitClassifier(x, []label.Label{label.Offer}, 1, DefaultFitConfig()); err == nil {
		t.Fatalf("length mismatch accepted")
	}
	if _, err := FitClassifier(x, []label.Label{label.Offer, label.Offer}, 1, DefaultFitConfig()); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("single class: %v", err)
	}
	cfg := DefaultFitConfig()
	cfg.C = 0
	if _, err := FitClassifier(x, []label.Label{label.Offer, label.Other}, 1, cfg); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("C=0: %v", err)
	}
}

func TestEvaluate_Counts(t *testing.T) {
	truth := []label.Label{label.Applied, label.Applied, label.NotJob, label.NotJob}
	pred := []label.Label{label.Applied, label.NotJob, label.NotJob, label.NotJob}
	ev := Evaluate(truth, pred)
	if ev.Accuracy != 0.75 {
		t.Fatalf("accuracy = %v", ev.Accuracy)
	}
	a := ev.PerLabel[label.Index(label.Applied)]
	if a.Precision != 1 || a.Recall != 0.5 || a.Support != 2 {
		t.Fatalf("applied scores %+v", a)
	}
	n := ev.PerLabel[label.Index(label.NotJob)]
	if math.Abs(n.Precision-2.0/3) > 1e-12 || n.Recall != 1 {
		t.Fatalf("not_job scores %+v", n)
	}
	if ev.Confusion[label.Index(label.Applied)][label.Index(label.NotJob)] != 1 {
		t.Fatalf("confusion %v", ev.Confusion)
	}
}

func TestReport_Text(t *testing.T) {
	truth := []label.Label{label.Offer, label.Other}
	ev := Evaluate(truth, truth)
	r := Report{TrainRows: 2, TestRows: 2, Train: ev, Test: ev, TrainDist: Distribution(truth), TestDist: Distribution(truth)}
	s := r.String()
	for _, want := range []string{"=== TRAIN ===", "=== TEST ===", "accuracy 1.0000", "not_job", "confusion (test)"} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
}

func TestArtifacts_SaveLoad(t *testing.T) {
	texts, ys := toyCorpus()
	a, err := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	dir := t.TempDir()
	if err := SaveArtifacts(dir, a); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}
	b, err := LoadArtifacts(dir)
	if err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	if b.ID != a.ID || b.Version != Version || !b.TrainedAt.Equal(fixedTime) {
		t.Fatalf("metadata lost: %+v", b.Summary())
	}
	for _, txt := range texts {
		pa, pb := a.Predict(txt), b.Predict(txt)
		if pa.Label != pb.Label || math.Abs(pa.Confidence-pb.Confidence) > 1e-12 {
			t.Fatalf("prediction changed after reload for %q", txt)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Fatalf("expected only the two artifact files, found %d", len(entries))
	}
}

func TestLoadArtifacts_Failures(t *testing.T) {
	if _, err := LoadArtifacts(t.TempDir()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing files: %v", err)
	}

	texts, ys := toyCorpus()
	a, _ := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)

	dir := t.TempDir()
	if err := SaveArtifacts(dir, a); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ClassifierFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadArtifacts(dir); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("corrupt json: %v", err)
	}

	dir2 := t.TempDir()
	a.Classifier.Weights[0] = a.Classifier.Weights[0][:1]
	if err := SaveArtifacts(dir2, a); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}
	if _, err := LoadArtifacts(dir2); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("shape mismatch: %v", err)
	}
}

func TestLoadArtifacts_RejectsMixedRuns(t *testing.T) {
	texts, ys := toyCorpus()
	a, _ := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)
	b, _ := Train(texts, ys, toyVectorizerConfig(), DefaultFitConfig(), fixedTime)
	if a.Vectorizer.Dim() != b.Vectorizer.Dim() {
		t.Fatalf("identical training should give identical dims")
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	if err := SaveArtifacts(dirA, a); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}
	if err := SaveArtifacts(dirB, b); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}

	// a vectorizer from run b next to the classifier from run a
	vb, err := os.ReadFile(filepath.Join(dirB, VectorizerFile))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dirA, VectorizerFile), vb, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadArtifacts(dirA); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("mixed artifacts: %v", err)
	}
}
