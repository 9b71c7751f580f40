package service

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"jobmail/internal/core/corpus"
	"jobmail/internal/core/features"
	"jobmail/internal/core/label"
	"jobmail/internal/core/model"
	"jobmail/internal/platform/testkit"
	"jobmail/internal/services/api/classify/domain"
)

func trainArtifact(t *testing.T) *model.Artifact {
	t.Helper()
	o := corpus.DefaultOptions()
	o.Seed = 3
	o.Anchor = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g, err := corpus.NewGenerator(o)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	rows, err := g.Generate(300)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	texts := make([]string, len(rows))
	ys := make([]label.Label, len(rows))
	for i, r := range rows {
		texts[i] = features.EncodeMessage(r.Message())
		ys[i] = r.Label
	}
	fc := model.DefaultFitConfig()
	fc.MaxIter = 60
	art, err := model.Train(texts, ys, model.DefaultVectorizerConfig(), fc, o.Anchor)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	return art
}

func TestNew_RequiresArtifact(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil) })
	testkit.MustPanic(t, func() { New(&model.Artifact{}) })
}

func TestClassify_Shape(t *testing.T) {
	s := New(trainArtifact(t))
	res, err := s.Classify(context.Background(), domain.Input{
		Subject: "Interview invitation - Acme",
		From:    "no-reply@greenhouse.io",
		Body:    "We would like to schedule a call with you next week.",
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !res.EventType.Valid() {
		t.Fatalf("event type %q outside the label set", res.EventType)
	}
	if res.IsJobRelated != (res.EventType != label.NotJob) {
		t.Fatalf("is_job_related inconsistent: %+v", res)
	}
	if res.Confidence <= 0 || res.Confidence > 1 || math.IsNaN(res.Confidence) {
		t.Fatalf("confidence = %v", res.Confidence)
	}
	if res.Reason != domain.Reason || res.ModelVersion != model.Version {
		t.Fatalf("fixed fields wrong: %+v", res)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	s := New(trainArtifact(t))
	res, err := s.Classify(context.Background(), domain.Input{})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !res.EventType.Valid() || res.Confidence <= 0 {
		t.Fatalf("empty input result = %+v", res)
	}
}

func TestClassify_MatchesTrainingEncoding(t *testing.T) {
	art := trainArtifact(t)
	s := New(art)
	in := domain.Input{Subject: "Offer letter", From: "careers@acme.com", Body: "Congratulations"}
	res, err := s.Classify(context.Background(), in)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := art.Predict(features.Encode("Offer letter", "careers@acme.com", "Congratulations", features.KindCompany))
	if res.EventType != want.Label || res.Confidence != want.Confidence {
		t.Fatalf("serving path diverged from encoder: got %+v want %+v", res, want)
	}
}

func TestClassify_Concurrent(t *testing.T) {
	s := New(trainArtifact(t))
	in := domain.Input{Subject: "Application received", From: "jobs@lever.co", Body: "Thanks for applying"}
	first, _ := s.Classify(context.Background(), in)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Classify(context.Background(), in)
			if err != nil || got != first {
				errs <- "concurrent result differs"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestClassify_CanceledContext(t *testing.T) {
	s := New(trainArtifact(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Classify(ctx, domain.Input{}); err == nil {
		t.Fatalf("canceled context should fail")
	}
}
