package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"jobmail/internal/core/label"
	phttp "jobmail/internal/platform/net/http"
	"jobmail/internal/services/api/classify/domain"
)

type fakeClassifier struct{ got domain.Input }

func (f *fakeClassifier) Classify(_ context.Context, in domain.Input) (domain.Result, error) {
	f.got = in
	return domain.Result{
		IsJobRelated: true,
		EventType:    label.Interview,
		Confidence:   0.5,
		Reason:       domain.Reason,
		ModelVersion: "logreg-v1",
	}, nil
}

func router(svc domain.ClassifierPort) *chi.Mux {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	RegisterCompat(r, svc)
	r.Route("/api/v1/classify", func(rr phttp.Router) { Register(rr, svc) })
	return mux
}

func do(mux *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCompatHealth(t *testing.T) {
	rec := do(router(&fakeClassifier{}), stdhttp.MethodGet, "/health", "")
	if rec.Code != stdhttp.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestCompatClassify_Bare(t *testing.T) {
	fc := &fakeClassifier{}
	rec := do(router(fc), stdhttp.MethodPost, "/classify", `{"subject":"Hi","from":"a@b.com","body":"x","extra":1}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{"is_job_related", "event_type", "confidence", "reason", "model_version"} {
		if _, ok := got[k]; !ok {
			t.Fatalf("missing %s in %v", k, got)
		}
	}
	if _, enveloped := got["status_code"]; enveloped {
		t.Fatalf("compat route must not use the envelope")
	}
	if fc.got.Subject != "Hi" || fc.got.From != "a@b.com" {
		t.Fatalf("input = %+v", fc.got)
	}
}

func TestClassify_LenientInputs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.Input
	}{
		{"empty body", "", domain.Input{}},
		{"empty object", "{}", domain.Input{}},
		{"null", "null", domain.Input{}},
		{"wrong types", `{"subject":5,"from":null,"body":["x"]}`, domain.Input{}},
		{"partial", `{"body":"only body"}`, domain.Input{Body: "only body"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fc := &fakeClassifier{got: domain.Input{Subject: "stale"}}
			rec := do(router(fc), stdhttp.MethodPost, "/classify", tc.body)
			if rec.Code != stdhttp.StatusOK {
				t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
			}
			if fc.got != tc.want {
				t.Fatalf("input = %+v, want %+v", fc.got, tc.want)
			}
		})
	}
}

func TestClassify_InvalidJSON(t *testing.T) {
	rec := do(router(&fakeClassifier{}), stdhttp.MethodPost, "/classify", `{"subject":`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "detail") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestEnveloped(t *testing.T) {
	rec := do(router(&fakeClassifier{}), stdhttp.MethodPost, "/api/v1/classify/", `{"subject":"Hi"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["event_type"] != "interview" {
		t.Fatalf("data = %#v", env.Data)
	}

	rec = do(router(&fakeClassifier{}), stdhttp.MethodPost, "/api/v1/classify/", `not json`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("invalid json status = %d", rec.Code)
	}
}
