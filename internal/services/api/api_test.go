package api

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"jobmail/internal/core/label"
	"jobmail/internal/core/model"
	"jobmail/internal/modkit/module"
	"jobmail/internal/platform/config"
	phttp "jobmail/internal/platform/net/http"
)

func tinyArtifact() *model.Artifact {
	v := &model.Vectorizer{
		Config:     model.DefaultVectorizerConfig(),
		Vocabulary: map[string]int{"offer": 0},
		IDF:        []float64{1},
	}
	c := &model.Classifier{
		Labels:    []label.Label{label.Offer, label.NotJob},
		Weights:   [][]float64{{1}, {-1}},
		Intercept: []float64{0, 0},
	}
	return model.NewArtifact(v, c, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func newMux(t *testing.T, swagger bool) *chi.Mux {
	t.Helper()
	t.Cleanup(module.Reset)
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New().Prefix("CORE_API_"),
		Artifact:      tinyArtifact(),
		EnableSwagger: swagger,
	})
	return mux
}

func do(mux *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	mux.ServeHTTP(rec, req)
	return rec
}

func TestMount_CompatRoutes(t *testing.T) {
	mux := newMux(t, false)

	rec := do(mux, stdhttp.MethodGet, "/health", "")
	if rec.Code != stdhttp.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}

	rec = do(mux, stdhttp.MethodPost, "/classify", `{"subject":"your offer","body":"offer letter attached"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("classify = %d %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["event_type"]; !ok {
		t.Fatalf("expected bare result, got %v", out)
	}
	if _, ok := out["status_code"]; ok {
		t.Fatalf("compat route must not be enveloped: %v", out)
	}
}

func TestMount_VersionedRoutes(t *testing.T) {
	mux := newMux(t, false)

	rec := do(mux, stdhttp.MethodPost, "/api/v1/classify", `{"subject":"offer"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("classify = %d %s", rec.Code, rec.Body.String())
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != stdhttp.StatusOK || env.Data == nil {
		t.Fatalf("envelope = %+v", env)
	}

	if rec := do(mux, stdhttp.MethodGet, "/api/v1/meta/model", ""); rec.Code != stdhttp.StatusOK {
		t.Fatalf("model = %d %s", rec.Code, rec.Body.String())
	}
}

func TestMount_RunsNeedStore(t *testing.T) {
	mux := newMux(t, false)
	if rec := do(mux, stdhttp.MethodGet, "/api/v1/runs", ""); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("runs without store = %d", rec.Code)
	}
	if _, ok := module.PortsAs[any]("runs"); ok {
		t.Fatalf("runs ports registered without a store")
	}
}

func TestMount_Swagger(t *testing.T) {
	if rec := do(newMux(t, false), stdhttp.MethodGet, "/docs/doc.json", ""); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("docs disabled = %d", rec.Code)
	}
	if rec := do(newMux(t, true), stdhttp.MethodGet, "/docs/doc.json", ""); rec.Code != stdhttp.StatusOK {
		t.Fatalf("docs enabled = %d", rec.Code)
	}
}
