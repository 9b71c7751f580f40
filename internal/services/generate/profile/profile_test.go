package profile

import (
	"os"
	"path/filepath"
	"testing"

	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/services/generate/domain"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Strength != 0.60 || p.WindowDays != 180 || p.LabelDistribution != nil {
		t.Fatalf("defaults = %+v", p)
	}
	if Distribution(p) != nil {
		t.Fatalf("empty profile should keep the stock distribution")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeYAML(t, `
strength: 0.8
window_days: 30
label_distribution:
  applied: 1
  offer: 1
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Strength != 0.8 || p.WindowDays != 30 {
		t.Fatalf("scalars = %+v", p)
	}
	d := Distribution(p)
	if len(d) != 2 || d[label.Applied] != 1 || d[label.Offer] != 1 {
		t.Fatalf("distribution = %v", d)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeYAML(t, "strength: 0.8\n")
	t.Setenv("JOBMAIL_GEN_STRENGTH", "0.25")
	t.Setenv("JOBMAIL_GEN_WINDOW_DAYS", "7")
	t.Setenv("JOBMAIL_GEN_DIST_NOT_JOB", "3")
	t.Setenv("JOBMAIL_GEN_DIST_INTERVIEW", "1")
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Strength != 0.25 || p.WindowDays != 7 {
		t.Fatalf("env not applied: %+v", p)
	}
	if p.LabelDistribution["not_job"] != 3 || p.LabelDistribution["interview"] != 1 {
		t.Fatalf("dist env not applied: %v", p.LabelDistribution)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code perr.ErrorCode
	}{
		{"strength too high", "strength: 1.5\n", perr.ErrorCodeValidation},
		{"window zero", "window_days: 0\n", perr.ErrorCodeValidation},
		{"unknown label", "label_distribution:\n  hired: 1\n", perr.ErrorCodeValidation},
		{"negative weight", "label_distribution:\n  offer: -1\n", perr.ErrorCodeValidation},
		{"all zero", "label_distribution:\n  offer: 0\n", perr.ErrorCodeValidation},
		{"bad yaml", "strength: [\n", perr.ErrorCodeValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeYAML(t, tc.body))
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("want %v, got %v", tc.code, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"JOBMAIL_GEN_STRENGTH":     "strength",
		"JOBMAIL_GEN_WINDOW_DAYS":  "window_days",
		"JOBMAIL_GEN_DIST_NOT_JOB": "label_distribution.not_job",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Fatalf("envKey(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestValidate_Struct(t *testing.T) {
	err := Validate(domain.Profile{Strength: -0.1, WindowDays: 10})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation, got %v", err)
	}
}
