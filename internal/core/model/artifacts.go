package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
)

// artifact file names inside the artifact directory
const (
	VectorizerFile = "vectorizer.json"
	ClassifierFile = "model.json"
)

type vectorizerDoc struct {
	ID          string         `json:"id"`
	MinDF       int            `json:"min_df"`
	MaxFeatures int            `json:"max_features"`
	NgramMax    int            `json:"ngram_max"`
	Sublinear   bool           `json:"sublinear_tf"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

type classifierDoc struct {
	ID         string        `json:"id"`
	Version    string        `json:"version"`
	TrainedAt  time.Time     `json:"trained_at"`
	Labels     []label.Label `json:"labels"`
	Weights    [][]float64   `json:"weights"`
	Intercept  []float64     `json:"intercept"`
	Iterations int           `json:"iterations"`
}

// SaveArtifacts writes both files under dir. Each file is written to a temp name and renamed,
// so readers never see a partial file
func SaveArtifacts(dir string, a *Artifact) error {
	if a == nil || a.Vectorizer == nil || a.Classifier == nil {
		return perr.InvalidArgf("artifact is incomplete")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "create artifact dir %s", dir)
	}
	v := a.Vectorizer
	vd := vectorizerDoc{
		ID:          a.ID.String(),
		MinDF:       v.Config.MinDF,
		MaxFeatures: v.Config.MaxFeatures,
		NgramMax:    v.Config.NgramMax,
		Sublinear:   v.Config.Sublinear,
		Vocabulary:  v.Vocabulary,
		IDF:         v.IDF,
	}
	c := a.Classifier
	cd := classifierDoc{
		ID:         a.ID.String(),
		Version:    a.Version,
		TrainedAt:  a.TrainedAt,
		Labels:     c.Labels,
		Weights:    c.Weights,
		Intercept:  c.Intercept,
		Iterations: c.Iter,
	}
	if err := writeJSONAtomic(filepath.Join(dir, VectorizerFile), vd); err != nil {
		return err
	}
	return writeJSONAtomic(filepath.Join(dir, ClassifierFile), cd)
}

func writeJSONAtomic(path string, v any) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "create temp for %s", path)
	}
	tmp := f.Name()
	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "rename %s", path)
	}
	return nil
}

// LoadArtifacts reads both files from dir and checks they come from the same training run
// and agree on dimensions
func LoadArtifacts(dir string) (*Artifact, error) {
	var vd vectorizerDoc
	if err := readJSON(filepath.Join(dir, VectorizerFile), &vd); err != nil {
		return nil, err
	}
	var cd classifierDoc
	if err := readJSON(filepath.Join(dir, ClassifierFile), &cd); err != nil {
		return nil, err
	}

	if vd.ID != cd.ID {
		return nil, perr.Newf(perr.ErrorCodeValidation, "%s belongs to artifact %q but %s to %q",
			VectorizerFile, vd.ID, ClassifierFile, cd.ID)
	}

	dim := len(vd.IDF)
	if len(vd.Vocabulary) != dim {
		return nil, perr.Newf(perr.ErrorCodeValidation, "vocabulary has %d terms but idf has %d", len(vd.Vocabulary), dim)
	}
	for t, i := range vd.Vocabulary {
		if i < 0 || i >= dim {
			return nil, perr.Newf(perr.ErrorCodeValidation, "term %q has index %d outside [0,%d)", t, i, dim)
		}
	}
	if len(cd.Labels) < 2 || len(cd.Weights) != len(cd.Labels) || len(cd.Intercept) != len(cd.Labels) {
		return nil, perr.Newf(perr.ErrorCodeValidation, "classifier shape mismatch: labels=%d weights=%d intercept=%d",
			len(cd.Labels), len(cd.Weights), len(cd.Intercept))
	}
	for j, l := range cd.Labels {
		if !l.Valid() {
			return nil, perr.Newf(perr.ErrorCodeValidation, "classifier label %q is not known", l)
		}
		if len(cd.Weights[j]) != dim {
			return nil, perr.Newf(perr.ErrorCodeValidation, "weights for %s have %d columns, vectorizer has %d", l, len(cd.Weights[j]), dim)
		}
	}
	id, err := uuid.Parse(cd.ID)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "artifact id %q", cd.ID)
	}

	return &Artifact{
		ID:        id,
		Version:   cd.Version,
		TrainedAt: cd.TrainedAt,
		Vectorizer: &Vectorizer{
			Config: VectorizerConfig{
				MinDF:       vd.MinDF,
				MaxFeatures: vd.MaxFeatures,
				NgramMax:    vd.NgramMax,
				Sublinear:   vd.Sublinear,
			},
			Vocabulary: vd.Vocabulary,
			IDF:        vd.IDF,
		},
		Classifier: &Classifier{
			Labels:    cd.Labels,
			Weights:   cd.Weights,
			Intercept: cd.Intercept,
			Iter:      cd.Iterations,
		},
	}, nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return perr.Wrapf(err, perr.ErrorCodeNotFound, "artifact %s not found", path)
		}
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "read %s", path)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", path)
	}
	return nil
}
