// Package profile loads generation profiles from YAML and JOBMAIL_GEN_* env vars
package profile

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"jobmail/internal/core/corpus"
	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/net/http/bind"
	"jobmail/internal/services/generate/domain"
)

// EnvPrefix selects the env vars that override profile keys
const EnvPrefix = "JOBMAIL_GEN_"

// distPrefix maps JOBMAIL_GEN_DIST_OFFER=0.1 to label_distribution.offer
const distPrefix = "dist_"

// Default is the stock profile
func Default() domain.Profile {
	return domain.Profile{
		Strength:   corpus.DefaultStrength,
		WindowDays: int(corpus.DefaultWindow.Hours() / 24),
	}
}

// Load reads path (optional) then env overrides, and validates the result
func Load(path string) (domain.Profile, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return domain.Profile{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "profile %s", path)
			}
			return domain.Profile{}, perr.Wrapf(err, perr.ErrorCodeValidation, "parse profile %s", path)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return domain.Profile{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read profile env")
	}

	p := Default()
	if err := k.Unmarshal("", &p); err != nil {
		return domain.Profile{}, perr.Wrap(err, perr.ErrorCodeValidation, "decode profile")
	}
	if err := Validate(p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// envKey turns JOBMAIL_GEN_WINDOW_DAYS into window_days
func envKey(s string) string {
	k := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if l, ok := strings.CutPrefix(k, distPrefix); ok {
		return "label_distribution." + l
	}
	return k
}

// Validate checks field ranges and that the distribution is usable
func Validate(p domain.Profile) error {
	if err := bind.Get().Validator.Struct(p); err != nil {
		field, msg := bind.ValidationFieldAndMessage(err)
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	if len(p.LabelDistribution) > 0 {
		if err := Distribution(p).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Distribution converts the profile's weights; nil means the stock distribution
func Distribution(p domain.Profile) corpus.Distribution {
	if len(p.LabelDistribution) == 0 {
		return nil
	}
	d := make(corpus.Distribution, len(p.LabelDistribution))
	for k, v := range p.LabelDistribution {
		d[label.Label(strings.TrimSpace(k))] = v
	}
	return d
}
