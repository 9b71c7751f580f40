// Package version reports build metadata stamped in with -ldflags
package version

import "jobmail/internal/core/model"

// BuildInfo describes the running binary and the model format it serves
type BuildInfo struct {
	Service      string `json:"service"`
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	Date         string `json:"date"`
	ModelVersion string `json:"model_version"`
}

// go build -ldflags "-X 'jobmail/internal/core/version.version=v0.1.0' -X 'jobmail/internal/core/version.commit=abcd'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the stamped build info for the api binary
func Info() BuildInfo {
	return BuildInfo{
		Service:      "jobmail-api",
		Version:      version,
		Commit:       commit,
		Date:         date,
		ModelVersion: model.Version,
	}
}
