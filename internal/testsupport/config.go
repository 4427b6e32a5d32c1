// Package testsupport provides shared helpers for package tests: seeded
// configurations with unique temp directories and fixture file creation.
package testsupport

import (
	"path/filepath"
	"testing"

	"trackpub/internal/config"
	"trackpub/internal/media"
	"trackpub/internal/profiles"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.JournalDir = filepath.Join(base, "journal")
	cfg.Extensions.Video = media.DefaultVideoExtensions()
	cfg.Extensions.Image = media.DefaultImageExtensions()

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithKeepFirstProductName sets the first-reviewable naming flag.
func WithKeepFirstProductName(keep bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.KeepFirstProductName = keep
	}
}

// WithOriginNameUpload enables uploading reviewables under their source
// file stem.
func WithOriginNameUpload(enabled bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.UploadWithOriginName = enabled
	}
}

// WithMetadataKeys sets the metadata key allow-list.
func WithMetadataKeys(keys ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.AdditionalMetadataKeys = keys
	}
}

// WithStatusProfiles sets the status-profile rules.
func WithStatusProfiles(candidates ...profiles.Profile) ConfigOption {
	return func(cfg *config.Config) {
		cfg.StatusProfiles = candidates
	}
}
