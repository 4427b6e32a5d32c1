package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"trackpub/internal/profiles"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir     string `toml:"log_dir"`
	JournalDir string `toml:"journal_dir"`
}

// Locations names the component deployment targets on the tracking server.
type Locations struct {
	Server    string `toml:"server"`
	Unmanaged string `toml:"unmanaged"`
}

// Review contains the reviewable-component naming flags and the metadata
// allow-list.
type Review struct {
	// KeepFirstProductName suppresses extended naming for the first
	// reviewable so it keeps the untouched product name.
	KeepFirstProductName bool `toml:"keep_first_product_name"`
	// UploadWithOriginName additionally uploads each reviewable under its
	// source file stem.
	UploadWithOriginName bool `toml:"upload_with_origin_name"`
	// AdditionalMetadataKeys allow-lists the labeled scalar metadata
	// fields attached to components (fps, frame_start, frame_end,
	// duration, width, height, codec, integration_version,
	// pipeline_version).
	AdditionalMetadataKeys []string `toml:"additional_metadata_keys"`
}

// Extensions overrides the built-in video/image extension tables.
type Extensions struct {
	Video []string `toml:"video"`
	Image []string `toml:"image"`
}

// FFprobe contains configuration for media stream probing.
type FFprobe struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// AssetTypeMapping maps one product type to an asset-type short code.
type AssetTypeMapping struct {
	ProductType string `toml:"product_type"`
	AssetType   string `toml:"asset_type"`
}

// Config encapsulates all configuration values for trackpub.
type Config struct {
	Paths          Paths              `toml:"paths"`
	Locations      Locations          `toml:"locations"`
	Review         Review             `toml:"review"`
	Extensions     Extensions         `toml:"extensions"`
	FFprobe        FFprobe            `toml:"ffprobe"`
	Logging        Logging            `toml:"logging"`
	AssetTypes     []AssetTypeMapping `toml:"asset_types"`
	StatusProfiles []profiles.Profile `toml:"status_profiles"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trackpub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("trackpub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories trackpub writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.JournalDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// AssetTypeFor resolves the asset-type short code for a product type using
// the configured mapping. Unmapped product types fall back to "upload".
func (c *Config) AssetTypeFor(productType string) string {
	lowered := strings.ToLower(strings.TrimSpace(productType))
	for _, mapping := range c.AssetTypes {
		if strings.ToLower(mapping.ProductType) == lowered {
			return mapping.AssetType
		}
	}
	return "upload"
}

// MetadataKeyAllowed reports whether the key is in the metadata allow-list.
func (c *Config) MetadataKeyAllowed(key string) bool {
	for _, candidate := range c.Review.AdditionalMetadataKeys {
		if candidate == key {
			return true
		}
	}
	return false
}

// CreateSample writes a sample configuration file to the specified
// location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists: %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
