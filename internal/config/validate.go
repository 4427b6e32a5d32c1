package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownMetadataKeys = map[string]struct{}{
	"fps":                 {},
	"frame_start":         {},
	"frame_end":           {},
	"duration":            {},
	"width":               {},
	"height":              {},
	"codec":               {},
	"integration_version": {},
	"pipeline_version":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateReview(); err != nil {
		return err
	}
	if err := c.validateAssetTypes(); err != nil {
		return err
	}
	if err := c.validateStatusProfiles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateReview() error {
	for _, key := range c.Review.AdditionalMetadataKeys {
		if _, ok := knownMetadataKeys[key]; !ok {
			return fmt.Errorf("review.additional_metadata_keys: unknown key %q", key)
		}
	}
	return nil
}

func (c *Config) validateAssetTypes() error {
	for _, mapping := range c.AssetTypes {
		if strings.TrimSpace(mapping.ProductType) == "" {
			return errors.New("asset_types: product_type must be set")
		}
		if strings.TrimSpace(mapping.AssetType) == "" {
			return fmt.Errorf("asset_types: asset_type must be set for product type %q", mapping.ProductType)
		}
	}
	return nil
}

func (c *Config) validateStatusProfiles() error {
	for i, profile := range c.StatusProfiles {
		if strings.TrimSpace(profile.Status) == "" {
			return fmt.Errorf("status_profiles[%d]: status must be set", i)
		}
	}
	return nil
}
