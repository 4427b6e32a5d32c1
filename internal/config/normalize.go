package config

import (
	"fmt"
	"strings"

	"trackpub/internal/media"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLocations()
	c.normalizeExtensions()
	c.normalizeFFprobe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.JournalDir) == "" {
		c.Paths.JournalDir = defaultJournalDir
	}
	if c.Paths.JournalDir, err = expandPath(c.Paths.JournalDir); err != nil {
		return fmt.Errorf("paths.journal_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLocations() {
	if strings.TrimSpace(c.Locations.Server) == "" {
		c.Locations.Server = defaultServerLocation
	}
	if strings.TrimSpace(c.Locations.Unmanaged) == "" {
		c.Locations.Unmanaged = defaultUnmanagedLocation
	}
}

func (c *Config) normalizeExtensions() {
	if len(c.Extensions.Video) == 0 {
		c.Extensions.Video = media.DefaultVideoExtensions()
	}
	if len(c.Extensions.Image) == 0 {
		c.Extensions.Image = media.DefaultImageExtensions()
	}
}

func (c *Config) normalizeFFprobe() {
	if strings.TrimSpace(c.FFprobe.Binary) == "" {
		c.FFprobe.Binary = defaultFFprobeBinary
	}
	if c.FFprobe.TimeoutSeconds <= 0 {
		c.FFprobe.TimeoutSeconds = defaultFFprobeTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
