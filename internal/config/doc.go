// Package config loads and validates trackpub configuration from TOML.
//
// Configuration sections by subsystem:
//   - Paths: log and journal directories
//   - Locations: managed/unmanaged component location names
//   - Review: naming flags and the metadata key allow-list
//   - Extensions: video/image extension membership tables
//   - FFprobe: probe binary and timeout
//   - Logging: log format and level
//   - AssetTypes: product-type to asset-type short-code mapping
//   - StatusProfiles: optional asset-version status rules
//
// Load locates the file (explicit path, then the user config dir, then a
// project-local trackpub.toml), decodes it over Default(), expands paths,
// and validates the result.
package config
