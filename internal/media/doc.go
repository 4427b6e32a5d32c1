// Package media holds the static video/image extension tables used to
// classify representations, with config-level overrides applied at startup.
package media
