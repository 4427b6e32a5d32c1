// Package logging constructs the slog loggers used across trackpub.
//
// Two output formats are supported: a human-oriented console handler that
// prefixes records with their component attribute, and a JSON handler with
// normalized keys. Output can fan out to stdout and a log file.
package logging
