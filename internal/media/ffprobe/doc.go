// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no trackpub-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - ParseFrameRate: converts an ffprobe rate expression to a float
package ffprobe
