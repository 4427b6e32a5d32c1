package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecLongName string `json:"codec_long_name"`
	CodecType     string `json:"codec_type"`
	PixFmt        string `json:"pix_fmt"`
	Duration      string `json:"duration"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RFrameRate    string `json:"r_frame_rate"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// IsVideo reports whether the stream is a video stream.
func (s Stream) IsVideo() bool {
	return strings.EqualFold(s.CodecType, "video")
}

// DurationSeconds returns the stream duration in seconds, or false when the
// field is absent or unparsable.
func (s Stream) DurationSeconds() (float64, bool) {
	cleaned := strings.TrimSpace(s.Duration)
	if cleaned == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// VideoStreams returns the subset of streams with a video codec type, in
// container order.
func (r Result) VideoStreams() []Stream {
	var streams []Stream
	for _, stream := range r.Streams {
		if stream.IsVideo() {
			streams = append(streams, stream)
		}
	}
	return streams
}

// ParseFrameRate converts an ffprobe rate expression such as "24000/1001"
// or "25" to a float. Zero denominators and malformed expressions fail.
func ParseFrameRate(expression string) (float64, error) {
	cleaned := strings.TrimSpace(expression)
	if cleaned == "" {
		return 0, errors.New("parse frame rate: empty expression")
	}

	numerator, denominator, found := strings.Cut(cleaned, "/")
	if !found {
		rate, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", expression, err)
		}
		return rate, nil
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(numerator), 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", expression, err)
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(denominator), 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", expression, err)
	}
	if den == 0 {
		return 0, fmt.Errorf("parse frame rate %q: zero denominator", expression)
	}
	return num / den, nil
}
