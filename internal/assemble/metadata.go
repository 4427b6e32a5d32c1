package assemble

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"trackpub/internal/media/ffprobe"
	"trackpub/internal/publish"
)

// metadataKeyLabels maps allow-list keys to the human-readable labels the
// tracking service displays.
var metadataKeyLabels = map[string]string{
	"integration_version": "Integration version",
	"pipeline_version":    "Pipeline version",
	"frame_start":         "Frame start",
	"frame_end":           "Frame end",
	"duration":            "Duration",
	"width":               "Resolution width",
	"height":              "Resolution height",
	"fps":                 "FPS",
	"codec":               "Codec",
}

var labelCaser = cases.Title(language.English)

func labelForKey(key string) string {
	if label, ok := metadataKeyLabels[key]; ok {
		return label
	}
	return labelCaser.String(strings.ReplaceAll(key, "_", " "))
}

// reviewMeta is the structured payload for review components. Width and
// height are deliberately absent: embedding them breaks playback in the
// target service.
type reviewMeta struct {
	FrameIn   int     `json:"frameIn"`
	FrameOut  float64 `json:"frameOut"`
	FrameRate float64 `json:"frameRate"`
}

type videoMeta struct {
	FrameRate float64 `json:"frameRate,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
}

type imageMeta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// componentMetadata dispatches on the representation extension. Unknown
// extensions yield an empty map.
func (a *Assembler) componentMetadata(ctx context.Context, instance *publish.Instance, repre publish.Representation, path string, isReview bool) map[string]string {
	if a.isVideo(repre) {
		return a.videoMetadata(ctx, instance, repre, path, isReview)
	}
	if a.isImage(repre) {
		return a.imageMetadata(ctx, repre, path)
	}
	return map[string]string{}
}

func (a *Assembler) videoMetadata(ctx context.Context, instance *publish.Instance, repre publish.Representation, path string, isReview bool) map[string]string {
	metadata := map[string]string{}

	for _, entry := range []struct {
		key   string
		value string
	}{
		{"integration_version", Version},
		{"pipeline_version", instance.Context.PipelineVersion},
	} {
		if entry.value != "" && a.cfg.MetadataKeyAllowed(entry.key) {
			metadata[labelForKey(entry.key)] = entry.value
		}
	}

	// A failed or empty probe still yields the declared fps and frame
	// range; only the stream-derived fields go missing.
	var videoStreams []ffprobe.Stream
	for _, stream := range a.probeStreams(ctx, path) {
		if stream.IsVideo() {
			videoStreams = append(videoStreams, stream)
		}
	}

	var streamWidth, streamHeight int
	var streamFPS float64
	var frameOut float64
	frameOutKnown := false
	var codecLabel string
	for _, stream := range videoStreams {
		codecLabel = stream.CodecLongName
		if codecLabel == "" {
			codecLabel = stream.CodecName
		}
		if codecLabel != "" && stream.PixFmt != "" {
			codecLabel += " (" + stream.PixFmt + ")"
		}

		if stream.Width > 0 && stream.Height > 0 {
			streamWidth = stream.Width
			streamHeight = stream.Height
		}

		duration, hasDuration := stream.DurationSeconds()
		if stream.RFrameRate == "" || !hasDuration {
			continue
		}
		fps, err := ffprobe.ParseFrameRate(stream.RFrameRate)
		if err != nil {
			a.logger.Warn("could not convert stream frame rate", "rate", stream.RFrameRate, "error", err)
			continue
		}

		streamFPS = fps
		streamWidth = stream.Width
		streamHeight = stream.Height
		a.logger.Debug("stream rate and duration", "rate", stream.RFrameRate, "duration", stream.Duration)
		frameOut = duration * fps
		frameOutKnown = true
		break
	}

	// Effective fps: stream, then representation, then instance, then
	// context.
	fps := streamFPS
	if fps == 0 && repre.FPS != nil {
		fps = *repre.FPS
	}
	if fps == 0 && instance.FPS != nil {
		fps = *instance.FPS
	}
	if fps == 0 {
		fps = instance.Context.FPS
	}

	frameStart := instance.FrameStart
	frameEnd := instance.FrameEnd
	if repre.FrameStartFtrack != nil && repre.FrameEndFtrack != nil {
		frameStart = *repre.FrameStartFtrack
		frameEnd = *repre.FrameEndFtrack
	}
	durationFrames := frameEnd - frameStart + 1

	for _, entry := range []struct {
		key     string
		value   string
		present bool
	}{
		{"fps", formatFloat(fps), fps != 0},
		{"frame_start", strconv.Itoa(frameStart), frameStart != 0},
		{"frame_end", strconv.Itoa(frameEnd), frameEnd != 0},
		{"duration", strconv.Itoa(durationFrames), durationFrames != 0},
		{"width", strconv.Itoa(streamWidth), streamWidth != 0},
		{"height", strconv.Itoa(streamHeight), streamHeight != 0},
		{"codec", codecLabel, codecLabel != ""},
	} {
		if !entry.present || !a.cfg.MetadataKeyAllowed(entry.key) {
			continue
		}
		metadata[labelForKey(entry.key)] = entry.value
	}

	if !isReview {
		payload := videoMeta{FrameRate: fps}
		if streamWidth != 0 && streamHeight != 0 {
			payload.Width = streamWidth
			payload.Height = streamHeight
		}
		metadata["ftr_meta"] = marshalMeta(payload)
		return metadata
	}

	// The uploaded clip always starts at frame 0; the end frame falls back
	// to the declared duration when the stream could not be measured.
	if !frameOutKnown {
		frameOut = float64(durationFrames)
	}
	metadata["ftr_meta"] = marshalMeta(reviewMeta{
		FrameIn:   0,
		FrameOut:  frameOut,
		FrameRate: fps,
	})
	return metadata
}

func (a *Assembler) imageMetadata(ctx context.Context, repre publish.Representation, path string) map[string]string {
	width := repre.Width
	height := repre.Height
	if width == 0 || height == 0 {
		for _, stream := range a.probeStreams(ctx, path) {
			if stream.Width > 0 && stream.Height > 0 {
				width = stream.Width
				height = stream.Height
				break
			}
		}
	}

	if width == 0 || height == 0 {
		return map[string]string{}
	}
	return map[string]string{
		"ftr_meta": marshalMeta(imageMeta{Width: width, Height: height, Format: "image"}),
	}
}

func (a *Assembler) probeStreams(ctx context.Context, path string) []ffprobe.Stream {
	if path == "" {
		return nil
	}
	streams, err := a.prober.Streams(ctx, path)
	if err != nil {
		a.logger.Debug("failed to retrieve stream information", "path", path, "error", err)
		return nil
	}
	return streams
}

func marshalMeta(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
