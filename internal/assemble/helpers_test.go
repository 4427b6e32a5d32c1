package assemble

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"trackpub/internal/media/ffprobe"
	"trackpub/internal/publish"
	"trackpub/internal/testsupport"
)

// fakeProber serves canned streams per path, or a global error.
type fakeProber struct {
	streams map[string][]ffprobe.Stream
	err     error
}

func (f *fakeProber) Streams(_ context.Context, path string) ([]ffprobe.Stream, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.streams[path], nil
}

// fakeResolver trusts manifest paths without touching the filesystem.
type fakeResolver struct{}

func (fakeResolver) ResolvePublishedPath(_ *publish.Instance, repre publish.Representation, requirePublished bool) string {
	if repre.PublishedPath != "" {
		return repre.PublishedPath
	}
	if !requirePublished {
		return repre.StagedPath
	}
	return ""
}

func newTestAssembler(t testing.TB, prober StreamProber, opts ...testsupport.ConfigOption) *Assembler {
	t.Helper()
	if prober == nil {
		prober = &fakeProber{}
	}
	cfg := testsupport.NewConfig(t, opts...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger, WithProber(prober), WithResolver(fakeResolver{}))
}

func testInstance(reprs ...publish.Representation) *publish.Instance {
	version := 4
	return &publish.Instance{
		ProductName: "renderMain",
		ProductType: "render",
		Version:     &version,
		FolderPath:  "/shots/sq010/sh020",
		FrameStart:  1001,
		FrameEnd:    1048,
		Context: publish.Context{
			Comment:  "first pass",
			HostName: "nuke",
		},
		Representations: reprs,
	}
}

func componentNames(items []publish.ComponentItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Component.Name
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
