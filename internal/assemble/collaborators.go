package assemble

import (
	"context"
	"os"
	"time"

	"trackpub/internal/config"
	"trackpub/internal/media/ffprobe"
	"trackpub/internal/publish"
)

// ffprobeProber is the default StreamProber, shelling out to ffprobe with
// the configured binary and timeout.
type ffprobeProber struct {
	binary  string
	timeout time.Duration
}

func newFFprobeProber(cfg *config.Config) *ffprobeProber {
	return &ffprobeProber{
		binary:  cfg.FFprobe.Binary,
		timeout: time.Duration(cfg.FFprobe.TimeoutSeconds) * time.Second,
	}
}

func (p *ffprobeProber) Streams(ctx context.Context, path string) ([]ffprobe.Stream, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		return nil, err
	}
	return result.Streams, nil
}

// fileResolver is the default PathResolver: the published path wins when
// it exists on disk, the staged path is accepted as a fallback unless a
// published file is required.
type fileResolver struct{}

func (fileResolver) ResolvePublishedPath(_ *publish.Instance, repre publish.Representation, requirePublished bool) string {
	if repre.PublishedPath != "" && fileExists(repre.PublishedPath) {
		return repre.PublishedPath
	}
	if !requirePublished && repre.StagedPath != "" && fileExists(repre.StagedPath) {
		return repre.StagedPath
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
