package publish

import "slices"

// Representation describes one published output unit belonging to an
// instance. Field names mirror the manifest keys emitted by the
// content-creation pipeline.
type Representation struct {
	Name             string   `json:"name"`
	Ext              string   `json:"ext"`
	Tags             []string `json:"tags,omitempty"`
	Thumbnail        bool     `json:"thumbnail,omitempty"`
	OutputName       string   `json:"outputName,omitempty"`
	FPS              *float64 `json:"fps,omitempty"`
	Width            int      `json:"width,omitempty"`
	Height           int      `json:"height,omitempty"`
	FrameStartFtrack *int     `json:"frameStartFtrack,omitempty"`
	FrameEndFtrack   *int     `json:"frameEndFtrack,omitempty"`
	StagedPath       string   `json:"stagedPath,omitempty"`
	PublishedPath    string   `json:"publishedPath,omitempty"`
}

// HasTag reports whether the representation carries the given tag.
func (r Representation) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// VersionEntity identifies an already-created server-side version the
// assembled components should link back to.
type VersionEntity struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
}

// Context carries pipeline-wide values shared by every instance of one
// publish session.
type Context struct {
	FPS             float64 `json:"fps,omitempty"`
	Comment         string  `json:"comment,omitempty"`
	HostName        string  `json:"hostName,omitempty"`
	PipelineVersion string  `json:"pipelineVersion,omitempty"`
}

// Instance is one publish instance: the product being versioned and the
// representations produced for it.
type Instance struct {
	ProductName string `json:"productName"`
	ProductType string `json:"productType"`
	// AssetType overrides the configured product-type mapping when set.
	AssetType       string           `json:"assetType,omitempty"`
	Version         *int             `json:"version"`
	FolderPath      string           `json:"folderPath,omitempty"`
	TaskType        string           `json:"taskType,omitempty"`
	FPS             *float64         `json:"fps,omitempty"`
	FrameStart      int              `json:"frameStart,omitempty"`
	FrameEnd        int              `json:"frameEnd,omitempty"`
	VersionEntity   *VersionEntity   `json:"versionEntity,omitempty"`
	Representations []Representation `json:"representations,omitempty"`
	Context         Context          `json:"context"`
}
