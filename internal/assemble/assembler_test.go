package assemble

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trackpub/internal/media/ffprobe"
	"trackpub/internal/profiles"
	"trackpub/internal/publish"
	"trackpub/internal/testsupport"
)

func TestAssembleEmptyInstance(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	components, err := assembler.Assemble(context.Background(), testInstance())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(components) != 0 {
		t.Fatalf("expected empty component list, got %d items", len(components))
	}
}

func TestAssembleMissingVersion(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	instance := testInstance(publish.Representation{Name: "h264", Ext: "mp4", PublishedPath: "/pub/main.mp4"})
	instance.Version = nil

	_, err := assembler.Assemble(context.Background(), instance)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
	if !errors.Is(err, publish.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssembleSingleVideoReviewWithThumbnail(t *testing.T) {
	prober := &fakeProber{streams: map[string][]ffprobe.Stream{
		"/pub/main.mp4": {{
			CodecType:     "video",
			CodecName:     "h264",
			CodecLongName: "H.264 / AVC",
			PixFmt:        "yuv420p",
			Width:         1920,
			Height:        1080,
			RFrameRate:    "24/1",
			Duration:      "2.0",
		}},
	}}
	assembler := newTestAssembler(t, prober)

	thumbnail := publish.Representation{
		Name: "thumbnail", Ext: "jpg", Thumbnail: true,
		OutputName: "main", Width: 1920, Height: 1080,
		PublishedPath: "/pub/thumb.jpg",
	}
	review := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		OutputName: "main", PublishedPath: "/pub/main.mp4",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(thumbnail, review))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := []string{"thumbnail_src", "thumbnail", "thumbnail_src", "ftrackreview-mp4_src", "ftrackreview-mp4"}
	if got := componentNames(components); !equalStrings(got, want) {
		t.Fatalf("component order mismatch:\n got %v\nwant %v", got, want)
	}

	for _, item := range components {
		if item.Asset.Name != "renderMain" {
			t.Fatalf("unexpected rename with a single reviewable: %q", item.Asset.Name)
		}
		if item.ComponentPath == "" {
			t.Fatalf("component %q has no path", item.Component.Name)
		}
		if item.Overwrite {
			t.Fatalf("component %q must not overwrite", item.Component.Name)
		}
	}

	thumbItem := components[1]
	if !thumbItem.Thumbnail {
		t.Fatal("thumbnail item must carry the thumbnail flag")
	}
	if meta := thumbItem.Component.Metadata["ftr_meta"]; meta != `{"width":1920,"height":1080,"format":"image"}` {
		t.Fatalf("unexpected thumbnail metadata: %s", meta)
	}

	for _, index := range []int{0, 2, 3} {
		shadow := components[index]
		if shadow.Thumbnail {
			t.Fatalf("shadow %q must not be a thumbnail", shadow.Component.Name)
		}
		if shadow.LocationName != "ftrack.unmanaged" {
			t.Fatalf("shadow %q must target the unmanaged location, got %q", shadow.Component.Name, shadow.LocationName)
		}
	}

	reviewItem := components[4]
	if reviewItem.LocationName != "ftrack.server" {
		t.Fatalf("review item location = %q", reviewItem.LocationName)
	}
	if meta := reviewItem.Component.Metadata["ftr_meta"]; meta != `{"frameIn":0,"frameOut":48,"frameRate":24}` {
		t.Fatalf("unexpected review metadata: %s", meta)
	}

	// The review shadow carries non-review metadata: no frame window, but
	// resolution is allowed there.
	reviewShadow := components[3]
	meta := reviewShadow.Component.Metadata["ftr_meta"]
	if strings.Contains(meta, "frameIn") {
		t.Fatalf("shadow metadata must not carry a frame window: %s", meta)
	}
	if meta != `{"frameRate":24,"width":1920,"height":1080}` {
		t.Fatalf("unexpected shadow metadata: %s", meta)
	}
}

func TestAssembleThumbnailOnlyFallback(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	thumbnail := publish.Representation{
		Name: "thumbnail", Ext: "jpg", Thumbnail: true,
		Width: 960, Height: 540, PublishedPath: "/pub/thumb.jpg",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(thumbnail))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := []string{"ftrackreview-image_src", "ftrackreview-image"}
	if got := componentNames(components); !equalStrings(got, want) {
		t.Fatalf("component order mismatch: %v", got)
	}
	if !components[1].Thumbnail {
		t.Fatal("fallback image must keep the thumbnail flag")
	}
}

func TestAssembleDeleteTaggedThumbnailHasNoShadow(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	thumbnail := publish.Representation{
		Name: "thumbnail", Ext: "jpg", Thumbnail: true, Tags: []string{"delete"},
		Width: 960, Height: 540, PublishedPath: "/pub/thumb.jpg",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(thumbnail))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, item := range components {
		if strings.HasSuffix(item.Component.Name, "_src") {
			t.Fatalf("delete-tagged thumbnail must not produce a shadow: %v", componentNames(components))
		}
	}
}

func TestAssembleVideoPriorityDropsImageReviews(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	imageReview := publish.Representation{
		Name: "png", Ext: "png", Tags: []string{"ftrackreview"},
		Width: 1920, Height: 1080, PublishedPath: "/pub/main.png",
	}
	videoReview := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		PublishedPath: "/pub/main.mp4",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(imageReview, videoReview))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, item := range components {
		if item.Component.Name == "ftrackreview-image" {
			t.Fatalf("image review must not survive a movie review: %v", componentNames(components))
		}
		if item.ComponentPath == "/pub/main.png" {
			t.Fatalf("image review path leaked into output: %v", componentNames(components))
		}
	}
}

func TestAssembleSingleThumbnailBindsAllReviews(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	thumbnail := publish.Representation{
		Name: "thumbnail", Ext: "jpg", Thumbnail: true, OutputName: "x",
		Width: 960, Height: 540, PublishedPath: "/pub/thumb.jpg",
	}
	first := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		OutputName: "a", PublishedPath: "/pub/a.mp4",
	}
	second := publish.Representation{
		Name: "prores", Ext: "mov", Tags: []string{"ftrackreview"},
		OutputName: "b", PublishedPath: "/pub/b.mov",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(thumbnail, first, second))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	bound := 0
	for _, item := range components {
		if item.Component.Name == "thumbnail" {
			bound++
		}
	}
	if bound != 2 {
		t.Fatalf("single thumbnail must bind to both reviews, bound %d times in %v", bound, componentNames(components))
	}
}

func TestAssembleExtendedNameRenamesReviewSet(t *testing.T) {
	assembler := newTestAssembler(t, nil, testsupport.WithKeepFirstProductName(false))

	thumbMain := publish.Representation{
		Name: "thumb_main", Ext: "jpg", Thumbnail: true, OutputName: "main",
		Width: 960, Height: 540, PublishedPath: "/pub/thumb_main.jpg",
	}
	thumbAlt := publish.Representation{
		Name: "thumb_alt", Ext: "jpg", Thumbnail: true, OutputName: "alt",
		Width: 960, Height: 540, PublishedPath: "/pub/thumb_alt.jpg",
	}
	reviewMain := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		OutputName: "main", PublishedPath: "/pub/main.mp4",
	}
	reviewAlt := publish.Representation{
		Name: "prores", Ext: "mov", Tags: []string{"ftrackreview"},
		OutputName: "alt", PublishedPath: "/pub/alt.mov",
	}

	components, err := assembler.Assemble(
		context.Background(),
		testInstance(thumbMain, thumbAlt, reviewMain, reviewAlt),
	)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	byPath := map[string][]string{}
	for _, item := range components {
		byPath[item.ComponentPath] = append(byPath[item.ComponentPath], item.Asset.Name)
	}

	// With keep_first off, index 0 is renamed too.
	for _, name := range byPath["/pub/main.mp4"] {
		if name != "renderMain_h264" {
			t.Fatalf("first review set not renamed: %v", byPath["/pub/main.mp4"])
		}
	}
	for _, name := range byPath["/pub/thumb_main.jpg"] {
		if name != "renderMain_h264" {
			t.Fatalf("first thumbnail set not renamed: %v", byPath["/pub/thumb_main.jpg"])
		}
	}
	for _, name := range byPath["/pub/alt.mov"] {
		if name != "renderMain_prores" {
			t.Fatalf("second review set not renamed: %v", byPath["/pub/alt.mov"])
		}
	}
	for _, name := range byPath["/pub/thumb_alt.jpg"] {
		if name != "renderMain_prores" {
			t.Fatalf("second thumbnail set not renamed: %v", byPath["/pub/thumb_alt.jpg"])
		}
	}
}

func TestAssembleKeepFirstSuppressesOnlyIndexZero(t *testing.T) {
	assembler := newTestAssembler(t, nil, testsupport.WithKeepFirstProductName(true))

	first := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		PublishedPath: "/pub/a.mp4",
	}
	second := publish.Representation{
		Name: "prores", Ext: "mov", Tags: []string{"ftrackreview"},
		PublishedPath: "/pub/b.mov",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(first, second))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for _, item := range components {
		switch item.ComponentPath {
		case "/pub/a.mp4":
			if item.Asset.Name != "renderMain" {
				t.Fatalf("first review must keep the product name, got %q", item.Asset.Name)
			}
		case "/pub/b.mov":
			if item.Asset.Name != "renderMain_prores" {
				t.Fatalf("second review must be renamed, got %q", item.Asset.Name)
			}
		}
	}
}

func TestAssembleProbeFailureFallsBackToDeclaredRange(t *testing.T) {
	prober := &fakeProber{err: errors.New("probe timeout")}
	assembler := newTestAssembler(t, prober, testsupport.WithMetadataKeys("fps", "duration", "codec"))

	review := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		FrameStartFtrack: intPtr(1001),
		FrameEndFtrack:   intPtr(1010),
		PublishedPath:    "/pub/main.mp4",
	}
	instance := testInstance(review)
	instance.FrameStart = 0
	instance.FrameEnd = 0

	components, err := assembler.Assemble(context.Background(), instance)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	var reviewItem *publish.ComponentItem
	for i := range components {
		if components[i].Component.Name == "ftrackreview-mp4" {
			reviewItem = &components[i]
		}
	}
	if reviewItem == nil {
		t.Fatalf("review component missing: %v", componentNames(components))
	}

	metadata := reviewItem.Component.Metadata
	if metadata["Duration"] != "10" {
		t.Fatalf("expected declared duration 10, got %q", metadata["Duration"])
	}
	if _, ok := metadata["FPS"]; ok {
		t.Fatal("fps must be absent when nothing declared it")
	}
	if _, ok := metadata["Codec"]; ok {
		t.Fatal("codec must be absent when the probe failed")
	}
	if metadata["ftr_meta"] != `{"frameIn":0,"frameOut":10,"frameRate":0}` {
		t.Fatalf("unexpected review payload: %s", metadata["ftr_meta"])
	}
}

func TestAssembleOriginNameUpload(t *testing.T) {
	assembler := newTestAssembler(t, nil, testsupport.WithOriginNameUpload(true))
	review := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		PublishedPath: "/pub/sh020_comp_v004.mp4",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(review))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	names := componentNames(components)
	if names[len(names)-1] != "sh020_comp_v004" {
		t.Fatalf("expected origin-named component last, got %v", names)
	}
}

func TestAssembleOtherRepresentations(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	cache := publish.Representation{
		Name: "abc", Ext: "abc",
		PublishedPath: "/pub/pointcache.abc",
	}
	unresolvable := publish.Representation{
		Name: "usd", Ext: "usd",
		StagedPath: "/staging/scene.usd",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(cache, unresolvable))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if len(components) != 1 {
		t.Fatalf("expected only the resolvable representation, got %v", componentNames(components))
	}
	item := components[0]
	if item.Component.Name != "abc" {
		t.Fatalf("other components are named after the representation, got %q", item.Component.Name)
	}
	if item.LocationName != "ftrack.unmanaged" {
		t.Fatalf("other components target the unmanaged location, got %q", item.LocationName)
	}
	if len(item.Component.Metadata) != 0 {
		t.Fatalf("unknown extension must yield empty metadata: %v", item.Component.Metadata)
	}
}

func TestAssembleFarmDeferredSkipped(t *testing.T) {
	assembler := newTestAssembler(t, nil)
	farm := publish.Representation{
		Name: "exr", Ext: "exr", Tags: []string{"publish_on_farm", "ftrackreview"},
		PublishedPath: "/pub/seq.exr",
	}

	components, err := assembler.Assemble(context.Background(), testInstance(farm))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(components) != 0 {
		t.Fatalf("farm-deferred representations must be skipped entirely: %v", componentNames(components))
	}
}

func TestAssembleStatusAndCustomAttributes(t *testing.T) {
	assembler := newTestAssembler(t, nil, testsupport.WithStatusProfiles(profiles.Profile{
		ProductTypes: []string{"render"},
		Status:       "Pending Review",
	}))

	review := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		PublishedPath: "/pub/main.mp4",
	}
	instance := testInstance(review)
	instance.VersionEntity = &publish.VersionEntity{ID: "01973f2a", Version: 4}

	components, err := assembler.Assemble(context.Background(), instance)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(components) == 0 {
		t.Fatal("expected components")
	}
	for _, item := range components {
		if item.AssetVersion.StatusName != "Pending Review" {
			t.Fatalf("status not applied: %q", item.AssetVersion.StatusName)
		}
		if item.AssetVersion.CustomAttributes["source_version_id"] != "01973f2a" {
			t.Fatalf("custom attributes missing: %v", item.AssetVersion.CustomAttributes)
		}
		if item.AssetVersion.CustomAttributes["source_version_path"] != "/shots/sq010/sh020/renderMain/v004" {
			t.Fatalf("version path mismatch: %v", item.AssetVersion.CustomAttributes)
		}
		if item.AssetType.Short != "render" {
			t.Fatalf("asset type mapping not applied: %q", item.AssetType.Short)
		}
	}
}

func TestAssembleDoesNotMutateInstance(t *testing.T) {
	assembler := newTestAssembler(t, nil, testsupport.WithKeepFirstProductName(false))
	review := publish.Representation{
		Name: "h264", Ext: "mp4", Tags: []string{"ftrackreview"},
		FPS: floatPtr(24), PublishedPath: "/pub/main.mp4",
	}
	instance := testInstance(review)

	if _, err := assembler.Assemble(context.Background(), instance); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if instance.ProductName != "renderMain" {
		t.Fatal("instance mutated")
	}
	if instance.Representations[0].Name != "h264" || *instance.Representations[0].FPS != 24 {
		t.Fatal("representation mutated")
	}
}
