package publish

import "testing"

func TestCloneDoesNotAliasMaps(t *testing.T) {
	item := ComponentItem{
		Asset: AssetData{Name: "renderMain"},
		AssetVersion: AssetVersionData{
			Version:          3,
			CustomAttributes: map[string]string{"source_version_id": "abc"},
		},
		Component: ComponentData{
			Name:     "ftrackreview-mp4",
			Metadata: map[string]string{"FPS": "24"},
		},
	}

	clone := item.Clone()
	clone.Asset.Name = "renderMain_h264"
	clone.Component.Metadata["FPS"] = "25"
	clone.AssetVersion.CustomAttributes["source_version_id"] = "xyz"

	if item.Asset.Name != "renderMain" {
		t.Fatalf("asset name mutated through clone: %q", item.Asset.Name)
	}
	if item.Component.Metadata["FPS"] != "24" {
		t.Fatalf("metadata mutated through clone: %q", item.Component.Metadata["FPS"])
	}
	if item.AssetVersion.CustomAttributes["source_version_id"] != "abc" {
		t.Fatalf("custom attributes mutated through clone")
	}
}

func TestHasTag(t *testing.T) {
	repre := Representation{Tags: []string{"ftrackreview", "delete"}}
	if !repre.HasTag("delete") {
		t.Fatal("expected delete tag")
	}
	if repre.HasTag("thumbnail") {
		t.Fatal("unexpected thumbnail tag")
	}
}
