package publish

// AssetTypeData names the asset type a component belongs to.
type AssetTypeData struct {
	Short string `json:"short"`
}

// AssetData identifies the asset a version is published under. The name is
// the only field the naming-extension step mutates.
type AssetData struct {
	Name string `json:"name"`
}

// AssetVersionData carries version-level fields shared by every component
// of one instance.
type AssetVersionData struct {
	Version          int               `json:"version"`
	Comment          string            `json:"comment,omitempty"`
	StatusName       string            `json:"status_name,omitempty"`
	CustomAttributes map[string]string `json:"custom_attributes,omitempty"`
}

// ComponentData holds the component name and its metadata map. The
// metadata values are already serialized strings; structured payloads are
// stored JSON-encoded under the "ftr_meta" key.
type ComponentData struct {
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ComponentItem is the unit handed to the upload integration. Every item
// except "_src" shadows must carry a component path resolved from its
// source representation.
type ComponentItem struct {
	AssetType     AssetTypeData    `json:"assettype_data"`
	Asset         AssetData        `json:"asset_data"`
	AssetVersion  AssetVersionData `json:"assetversion_data"`
	Component     ComponentData    `json:"component_data"`
	ComponentPath string           `json:"component_path,omitempty"`
	LocationName  string           `json:"component_location_name,omitempty"`
	Thumbnail     bool             `json:"thumbnail"`
	Overwrite     bool             `json:"component_overwrite"`
}

// Clone returns a deep copy of the item. Assembly mutates asset names and
// metadata after copying, so the maps must never be shared.
func (c ComponentItem) Clone() ComponentItem {
	clone := c
	if c.AssetVersion.CustomAttributes != nil {
		attrs := make(map[string]string, len(c.AssetVersion.CustomAttributes))
		for key, value := range c.AssetVersion.CustomAttributes {
			attrs[key] = value
		}
		clone.AssetVersion.CustomAttributes = attrs
	}
	if c.Component.Metadata != nil {
		meta := make(map[string]string, len(c.Component.Metadata))
		for key, value := range c.Component.Metadata {
			meta[key] = value
		}
		clone.Component.Metadata = meta
	}
	return clone
}
