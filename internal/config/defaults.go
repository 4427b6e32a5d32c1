package config

const (
	defaultLogDir            = "~/.local/share/trackpub/logs"
	defaultJournalDir        = "~/.local/share/trackpub"
	defaultServerLocation    = "ftrack.server"
	defaultUnmanagedLocation = "ftrack.unmanaged"
	defaultFFprobeBinary     = "ffprobe"
	defaultFFprobeTimeout    = 30
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:     defaultLogDir,
			JournalDir: defaultJournalDir,
		},
		Locations: Locations{
			Server:    defaultServerLocation,
			Unmanaged: defaultUnmanagedLocation,
		},
		Review: Review{
			KeepFirstProductName: true,
		},
		FFprobe: FFprobe{
			Binary:         defaultFFprobeBinary,
			TimeoutSeconds: defaultFFprobeTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		AssetTypes: defaultAssetTypes(),
	}
}

func defaultAssetTypes() []AssetTypeMapping {
	return []AssetTypeMapping{
		{ProductType: "camera", AssetType: "cam"},
		{ProductType: "look", AssetType: "look"},
		{ProductType: "mayaAscii", AssetType: "scene"},
		{ProductType: "model", AssetType: "geo"},
		{ProductType: "rig", AssetType: "rig"},
		{ProductType: "setdress", AssetType: "setdress"},
		{ProductType: "pointcache", AssetType: "cache"},
		{ProductType: "render", AssetType: "render"},
		{ProductType: "prerender", AssetType: "render"},
		{ProductType: "render2d", AssetType: "render"},
		{ProductType: "nukescript", AssetType: "comp"},
		{ProductType: "write", AssetType: "render"},
		{ProductType: "review", AssetType: "mov"},
		{ProductType: "plate", AssetType: "img"},
		{ProductType: "audio", AssetType: "audio"},
		{ProductType: "workfile", AssetType: "scene"},
		{ProductType: "animation", AssetType: "cache"},
		{ProductType: "image", AssetType: "img"},
		{ProductType: "reference", AssetType: "reference"},
	}
}
