package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"trackpub/internal/config"
	"trackpub/internal/media"
	"trackpub/internal/media/ffprobe"
	"trackpub/internal/profiles"
	"trackpub/internal/publish"
)

// Version is the integration version reported in component metadata when
// the integration_version key is allow-listed.
const Version = "1.2.0"

const (
	tagFarmPublish = "publish_on_farm"
	tagThumbnail   = "thumbnail"
	tagReview      = "ftrackreview"
	tagDelete      = "delete"

	componentThumbnail   = "thumbnail"
	componentReviewImage = "ftrackreview-image"
	componentReviewMP4   = "ftrackreview-mp4"

	custAttrVersionID   = "source_version_id"
	custAttrVersionPath = "source_version_path"
)

// StreamProber exposes best-effort media introspection. Implementations
// return every stream found in the container; errors are treated by the
// assembler as "no streams found".
type StreamProber interface {
	Streams(ctx context.Context, path string) ([]ffprobe.Stream, error)
}

// PathResolver resolves and validates the on-disk path of a
// representation. An empty return value means the representation has no
// usable file.
type PathResolver interface {
	ResolvePublishedPath(instance *publish.Instance, repre publish.Representation, requirePublished bool) string
}

// Assembler builds component lists for publish instances. It holds no
// per-instance state; concurrent Assemble calls are independent.
type Assembler struct {
	cfg       *config.Config
	logger    *slog.Logger
	prober    StreamProber
	resolver  PathResolver
	videoExts media.ExtensionSet
	imageExts media.ExtensionSet
}

// Option customizes Assembler construction.
type Option func(*Assembler)

// WithProber overrides the default ffprobe-backed stream prober.
func WithProber(prober StreamProber) Option {
	return func(a *Assembler) {
		if prober != nil {
			a.prober = prober
		}
	}
}

// WithResolver overrides the default filesystem path resolver.
func WithResolver(resolver PathResolver) Option {
	return func(a *Assembler) {
		if resolver != nil {
			a.resolver = resolver
		}
	}
}

// New constructs an Assembler from configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	assembler := &Assembler{
		cfg:       cfg,
		logger:    logger.With("component", "assemble"),
		prober:    newFFprobeProber(cfg),
		resolver:  fileResolver{},
		videoExts: media.NewExtensionSet(cfg.Extensions.Video),
		imageExts: media.NewExtensionSet(cfg.Extensions.Image),
	}
	for _, opt := range opts {
		opt(assembler)
	}
	return assembler
}

// Assemble produces the ordered component list for one publish instance.
// Instances without representations yield an empty list; a missing version
// is the only fatal input error.
func (a *Assembler) Assemble(ctx context.Context, instance *publish.Instance) ([]publish.ComponentItem, error) {
	if len(instance.Representations) == 0 {
		a.logger.Info("skipping instance without representations", "product", instance.ProductName)
		return nil, nil
	}
	if instance.Version == nil {
		return nil, publish.Wrap(publish.ErrValidation, "assemble", instance.ProductName, "instance version not set", nil)
	}

	assetType := instance.AssetType
	if assetType == "" {
		assetType = a.cfg.AssetTypeFor(instance.ProductType)
	}
	statusName := a.statusName(instance)
	base := a.baseComponentItem(instance, *instance.Version, assetType, statusName)

	buckets := a.classify(instance)
	multipleSynced := a.multipleSyncedThumbnails(buckets)

	var components []*publish.ComponentItem

	// Thumbnail components and their bindings.
	var thumbnailItem *publish.ComponentItem
	var bindings []*thumbnailBinding
	for _, repre := range buckets.thumbnails {
		reprePath := a.resolver.ResolvePublishedPath(instance, repre, false)
		if reprePath == "" {
			a.logger.Debug("published path is not set or source was removed", "representation", repre.Name)
			continue
		}

		item := base.Clone()
		item.ComponentPath = reprePath
		name := componentReviewImage
		if len(buckets.reviews) > 0 {
			name = componentThumbnail
		}
		item.Component = publish.ComponentData{
			Name:     name,
			Metadata: a.imageMetadata(ctx, repre, reprePath),
		}
		item.Thumbnail = true
		item.LocationName = a.cfg.Locations.Server
		thumbnailItem = &item

		binding := &thumbnailBinding{syncKey: repre.OutputName, repre: repre, item: &item}
		if !repre.HasTag(tagDelete) {
			src := a.makeSrcComponent(ctx, instance, repre, item.Clone())
			// The shadow enters the list now; a later rename through the
			// binding must still reach it, so both share one pointer.
			components = append(components, &src)
			binding.src = &src
		}
		bindings = append(bindings, binding)
	}

	// Video reviews win over image reviews.
	reviews := buckets.reviews
	if buckets.hasMovieReview {
		var filtered []publish.Representation
		for _, repre := range reviews {
			if a.isVideo(repre) {
				filtered = append(filtered, repre)
			} else {
				a.logger.Debug("movie review takes priority", "representation", repre.Name)
			}
		}
		reviews = filtered
	}

	multipleReviewable := len(reviews) > 1
	var extendedName string
	for index, repre := range reviews {
		item := base.Clone()
		reviewItem := &item

		binding := a.matchThumbnail(repre, bindings, multipleSynced)

		// Renaming happens before the bound items are appended because the
		// appended entries are copies.
		extendedName = a.extendedComponentName(base, repre, index)
		if multipleReviewable && extendedName != "" {
			reviewItem.Asset.Name = extendedName
			if binding != nil {
				if binding.item != nil {
					binding.item.Asset.Name = extendedName
				}
				if binding.src != nil {
					binding.src.Asset.Name = extendedName
				}
			}
		}

		if binding != nil {
			if binding.item != nil {
				clone := binding.item.Clone()
				components = append(components, &clone)
			}
			if binding.src != nil {
				clone := binding.src.Clone()
				components = append(components, &clone)
			}
		}

		reprePath := a.resolver.ResolvePublishedPath(instance, repre, false)
		var componentName string
		var metadata map[string]string
		if a.isVideo(repre) {
			componentName = componentReviewMP4
			metadata = a.videoMetadata(ctx, instance, repre, reprePath, true)
		} else {
			componentName = componentReviewImage
			metadata = a.imageMetadata(ctx, repre, reprePath)
			reviewItem.Thumbnail = true
		}
		reviewItem.ComponentPath = reprePath
		reviewItem.Component = publish.ComponentData{Name: componentName, Metadata: metadata}
		reviewItem.LocationName = a.cfg.Locations.Server

		if !repre.HasTag(tagDelete) {
			src := a.makeSrcComponent(ctx, instance, repre, reviewItem.Clone())
			components = append(components, &src)
		}
		components = append(components, reviewItem)

		if a.cfg.Review.UploadWithOriginName {
			origin := reviewItem.Clone()
			filename := filepath.Base(reprePath)
			origin.Component.Name = strings.TrimSuffix(filename, filepath.Ext(filename))
			components = append(components, &origin)
		}
	}

	// Static image fallback when no reviewable survived.
	if len(reviews) == 0 && thumbnailItem != nil {
		components = append(components, thumbnailItem)
	}

	for _, repre := range buckets.others {
		publishedPath := a.resolver.ResolvePublishedPath(instance, repre, true)
		if publishedPath == "" {
			continue
		}

		item := base.Clone()
		otherItem := &item
		if multipleReviewable && !a.cfg.Review.KeepFirstProductName && extendedName != "" {
			otherItem.Asset.Name = extendedName
		}
		otherItem.ComponentPath = publishedPath
		otherItem.Component = publish.ComponentData{
			Name:     repre.Name,
			Metadata: a.componentMetadata(ctx, instance, repre, publishedPath, false),
		}
		otherItem.LocationName = a.cfg.Locations.Unmanaged
		components = append(components, otherItem)
	}

	out := make([]publish.ComponentItem, len(components))
	for i, item := range components {
		out[i] = *item
	}
	a.logger.Debug("assembled components", "product", instance.ProductName, "count", len(out))
	return out, nil
}

// makeSrcComponent turns a copy of a component into its "_src" shadow:
// unmanaged location, thumbnail flag cleared, non-review metadata.
func (a *Assembler) makeSrcComponent(ctx context.Context, instance *publish.Instance, repre publish.Representation, item publish.ComponentItem) publish.ComponentItem {
	item.Thumbnail = false
	item.LocationName = a.cfg.Locations.Unmanaged
	item.Component.Name += "_src"
	item.Component.Metadata = a.componentMetadata(ctx, instance, repre, item.ComponentPath, false)
	return item
}

// extendedComponentName returns the disambiguated asset name for the
// reviewable at the given index, or "" when the first product name is kept.
func (a *Assembler) extendedComponentName(base publish.ComponentItem, repre publish.Representation, index int) string {
	if a.cfg.Review.KeepFirstProductName && index == 0 {
		return ""
	}
	return base.Asset.Name + "_" + repre.Name
}

func (a *Assembler) baseComponentItem(instance *publish.Instance, versionNumber int, assetType, statusName string) publish.ComponentItem {
	attrs := map[string]string{}
	if instance.VersionEntity != nil {
		versionPath := strings.Join([]string{
			instance.FolderPath,
			instance.ProductName,
			fmt.Sprintf("v%03d", instance.VersionEntity.Version),
		}, "/")
		attrs[custAttrVersionID] = instance.VersionEntity.ID
		attrs[custAttrVersionPath] = versionPath
	}
	return publish.ComponentItem{
		AssetType: publish.AssetTypeData{Short: assetType},
		Asset:     publish.AssetData{Name: instance.ProductName},
		AssetVersion: publish.AssetVersionData{
			Version:          versionNumber,
			Comment:          instance.Context.Comment,
			StatusName:       statusName,
			CustomAttributes: attrs,
		},
	}
}

func (a *Assembler) statusName(instance *publish.Instance) string {
	if len(a.cfg.StatusProfiles) == 0 {
		return ""
	}
	profile := profiles.Filter(a.cfg.StatusProfiles, profiles.Criteria{
		ProductType: instance.ProductType,
		HostName:    instance.Context.HostName,
		TaskType:    instance.TaskType,
	})
	if profile == nil {
		return ""
	}
	return profile.Status
}

func (a *Assembler) isVideo(repre publish.Representation) bool {
	return a.videoExts.Contains(repre.Ext)
}

func (a *Assembler) isImage(repre publish.Representation) bool {
	return a.imageExts.Contains(repre.Ext)
}
