package assemble

import "trackpub/internal/publish"

// thumbnailBinding correlates one thumbnail representation with the
// component items built from it. Bindings live only for the duration of a
// single assembly call.
type thumbnailBinding struct {
	syncKey string
	repre   publish.Representation
	item    *publish.ComponentItem
	src     *publish.ComponentItem
}

// matches reports whether this binding correlates with the review
// representation. A binding without a sync key never matches; it can only
// be chosen through the explicit fallback paths.
func (b *thumbnailBinding) matches(review publish.Representation) bool {
	if b.syncKey == "" {
		return false
	}
	return b.syncKey == review.OutputName || review.HasTag(b.syncKey)
}

// matchThumbnail returns the thumbnail binding for a review
// representation. Without multi-sync mode the first binding is the
// single-thumbnail default. In multi-sync mode an unmatched review falls
// back to the first binding with a warning rather than dropping the
// review.
func (a *Assembler) matchThumbnail(review publish.Representation, bindings []*thumbnailBinding, multipleSynced bool) *thumbnailBinding {
	if len(bindings) == 0 {
		return nil
	}
	if !multipleSynced {
		return bindings[0]
	}

	for _, binding := range bindings {
		if binding.matches(review) {
			return binding
		}
	}

	a.logger.Warn("no matching thumbnail binding for output name",
		"output_name", review.OutputName,
		"representation", review.Name,
	)
	return bindings[0]
}
