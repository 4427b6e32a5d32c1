package assemble

import "trackpub/internal/publish"

// buckets partitions an instance's representations by role. Order within
// each bucket follows input order; no representation lands in two buckets.
type buckets struct {
	thumbnails []publish.Representation
	reviews    []publish.Representation
	others     []publish.Representation
	// hasMovieReview is set when any review representation is a video;
	// image reviews are dropped later when it is.
	hasMovieReview bool
}

func (a *Assembler) classify(instance *publish.Instance) buckets {
	var result buckets
	for _, repre := range instance.Representations {
		// Farm-deferred representations are published elsewhere.
		if repre.HasTag(tagFarmPublish) {
			continue
		}

		reprePath := a.resolver.ResolvePublishedPath(instance, repre, false)
		switch {
		case repre.Thumbnail || repre.HasTag(tagThumbnail):
			result.thumbnails = append(result.thumbnails, repre)
		case repre.HasTag(tagReview) && reprePath != "":
			result.reviews = append(result.reviews, repre)
			if a.isVideo(repre) {
				result.hasMovieReview = true
			}
		default:
			result.others = append(result.others, repre)
		}
	}
	return result
}

// multipleSyncedThumbnails reports whether more than one thumbnail-review
// output-name correlation exists instance-wide. The count includes every
// matching pair, so one thumbnail correlated with two reviews also enables
// multi-sync mode.
func (a *Assembler) multipleSyncedThumbnails(b buckets) bool {
	matched := 0
	for _, review := range b.reviews {
		if review.OutputName == "" {
			continue
		}
		for _, thumb := range b.thumbnails {
			if thumb.OutputName == "" {
				continue
			}
			// Output names can also land in review tags during
			// intermediate file creation.
			if thumb.OutputName == review.OutputName || review.HasTag(thumb.OutputName) {
				matched++
			}
		}
	}
	if matched > 1 {
		a.logger.Debug("multiple synchronized output names detected", "matches", matched)
	}
	return matched > 1
}
