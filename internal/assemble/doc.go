// Package assemble converts a publish instance into the ordered component
// list uploaded to the review/asset-tracking service.
//
// The pipeline runs in four steps per instance:
//  1. classify representations into thumbnail, review, and other buckets
//  2. build thumbnail components plus their "_src" shadows, keeping a
//     transient binding per thumbnail keyed by output name
//  3. build review components, joining each review to its thumbnail
//     binding and applying extended naming when the instance yields more
//     than one reviewable
//  4. append the remaining representations as unmanaged components
//
// Media metadata (resolution, fps, frame range, codec) is extracted per
// component, probing the file with ffprobe only when declared values are
// absent. Probe and parse failures degrade to partial metadata; the only
// fatal input error is a missing instance version.
package assemble
