// Package publish defines the data model shared by the component assembly
// pipeline: publish instances, their representations, and the component
// records handed to the upload integration.
//
// Key types:
//   - Instance: one publish instance plus its pipeline context
//   - Representation: a single published output unit (file sequence or clip)
//   - ComponentItem: the target service's unit of uploadable content
//
// Instances and representations are immutable inputs; component items are
// built fresh per assembly call and deep-copied before any mutation so
// sibling components never alias each other.
package publish
