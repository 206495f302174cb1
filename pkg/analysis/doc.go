// Package analysis turns an uploaded drawing and its optional strokes into
// a [Result].
//
// An [Analyzer] decodes the image with [Decode], scores it with an
// [ImageScorer], estimates stroke metrics with the strokes package, and
// classifies the focus area the learner should work on next.
//
// # Scorers
//
// ImageScorer is the boundary where real similarity models plug in. Any
// implementation must be deterministic for a given image and return a value
// in [0,1]; the analyzer rejects anything else. [PlaceholderScorer] returns a
// fixed score and is the default.
//
// # Focus Areas
//
// The focus area is chosen by thresholding stroke wobble: strictly above 0.5
// is [FocusLineConfidence], anything else is [FocusShapeAccuracy].
package analysis
