package analysis

import (
	"context"
	"image"
)

// ImageScorer rates how closely a drawing matches its prompt.
//
// Score must be deterministic for a given image and return a value in [0,1].
// Name identifies the scorer and its version; it is part of the analysis
// cache key, so change it whenever scoring behaviour changes.
type ImageScorer interface {
	Name() string
	Score(ctx context.Context, img image.Image) (float64, error)
}

// PlaceholderScore is what PlaceholderScorer reports for every image.
const PlaceholderScore = 0.72

// PlaceholderScorer returns PlaceholderScore regardless of content.
type PlaceholderScorer struct{}

// Name implements ImageScorer.
func (PlaceholderScorer) Name() string { return "placeholder/v1" }

// Score implements ImageScorer.
func (PlaceholderScorer) Score(context.Context, image.Image) (float64, error) {
	return PlaceholderScore, nil
}

var _ ImageScorer = PlaceholderScorer{}
