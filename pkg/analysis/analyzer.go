package analysis

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/waterants/sketchcoach/pkg/errors"
	"github.com/waterants/sketchcoach/pkg/strokes"
)

// FocusArea is the coarse skill the learner should work on next.
type FocusArea string

const (
	// FocusLineConfidence is chosen when strokes are sparse or shaky
	// (wobble above 0.5), including when no strokes were sent.
	FocusLineConfidence FocusArea = "line confidence"

	// FocusShapeAccuracy is chosen once line quality is good enough to
	// work on proportions (wobble at or below 0.5).
	FocusShapeAccuracy FocusArea = "shape accuracy"
)

// wobbleThreshold splits focus areas. The comparison is strict.
const wobbleThreshold = 0.5

// FocusFor classifies stroke metrics into a focus area.
func FocusFor(m strokes.Metrics) FocusArea {
	if m.Wobble > wobbleThreshold {
		return FocusLineConfidence
	}
	return FocusShapeAccuracy
}

// StrokeSummary records how the submitted strokes were interpreted.
type StrokeSummary struct {
	Status  strokes.Status `json:"status"`
	Count   int            `json:"count"`
	Points  int            `json:"points"`
	Skipped int            `json:"skipped,omitempty"`

	// BadPoints counts unreadable samples. They still count towards Points.
	BadPoints int `json:"bad_points,omitempty"`

	Reason string `json:"reason,omitempty"`
}

// ImageInfo describes the uploaded image as it was received.
type ImageInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Result is the analysis of one submission. It is never mutated after
// Analyze returns.
type Result struct {
	ImageScore    float64         `json:"image_score"`
	StrokeMetrics strokes.Metrics `json:"stroke_metrics"`
	FocusArea     FocusArea       `json:"focus_area"`
	Strokes       StrokeSummary   `json:"strokes"`
	Image         ImageInfo       `json:"image"`
}

// Analyzer combines image scoring and stroke estimation. It holds no
// per-request state and is safe for concurrent use.
type Analyzer struct {
	Scorer       ImageScorer
	MaxDimension int

	// MaxPixels rejects uploads whose header claims more pixels; 0 disables it.
	MaxPixels int

	Logger *log.Logger
}

// NewAnalyzer creates an analyzer. A nil scorer selects PlaceholderScorer.
// MaxPixels starts at DefaultMaxPixels.
func NewAnalyzer(scorer ImageScorer, maxDimension int, logger *log.Logger) *Analyzer {
	if scorer == nil {
		scorer = PlaceholderScorer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{
		Scorer:       scorer,
		MaxDimension: maxDimension,
		MaxPixels:    DefaultMaxPixels,
		Logger:       logger,
	}
}

// Analyze decodes img, scores it and combines the score with metrics from
// strokesJSON. strokesJSON may be empty; an unparseable value is treated
// as an empty stroke batch. Decode failures abort the analysis.
func (a *Analyzer) Analyze(ctx context.Context, img io.Reader, strokesJSON string) (*Result, error) {
	decoded, err := Decode(img, a.MaxDimension, a.MaxPixels)
	if err != nil {
		return nil, err
	}

	score, err := a.Scorer.Score(ctx, decoded.Image)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "score image with %s", a.Scorer.Name())
	}
	if math.IsNaN(score) || score < 0 || score > 1 {
		return nil, errors.New(errors.ErrCodeInternal, "scorer %s returned %v, outside [0,1]", a.Scorer.Name(), score)
	}

	parsed := strokes.Parse(strokesJSON)
	if parsed.Status == strokes.StatusFallback {
		a.Logger.Warn("ignoring unparseable strokes", "err", parsed.Err)
	}
	metrics := strokes.Estimate(parsed.Strokes)

	summary := StrokeSummary{
		Status:    parsed.Status,
		Count:     len(parsed.Strokes),
		Points:    parsed.Points(),
		Skipped:   parsed.Skipped,
		BadPoints: parsed.BadPoints,
	}
	if parsed.Err != nil {
		summary.Reason = parsed.Err.Error()
	}

	return &Result{
		ImageScore:    score,
		StrokeMetrics: metrics,
		FocusArea:     FocusFor(metrics),
		Strokes:       summary,
		Image: ImageInfo{
			Format: decoded.Format,
			Width:  decoded.Width,
			Height: decoded.Height,
		},
	}, nil
}
