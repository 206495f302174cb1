// Package feedback turns an analysis into text a learner can act on.
package feedback

import (
	"fmt"
	"math"

	"github.com/waterants/sketchcoach/pkg/analysis"
)

// Result is the feedback for one submission.
type Result struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Generator maps an analysis to feedback. Implementations must be pure:
// the same analysis always yields the same result.
type Generator interface {
	Generate(a analysis.Result) Result
}

// tips holds the advice shown for each focus area.
var tips = map[analysis.FocusArea]string{
	analysis.FocusLineConfidence: "Work on line confidence: draw each line in one smooth motion from the shoulder instead of several short, hesitant strokes.",
	analysis.FocusShapeAccuracy:  "Work on shape accuracy: check proportions and angles against the prompt before committing to darker lines.",
}

const genericTip = "Keep practising: compare your drawing with the prompt and note one thing to change next time."

// TemplateGenerator reports the image score as the feedback score and picks
// a canned tip for the focus area.
type TemplateGenerator struct{}

// Generate implements Generator.
func (TemplateGenerator) Generate(a analysis.Result) Result {
	tip, ok := tips[a.FocusArea]
	if !ok {
		tip = genericTip
	}
	pct := int(math.Round(a.ImageScore * 100))
	return Result{
		Text:  fmt.Sprintf("%s Your drawing matched the prompt at %d%%. %s", opener(pct), pct, tip),
		Score: a.ImageScore,
	}
}

func opener(pct int) string {
	switch {
	case pct >= 85:
		return "Excellent work!"
	case pct >= 60:
		return "Nice effort!"
	default:
		return "Good start!"
	}
}

var _ Generator = TemplateGenerator{}
