package strokes

import "math"

const (
	// wobbleReference is the point count at which wobble drops below 1.0.
	wobbleReference = 300.0

	// PlaceholderSpeedVariation is reported for any non-empty batch until
	// timestamps are used.
	PlaceholderSpeedVariation = 0.8
)

// Worst is reported when there are no strokes to measure.
var Worst = Metrics{Wobble: 1.0, SpeedVariation: 1.0}

// TotalPoints sums the sample counts of all strokes.
func TotalPoints(strokes []Stroke) int {
	total := 0
	for _, s := range strokes {
		total += s.Len()
	}
	return total
}

// Estimate computes line-quality metrics for a stroke batch.
//
// An empty batch yields Worst. Otherwise wobble is 300/points clamped to
// 1.0, so it stays saturated up to 300 points and decays towards 0 beyond
// that. Empty strokes count as zero points but still make the batch
// non-empty.
func Estimate(strokes []Stroke) Metrics {
	if len(strokes) == 0 {
		return Worst
	}
	total := TotalPoints(strokes)
	return Metrics{
		Wobble:         math.Min(1.0, wobbleReference/float64(max(total, 1))),
		SpeedVariation: PlaceholderSpeedVariation,
	}
}
