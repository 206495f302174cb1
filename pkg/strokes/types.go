package strokes

import (
	"encoding/json"
	"fmt"
)

// Point is a single pen sample. T is the client timestamp in milliseconds
// when one was supplied.
type Point struct {
	X float64  `json:"x"`
	Y float64  `json:"y"`
	T *float64 `json:"t,omitempty"`
}

// UnmarshalJSON accepts [x, y], [x, y, t] and {"x":..,"y":..,"t":..}.
func (p *Point) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err == nil {
		if len(coords) < 2 {
			return fmt.Errorf("point needs at least 2 coordinates, got %d", len(coords))
		}
		p.X, p.Y, p.T = coords[0], coords[1], nil
		if len(coords) > 2 {
			t := coords[2]
			p.T = &t
		}
		return nil
	}

	var obj struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
		T *float64 `json:"t"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid point: %w", err)
	}
	if obj.X == nil || obj.Y == nil {
		return fmt.Errorf("point object needs x and y")
	}
	p.X, p.Y, p.T = *obj.X, *obj.Y, obj.T
	return nil
}

// Stroke is one continuous pen-down movement.
type Stroke struct {
	Points []Point `json:"points"`
}

// Len returns the number of samples in the stroke.
func (s Stroke) Len() int { return len(s.Points) }

// Metrics summarises line quality for a stroke batch. Both values lie in [0,1].
type Metrics struct {
	// Wobble is an inverse measure of point density. Higher means shakier.
	Wobble float64 `json:"wobble"`

	// SpeedVariation is meant to capture drawing-speed consistency.
	SpeedVariation float64 `json:"speed_variation"`
}
