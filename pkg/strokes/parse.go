package strokes

import (
	"encoding/json"
	"fmt"
)

// Status describes how a strokes payload was interpreted.
type Status string

const (
	// StatusAbsent means no strokes were submitted.
	StatusAbsent Status = "absent"

	// StatusParsed means the payload decoded as a stroke array.
	StatusParsed Status = "parsed"

	// StatusFallback means the payload could not be decoded and an empty
	// batch was substituted.
	StatusFallback Status = "fallback"
)

// ParseResult is the outcome of decoding a strokes payload.
type ParseResult struct {
	Strokes []Stroke
	Status  Status

	// Skipped counts array elements that were not usable stroke records.
	// They remain in Strokes as empty strokes.
	Skipped int

	// BadPoints counts samples inside a points array that could not be
	// read. They are kept as zero-valued points so every sample counts.
	BadPoints int

	// Err holds the decode error when Status is StatusFallback.
	Err error
}

// Points returns the total number of samples across all strokes.
func (r ParseResult) Points() int {
	return TotalPoints(r.Strokes)
}

// Parse decodes raw as a JSON stroke array. It never fails: an empty raw
// string yields StatusAbsent, and a payload that is not valid JSON or not an
// array yields StatusFallback with an empty batch.
func Parse(raw string) ParseResult {
	if raw == "" {
		return ParseResult{Strokes: []Stroke{}, Status: StatusAbsent}
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return ParseResult{
			Strokes: []Stroke{},
			Status:  StatusFallback,
			Err:     fmt.Errorf("decode strokes: %w", err),
		}
	}

	result := ParseResult{
		Strokes: make([]Stroke, 0, len(records)),
		Status:  StatusParsed,
	}
	for _, rec := range records {
		s, bad, ok := decodeRecord(rec)
		if !ok {
			result.Skipped++
		}
		result.BadPoints += bad
		result.Strokes = append(result.Strokes, s)
	}
	return result
}

// decodeRecord decodes a single stroke object. Records that are not objects
// or whose points field is missing or not an array come back empty. Every
// element of a points array counts as a sample; elements that are not valid
// points become zero-valued and are reported in bad.
func decodeRecord(rec json.RawMessage) (s Stroke, bad int, ok bool) {
	var obj struct {
		Points []json.RawMessage `json:"points"`
	}
	if err := json.Unmarshal(rec, &obj); err != nil || obj.Points == nil {
		return Stroke{}, 0, false
	}

	s.Points = make([]Point, len(obj.Points))
	for i, raw := range obj.Points {
		if err := json.Unmarshal(raw, &s.Points[i]); err != nil {
			s.Points[i] = Point{}
			bad++
		}
	}
	return s, bad, true
}
