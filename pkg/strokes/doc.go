// Package strokes decodes submitted pen strokes and estimates line-quality
// metrics from them.
//
// Strokes arrive as an optional JSON string alongside an uploaded drawing.
// Decoding is best-effort: [Parse] never fails, but its [ParseResult] records
// whether strokes were absent, parsed, or replaced by an empty list because
// the payload could not be decoded. [Estimate] turns a stroke batch into
// [Metrics].
//
// # Wire format
//
// The payload is a JSON array of stroke objects:
//
//	[
//	  {"points": [[0, 0], [1, 2], [3, 4, 16.5]]},
//	  {"points": [{"x": 10, "y": 12, "t": 40}]}
//	]
//
// Points may be [x, y], [x, y, t] or {"x", "y", "t"} objects. Records without
// a "points" field are kept as empty strokes so the batch length still
// reflects what the client sent.
package strokes
