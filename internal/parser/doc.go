// Package parser turns raw model output into a structured article.
// The model returns a single JSON object with fixed slot keys (nine
// section slots, six FAQ slots, four PAA slots, three takeaway slots);
// the parser extracts that object from surrounding prose or code fences,
// fills the slots in order, and drops blanks.
package parser
