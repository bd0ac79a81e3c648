// Package model contains domain models passed between pipeline stages.
package model

// RatingUnknown marks a rating that was absent or unparseable.
// It loses to every parsed rating and is written out as an empty string.
const RatingUnknown = -1

// RawRow is one row of the source dataset keyed by source column name.
// Column names vary across sources; the resolve package maps them to
// logical fields.
type RawRow map[string]string

// Record is the canonical player entity produced by normalization.
type Record struct {
	Name     string // identity key for deduplication, trimmed, case-sensitive
	Rating   int    // parsed skill rating, RatingUnknown when unparseable
	Position string // single primary position token
}

// Enriched is a Record extended with the derived reference URLs.
// URL fields are fill-only: once non-empty they are never recomputed.
type Enriched struct {
	Record
	ImageURL  string
	FutbinURL string
}
