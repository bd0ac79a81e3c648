// Package normalize converts raw source rows into canonical records.
package normalize

import (
	"strconv"
	"strings"

	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/resolve"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithNameKeys overrides the candidate keys for the name field.
func WithNameKeys(keys []string) Option {
	return func(n *Normalizer) {
		if len(keys) > 0 {
			n.nameKeys = keys
		}
	}
}

// WithRatingKeys overrides the candidate keys for the rating field.
func WithRatingKeys(keys []string) Option {
	return func(n *Normalizer) {
		if len(keys) > 0 {
			n.ratingKeys = keys
		}
	}
}

// WithPositionKeys overrides the candidate keys for the position field.
func WithPositionKeys(keys []string) Option {
	return func(n *Normalizer) {
		if len(keys) > 0 {
			n.positionKeys = keys
		}
	}
}

// Normalizer turns RawRows into Records. The zero-value candidate key
// sets are the canonical ones from the resolve package.
type Normalizer struct {
	nameKeys     []string
	ratingKeys   []string
	positionKeys []string
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		nameKeys:     resolve.NameKeys,
		ratingKeys:   resolve.RatingKeys,
		positionKeys: resolve.PositionKeys,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Record normalizes a raw row. The second return is false when the row
// has no resolvable name; such rows are dropped silently, never errored.
func (n *Normalizer) Record(row model.RawRow) (model.Record, bool) {
	name := resolve.Field(row, n.nameKeys, "")
	if name == "" {
		return model.Record{}, false
	}

	return model.Record{
		Name:     name,
		Rating:   ParseRating(resolve.Field(row, n.ratingKeys, "")),
		Position: FirstPosition(resolve.Field(row, n.positionKeys, "")),
	}, true
}

// ParseRating parses a rating string leniently. Fractional values are
// accepted and truncated toward zero ("86.0" -> 86). Anything that does
// not parse as a number yields model.RatingUnknown; parse failure is
// absorbed, never surfaced.
func ParseRating(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return model.RatingUnknown
	}
	return int(f)
}

// FirstPosition reduces a comma-separated position list to its first
// token, trimmed. A value without a comma is returned as-is after
// trimming.
func FirstPosition(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
