// Package resolve maps variable source column names onto logical fields.
//
// Source dumps disagree on column naming: the same logical field may be
// called short_name, name, player_name or long_name depending on where the
// dataset came from. Each logical field therefore carries an ordered list
// of candidate keys; earlier keys win when several are present.
package resolve

import (
	"strings"

	"github.com/okian/roster/internal/domain/model"
)

// Candidate key sets for the logical fields. Order is part of the
// contract: the first key with a non-empty trimmed value wins.
var (
	NameKeys     = []string{"short_name", "name", "player_name", "long_name"}
	RatingKeys   = []string{"overall", "overall_rating", "rating", "ovr"}
	PositionKeys = []string{"player_positions", "positions", "best_position", "position"}
)

// Field tries keys in priority order and returns the first non-empty
// trimmed value found in row, or def when none match. Absence is not an
// error; it is the default-value outcome.
func Field(row model.RawRow, keys []string, def string) string {
	for _, k := range keys {
		v, ok := row[k]
		if !ok {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}
