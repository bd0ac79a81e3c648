// Package rank defines the ranking store interface and errors.
//
// Deduplication and ranking share one store: Upsert merges rows by exact
// name keeping the highest attested rating, TopN reads the merged set in
// deterministic order. Because the merge is a commutative max, row order
// never affects the final ranking.
package rank

import (
	"context"

	"github.com/okian/roster/internal/domain/model"
)

// Store provides read/write access to the merged ranking state.
type Store interface {
	// Upsert merges a record into the store. A record whose name is
	// already present survives only if its rating is strictly higher
	// than the incumbent's; on a rating tie the incumbent keeps its
	// position. Returns true if the store changed.
	Upsert(ctx context.Context, rec model.Record) bool

	// TopN returns up to n records ordered by rating desc, name asc.
	// The unknown-rating sentinel sorts below every parsed rating.
	// Returns ErrInvalidLimit when n is negative.
	TopN(ctx context.Context, n int) ([]model.Record, error)

	// Count returns the number of unique names tracked.
	Count(ctx context.Context) int
}
