package rank

import (
	"context"
	"sort"

	"github.com/okian/roster/internal/domain/model"
)

// Option applies a configuration option to the in-memory store.
type Option func(*memStore)

// WithSizeHint pre-sizes the store for an expected number of unique names.
func WithSizeHint(n int) Option {
	return func(s *memStore) {
		if n > 0 {
			s.sizeHint = n
		}
	}
}

// memStore implements Store with a plain map. The pipeline is a
// single-threaded batch, so no locking is needed; the whole input is
// merged before the first read.
type memStore struct {
	sizeHint int
	best     map[string]model.Record
}

// NewMemStore creates an in-memory ranking store.
func NewMemStore(opts ...Option) Store {
	s := &memStore{}

	for _, opt := range opts {
		opt(s)
	}

	s.best = make(map[string]model.Record, s.sizeHint)
	return s
}

// Upsert merges rec into the store, keeping the highest rating per name.
func (s *memStore) Upsert(_ context.Context, rec model.Record) bool {
	cur, ok := s.best[rec.Name]
	if ok && rec.Rating <= cur.Rating {
		return false
	}
	s.best[rec.Name] = rec
	return true
}

// TopN returns up to n records ordered by rating desc, then name asc.
func (s *memStore) TopN(_ context.Context, n int) ([]model.Record, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}

	out := make([]model.Record, 0, len(s.best))
	for _, rec := range s.best {
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})

	if n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// Count returns the number of unique names tracked.
func (s *memStore) Count(_ context.Context) int {
	return len(s.best)
}
