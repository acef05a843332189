package factor

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Query narrows a factor lookup. Empty Region matches any region; zero
// Year matches any year. The governance gate (approved + active) is applied
// by every Store implementation regardless of the query.
type Query struct {
	ActivityKey string
	Region      string
	Year        int
}

// Store is the single persistence dependency of the resolver. Results are
// ordered by year descending so the latest vintage comes first.
// Implementations backed by a remote database may block; the context
// carries the caller's deadline.
type Store interface {
	Find(ctx context.Context, q Query) ([]*EmissionFactor, error)
}

// MemStore is an in-memory Store used by tests, the cmd binaries, and the
// embedded seed data. Safe for concurrent reads; Put is intended for setup
// only.
type MemStore struct {
	mu      sync.RWMutex
	factors []*EmissionFactor
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Put adds factors to the store.
func (s *MemStore) Put(factors ...*EmissionFactor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factors = append(s.factors, factors...)
}

// Find returns eligible factors matching the query, latest year first.
func (s *MemStore) Find(_ context.Context, q Query) ([]*EmissionFactor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*EmissionFactor
	for _, f := range s.factors {
		if !f.Eligible() {
			continue
		}
		if !strings.EqualFold(f.ActivityKey, q.ActivityKey) {
			continue
		}
		if q.Region != "" && !strings.EqualFold(f.Region, q.Region) {
			continue
		}
		if q.Year != 0 && f.Year != q.Year {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out, nil
}
