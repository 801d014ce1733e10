package catalog

import (
	"sync/atomic"

	"github.com/deptsearch/deptsearch-api/model"
)

// Catalog is one immutable snapshot of the normalized reference data.
// Searches operate on a snapshot; a reload swaps the whole snapshot so
// in-flight searches are never half-updated.
type Catalog struct {
	Universities map[string]*model.University
	// Order preserves first-appearance order of universities in the
	// source dataset; the curated suggestion set depends on it.
	Order      []string
	Curated    []model.DepartmentRecord
	TargetYear int
}

// Get looks up a university by exact name.
func (c *Catalog) Get(name string) (*model.University, bool) {
	u, ok := c.Universities[name]
	return u, ok
}

// First returns up to n universities in dataset order.
func (c *Catalog) First(n int) []*model.University {
	if n > len(c.Order) {
		n = len(c.Order)
	}
	out := make([]*model.University, 0, n)
	for _, name := range c.Order[:n] {
		out = append(out, c.Universities[name])
	}
	return out
}

// All iterates universities in dataset order.
func (c *Catalog) All() []*model.University {
	return c.First(len(c.Order))
}

// CuratedFor returns curated records belonging to the university.
func (c *Catalog) CuratedFor(universityName string) []model.DepartmentRecord {
	var out []model.DepartmentRecord
	for _, r := range c.Curated {
		if r.UniversityName == universityName {
			out = append(out, r)
		}
	}
	return out
}

// Store holds the current catalog snapshot behind an atomic pointer.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store holding the given snapshot.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Snapshot returns the current catalog. Never nil after NewStore.
func (s *Store) Snapshot() *Catalog {
	return s.current.Load()
}

// Swap replaces the catalog snapshot.
func (s *Store) Swap(c *Catalog) {
	s.current.Store(c)
}
