package recommender

import (
	"fmt"
	"sync/atomic"
)

// Store publishes the current catalog to concurrent readers. A rebuilt catalog
// replaces the previous one in a single atomic swap, so every query observes
// exactly one catalog snapshot.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore() *Store {
	return &Store{}
}

// Publish makes c the catalog served to new queries. Catalogs that are not
// ready are refused and the previous catalog stays in place.
func (s *Store) Publish(c *Catalog) error {
	if !c.IsReady() {
		return fmt.Errorf("publish catalog: %w", ErrCatalogNotReady)
	}
	s.current.Store(c)
	return nil
}

// Current returns the published catalog or ErrCatalogNotReady before the first
// successful publish.
func (s *Store) Current() (*Catalog, error) {
	c := s.current.Load()
	if !c.IsReady() {
		return nil, ErrCatalogNotReady
	}
	return c, nil
}

// IsReady reports whether a ready catalog has been published.
func (s *Store) IsReady() bool {
	return s.current.Load().IsReady()
}
