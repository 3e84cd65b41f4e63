// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Store loads the reference table from one path and keeps it for the life
// of the process. The snapshot only changes through Reload.
type Store struct {
	path string

	mu      sync.Mutex // serialises loads
	current atomic.Pointer[Catalog]
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the cached catalog, reading the source on first use.
// A failed read is not cached; the next call tries again.
func (s *Store) Load() (*Catalog, error) {
	if c := s.current.Load(); c != nil {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.current.Load(); c != nil {
		return c, nil
	}
	return s.readLocked()
}

// Reload re-reads the source and swaps the snapshot. Readers holding the
// previous *Catalog keep a consistent view. On error the old snapshot stays.
func (s *Store) Reload() (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() (*Catalog, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", s.path, err)
	}

	if dups := c.DuplicateInstitutes(); len(dups) > 0 {
		slog.Warn("catalog has institutes on more than one row", "path", s.path, "institutes", dups)
	}
	slog.Info("catalog loaded", "path", s.path, "entries", c.Len(),
		"institutes", len(c.institutes), "areas", len(c.areas))

	s.current.Store(c)
	return c, nil
}
