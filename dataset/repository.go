// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/danielhkuo/inct-panel/catalog"
)

// Repository owns the catalog store, the supplementary tables and the
// pre-rendered HTML fragments. Everything it serves is read-only; Reload
// builds a new catalog and tables and publishes them together.
type Repository struct {
	manifest Manifest
	catalog  *catalog.Store

	mu   sync.Mutex // serialises Load/Reload
	snap atomic.Pointer[Snapshot]

	fragMu    sync.RWMutex
	fragments map[string]fragment

	// OnReload is called after every Reload with its result.
	OnReload func(error)
}

// Snapshot pairs a catalog with the tables loaded alongside it. Both come
// from the same Load or Reload.
type Snapshot struct {
	Catalog *catalog.Catalog
	Tables  *Tables
}

type fragment struct {
	html string
	ok   bool
}

// NewRepository expects a manifest already resolved against the data dir.
func NewRepository(m Manifest) *Repository {
	return &Repository{
		manifest:  m,
		catalog:   catalog.NewStore(m.Catalog),
		fragments: make(map[string]fragment),
	}
}

func (r *Repository) Manifest() Manifest {
	return r.manifest
}

// Load reads the catalog and every table once. Only an unreadable catalog
// is an error; missing supplementary tables load as empty.
func (r *Repository) Load() error {
	_, err := r.load()
	return err
}

func (r *Repository) load() (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.snap.Load(); s != nil {
		return s, nil
	}
	c, err := r.catalog.Load()
	if err != nil {
		return nil, err
	}
	s := &Snapshot{Catalog: c, Tables: loadTables(r.manifest)}
	r.snap.Store(s)
	return s, nil
}

// Reload re-reads every source and drops cached fragments.
func (r *Repository) Reload() error {
	err := r.reload()
	if r.OnReload != nil {
		r.OnReload(err)
	}
	return err
}

func (r *Repository) reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.catalog.Reload()
	if err != nil {
		slog.Error("catalog reload failed, keeping previous data", "error", err)
		return err
	}
	r.snap.Store(&Snapshot{Catalog: c, Tables: loadTables(r.manifest)})

	r.fragMu.Lock()
	r.fragments = make(map[string]fragment)
	r.fragMu.Unlock()

	slog.Info("dataset reloaded")
	return nil
}

// Snapshot returns the current catalog and tables, loading them on first
// use. Callers reading both should take them from one Snapshot.
func (r *Repository) Snapshot() (*Snapshot, error) {
	if s := r.snap.Load(); s != nil {
		return s, nil
	}
	return r.load()
}

// Catalog returns the current catalog snapshot.
func (r *Repository) Catalog() (*catalog.Catalog, error) {
	s, err := r.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Catalog, nil
}

// Tables returns the current tables snapshot, never nil.
func (r *Repository) Tables() *Tables {
	s, err := r.Snapshot()
	if err != nil {
		return &Tables{}
	}
	return s.Tables
}

// GraphFragment returns the pre-rendered collaboration graph of an INCT and
// the path it was expected at.
func (r *Repository) GraphFragment(e catalog.Entry) (html, path string, ok bool) {
	if e.GraphPath == "" || r.manifest.GraphDir == "" {
		return "", "", false
	}
	base := filepath.Base(filepath.ToSlash(e.GraphPath))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	path = filepath.Join(r.manifest.GraphDir, stem+".html")
	html, ok = r.Fragment(path)
	return html, path, ok
}

// SankeyInstitute returns the keyword Sankey of an INCT.
func (r *Repository) SankeyInstitute(e catalog.Entry) (html, path string, ok bool) {
	return r.sankey(r.manifest.SankeyInstituteDir, e.ID)
}

// SankeyArea returns the keyword Sankey of the area of e.
func (r *Repository) SankeyArea(e catalog.Entry) (html, path string, ok bool) {
	return r.sankey(r.manifest.SankeyAreaDir, e.AreaID)
}

func (r *Repository) sankey(dir, id string) (string, string, bool) {
	if dir == "" || id == "" {
		return "", "", false
	}
	path := filepath.Join(dir, "sankey_inct_"+filepath.Base(id)+".html")
	html, ok := r.Fragment(path)
	return html, path, ok
}

// Fragment reads an HTML file, memoised per path until the next Reload.
// A missing file is remembered as missing.
func (r *Repository) Fragment(path string) (string, bool) {
	r.fragMu.RLock()
	f, cached := r.fragments[path]
	r.fragMu.RUnlock()
	if cached {
		return f.html, f.ok
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		f = fragment{html: string(data), ok: true}
	case errors.Is(err, os.ErrNotExist):
		f = fragment{}
	default:
		// Unreadable for another reason; do not remember it
		slog.Warn("failed to read fragment", "path", path, "error", err)
		return "", false
	}

	r.fragMu.Lock()
	r.fragments[path] = f
	r.fragMu.Unlock()
	return f.html, f.ok
}

func loadTables(m Manifest) *Tables {
	t := &Tables{
		instituteTexts: map[string]InstituteText{},
		areaTexts:      map[string]AreaText{},
	}

	load := func(name, path string, fill func(*table) error) {
		tb, err := readTable(path)
		if errors.Is(err, errNoTable) {
			slog.Warn("table not available", "table", name, "path", path)
			return
		}
		if err == nil {
			err = fill(tb)
		}
		if err != nil {
			slog.Warn("table skipped", "table", name, "path", path, "error", err)
		}
	}

	load("institutions", m.Institutions, func(tb *table) (err error) {
		t.Institutions, err = institutionRows(tb)
		return err
	})
	load("production_inct", m.ProductionByInstitute, func(tb *table) (err error) {
		t.ProductionByInstitute, err = productionRows(tb, "nome_inct")
		return err
	})
	load("production_area", m.ProductionByArea, func(tb *table) (err error) {
		t.ProductionByArea, err = productionRows(tb, "area")
		return err
	})
	load("formations", m.Formations, func(tb *table) (err error) {
		t.Formations, err = formationRows(tb)
		return err
	})
	load("wordcloud_inct", m.WordsByInstitute, func(tb *table) (err error) {
		t.WordsByInstitute, err = wordRows(tb, "nome_inct")
		return err
	})
	load("wordcloud_area", m.WordsByArea, func(tb *table) (err error) {
		t.WordsByArea, err = wordRows(tb, "area")
		return err
	})
	load("degrees_inct", m.DegreesByInstitute, func(tb *table) (err error) {
		t.DegreesByInstitute, err = degreeRows(tb, "nome_inct")
		return err
	})
	load("degrees_area", m.DegreesByArea, func(tb *table) (err error) {
		t.DegreesByArea, err = degreeRows(tb, "area")
		return err
	})
	load("texts_inct", m.InstituteTexts, func(tb *table) error {
		texts, err := instituteTexts(tb)
		if err == nil {
			t.instituteTexts = texts
		}
		return err
	})
	load("texts_area", m.AreaTexts, func(tb *table) error {
		texts, err := areaTexts(tb)
		if err == nil {
			t.areaTexts = texts
		}
		return err
	})

	return t
}
