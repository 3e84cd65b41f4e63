// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidCount  = errors.New("invalid researcher count")
)

// Column names of the reference table
const (
	ColInstitute   = "nome_inct"
	ColArea        = "area"
	ColCoordinator = "coordenador"
	ColResearchers = "n_pesquisadores"
	ColFemale      = "n_feminino"
	ColMale        = "n_masculino"
	ColID          = "Identificador"
	ColAreaID      = "identificador_area"
	ColGraphPath   = "path_gexf_html"
)

var requiredColumns = []string{
	ColInstitute, ColArea, ColCoordinator,
	ColResearchers, ColFemale, ColMale,
}

// Entry is one row of the reference table.
// Female+Male may be lower than Researchers when gender was not reported.
type Entry struct {
	Institute   string `json:"institute"`
	Area        string `json:"area"`
	Coordinator string `json:"coordinator"`
	Researchers int    `json:"researchers"`
	Female      int    `json:"female"`
	Male        int    `json:"male"`

	ID        string `json:"id,omitempty"`
	AreaID    string `json:"area_id,omitempty"`
	GraphPath string `json:"graph_path,omitempty"`
}

// Catalog is an immutable snapshot of the reference table.
type Catalog struct {
	entries     []Entry
	byInstitute map[string][]int
	byArea      map[string][]int
	institutes  []string
	areas       []string
}

// New builds a catalog from entries, keeping their order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries:     slices.Clone(entries),
		byInstitute: make(map[string][]int),
		byArea:      make(map[string][]int),
	}
	for i, e := range c.entries {
		c.byInstitute[e.Institute] = append(c.byInstitute[e.Institute], i)
		c.byArea[e.Area] = append(c.byArea[e.Area], i)
	}
	c.institutes = sortedKeys(c.byInstitute)
	c.areas = sortedKeys(c.byArea)
	return c
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Parse reads a reference table in CSV form.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		// Excel exports carry a BOM on the first column
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var entries []Entry
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		e := Entry{
			Institute:   field(rec, ColInstitute),
			Area:        field(rec, ColArea),
			Coordinator: field(rec, ColCoordinator),
			ID:          field(rec, ColID),
			AreaID:      field(rec, ColAreaID),
			GraphPath:   field(rec, ColGraphPath),
		}
		counts := []struct {
			col string
			dst *int
		}{
			{ColResearchers, &e.Researchers},
			{ColFemale, &e.Female},
			{ColMale, &e.Male},
		}
		for _, c := range counts {
			n, err := ParseCount(field(rec, c.col))
			if err != nil {
				return nil, fmt.Errorf("line %d, %s: %w", line, c.col, err)
			}
			*c.dst = n
		}
		entries = append(entries, e)
	}

	return New(entries), nil
}

// ParseCount reads a non-negative count. Blank, non-numeric, infinite or
// out-of-range cells count as zero; pandas exports integers with missing
// values as floats ("12.0").
func ParseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) {
			return 0, nil
		}
		if f < 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidCount, s)
		}
		// Infinite or out-of-range values cannot be counts
		if math.IsInf(f, 0) || f >= math.MaxInt {
			return 0, nil
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCount, s)
	}
	return n, nil
}

// Entries returns a copy of all entries in source order.
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// UniqueInstitutes returns the sorted, duplicate-free institute names.
// Rows with a blank name are not listed.
func (c *Catalog) UniqueInstitutes() []string {
	return slices.Clone(c.institutes)
}

// UniqueAreas returns the sorted, duplicate-free area names.
func (c *Catalog) UniqueAreas() []string {
	return slices.Clone(c.areas)
}

// ByInstitute returns every entry for name in source order.
func (c *Catalog) ByInstitute(name string) []Entry {
	return c.pick(c.byInstitute[name])
}

// ByArea returns every entry in area in source order.
func (c *Catalog) ByArea(area string) []Entry {
	return c.pick(c.byArea[area])
}

func (c *Catalog) pick(positions []int) []Entry {
	out := make([]Entry, 0, len(positions))
	for _, p := range positions {
		out = append(out, c.entries[p])
	}
	return out
}

// DuplicateInstitutes lists institute names that appear on more than one row.
func (c *Catalog) DuplicateInstitutes() []string {
	var dups []string
	for _, name := range c.institutes {
		if len(c.byInstitute[name]) > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}
