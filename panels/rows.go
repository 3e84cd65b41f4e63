// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package panels

import (
	"cmp"
	"slices"

	"github.com/danielhkuo/inct-panel/catalog"
	"github.com/danielhkuo/inct-panel/dataset"
)

// Where keeps the rows for which keep is true, preserving order.
func Where[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// NamedCount is one bar of a ranked chart.
type NamedCount struct {
	Name  string
	Count int
}

func sortDesc(items []NamedCount) {
	slices.SortStableFunc(items, func(a, b NamedCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
}

// TopInstitutions sums researchers per institution and keeps the n largest.
func TopInstitutions(rows []dataset.InstitutionRow, n int) []NamedCount {
	idx := make(map[string]int)
	var out []NamedCount
	for _, r := range rows {
		i, ok := idx[r.Name]
		if !ok {
			i = len(out)
			idx[r.Name] = i
			out = append(out, NamedCount{Name: r.Name})
		}
		out[i].Count += r.Researchers
	}
	sortDesc(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Formations lists highest-degree fields as stored, largest first.
func Formations(rows []dataset.FormationRow) []NamedCount {
	out := make([]NamedCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, NamedCount{Name: r.Field, Count: r.Count})
	}
	sortDesc(out)
	return out
}

// FormationsByField sums formation counts per field across institutes.
func FormationsByField(rows []dataset.FormationRow) []NamedCount {
	idx := make(map[string]int)
	var out []NamedCount
	for _, r := range rows {
		i, ok := idx[r.Field]
		if !ok {
			i = len(out)
			idx[r.Field] = i
			out = append(out, NamedCount{Name: r.Field})
		}
		out[i].Count += r.Count
	}
	sortDesc(out)
	return out
}

// Degrees lists highest-degree counts, largest first.
func Degrees(rows []dataset.DegreeRow) []NamedCount {
	out := make([]NamedCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, NamedCount{Name: r.Degree, Count: r.Count})
	}
	sortDesc(out)
	return out
}

// ByResearchers orders catalog rows by total researchers, largest first,
// without touching the caller's slice.
func ByResearchers(entries []catalog.Entry) []catalog.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b catalog.Entry) int {
		return cmp.Compare(b.Researchers, a.Researchers)
	})
	return out
}
