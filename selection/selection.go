// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selection

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/inct-panel/catalog"
)

// FilterType chooses whether the dashboard shows one institute or one area.
type FilterType int

const (
	ByInstitute FilterType = iota
	ByArea
)

func (t FilterType) String() string {
	switch t {
	case ByInstitute:
		return "inct"
	case ByArea:
		return "area"
	}
	return fmt.Sprintf("FilterType(%d)", int(t))
}

// Label is the text shown on the filter toggle.
func (t FilterType) Label() string {
	if t == ByArea {
		return "Área"
	}
	return "INCT"
}

// ParseFilterType reads the query form of a filter type. An empty value
// selects institutes, the toggle's default position.
func ParseFilterType(s string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inct", "institute":
		return ByInstitute, nil
	case "area", "área":
		return ByArea, nil
	}
	return ByInstitute, fmt.Errorf("unknown filter type %q", s)
}

// Selection is the user's filter choice for one render. An empty Key means
// nothing has been chosen yet.
type Selection struct {
	Type FilterType
	Key  string
}

func (s Selection) HasKey() bool {
	return s.Key != ""
}

// Filter returns the catalog rows matching key under filter type t, in
// source order. An absent key, an unknown key or a nil catalog all give an
// empty subset.
func Filter(c *catalog.Catalog, t FilterType, key string) []catalog.Entry {
	if c == nil || key == "" {
		return []catalog.Entry{}
	}
	switch t {
	case ByInstitute:
		return c.ByInstitute(key)
	case ByArea:
		return c.ByArea(key)
	}
	return []catalog.Entry{}
}

// Apply is Filter for a Selection.
func Apply(c *catalog.Catalog, s Selection) []catalog.Entry {
	return Filter(c, s.Type, s.Key)
}

// Options lists the choices for the selector that depends on t.
func Options(c *catalog.Catalog, t FilterType) []string {
	if c == nil {
		return []string{}
	}
	if t == ByArea {
		return c.UniqueAreas()
	}
	return c.UniqueInstitutes()
}
