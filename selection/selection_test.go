// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/inct-panel/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{Institute: "INCT-A", Area: "Physics", Researchers: 10, Female: 4, Male: 6},
		{Institute: "INCT-B", Area: "Physics", Researchers: 5, Female: 2, Male: 3},
		{Institute: "INCT-C", Area: "Biology", Researchers: 8, Female: 5, Male: 3},
	})
}

func TestParseFilterType(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterType
		wantErr bool
	}{
		{"", ByInstitute, false},
		{"inct", ByInstitute, false},
		{"INCT", ByInstitute, false},
		{"area", ByArea, false},
		{"Área", ByArea, false},
		{"region", ByInstitute, true},
	}
	for _, tt := range tests {
		got, err := ParseFilterType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterTypeString(t *testing.T) {
	for _, ft := range []FilterType{ByInstitute, ByArea} {
		parsed, err := ParseFilterType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, parsed)
	}
	assert.Equal(t, "INCT", ByInstitute.Label())
	assert.Equal(t, "Área", ByArea.Label())
}

func TestFilter_ByInstitute(t *testing.T) {
	c := testCatalog()
	for _, name := range c.UniqueInstitutes() {
		got := Filter(c, ByInstitute, name)
		require.NotEmpty(t, got, name)
		for _, e := range got {
			assert.Equal(t, name, e.Institute)
		}
	}
}

func TestFilter_ByArea(t *testing.T) {
	c := testCatalog()
	for _, area := range c.UniqueAreas() {
		want := 0
		for _, e := range c.Entries() {
			if e.Area == area {
				want++
			}
		}
		got := Filter(c, ByArea, area)
		assert.Len(t, got, want, area)
		for _, e := range got {
			assert.Equal(t, area, e.Area)
		}
	}

	physics := Filter(c, ByArea, "Physics")
	require.Len(t, physics, 2)
	assert.Equal(t, 15, physics[0].Researchers+physics[1].Researchers)
	assert.Equal(t, "INCT-A", physics[0].Institute, "source order")
}

func TestFilter_EmptyResults(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name string
		t    FilterType
		key  string
	}{
		{"absent institute key", ByInstitute, ""},
		{"absent area key", ByArea, ""},
		{"unknown institute", ByInstitute, "INCT-Z"},
		{"unknown area", ByArea, "Chemistry"},
		{"area name as institute", ByInstitute, "Physics"},
		{"unknown type", FilterType(7), "INCT-A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Filter(c, tt.t, tt.key)
			second := Filter(c, tt.t, tt.key)
			assert.NotNil(t, first)
			assert.Empty(t, first)
			assert.Equal(t, first, second)
		})
	}

	assert.Empty(t, Filter(nil, ByArea, "Physics"))
}

func TestFilter_DuplicateInstituteReturnsAllRows(t *testing.T) {
	c := catalog.New([]catalog.Entry{
		{Institute: "X", Area: "A1", Coordinator: "first"},
		{Institute: "X", Area: "A2", Coordinator: "second"},
	})
	got := Filter(c, ByInstitute, "X")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Coordinator)
}

func TestApplyAndSelection(t *testing.T) {
	c := testCatalog()
	s := Selection{Type: ByArea}
	assert.False(t, s.HasKey())
	assert.Empty(t, Apply(c, s))

	s.Key = "Biology"
	assert.True(t, s.HasKey())
	assert.Len(t, Apply(c, s), 1)
}

func TestOptions(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{"INCT-A", "INCT-B", "INCT-C"}, Options(c, ByInstitute))
	assert.Equal(t, []string{"Biology", "Physics"}, Options(c, ByArea))
	assert.Empty(t, Options(nil, ByArea))
}
