// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package panels

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/inct-panel/catalog"
)

// KPI summarises researcher counts. Female+Male can be below Total because
// gender is not always reported.
type KPI struct {
	Institutes int
	Total      int
	Female     int
	Male       int
	FemalePct  float64
	MalePct    float64
}

// EntryKPI is the KPI of a single catalog row.
func EntryKPI(e catalog.Entry) KPI {
	return SumKPI([]catalog.Entry{e})
}

// SumKPI adds up every row of a subset.
func SumKPI(entries []catalog.Entry) KPI {
	k := KPI{Institutes: len(entries)}
	for _, e := range entries {
		k.Total += e.Researchers
		k.Female += e.Female
		k.Male += e.Male
	}
	if k.Total > 0 {
		k.FemalePct = float64(k.Female) / float64(k.Total) * 100
		k.MalePct = float64(k.Male) / float64(k.Total) * 100
	}
	return k
}

// FormatCount renders n with dots as thousands separators (1.234.567).
func FormatCount(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

// FormatPercent renders one decimal place, e.g. "40.0%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
