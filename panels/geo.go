// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package panels

import "github.com/danielhkuo/inct-panel/dataset"

// UFs are the Brazilian federative units, alphabetical.
var UFs = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO", "MA", "MG", "MS", "MT",
	"PA", "PB", "PE", "PI", "PR", "RJ", "RN", "RO", "RR", "RS", "SC", "SE", "SP", "TO",
}

// UFCount is the number of institutions in one federative unit.
type UFCount struct {
	UF    string
	Count int
}

// UFDistribution counts named institution rows per UF. Every UF is present,
// zero-filled, in UFs order; rows outside the 27 UFs are ignored. peak is
// the largest count.
func UFDistribution(rows []dataset.InstitutionRow) (counts []UFCount, peak int) {
	tally := make(map[string]int)
	for _, r := range rows {
		if r.Name == "" {
			continue
		}
		tally[r.UF]++
	}
	counts = make([]UFCount, len(UFs))
	for i, uf := range UFs {
		counts[i] = UFCount{UF: uf, Count: tally[uf]}
		if counts[i].Count > peak {
			peak = counts[i].Count
		}
	}
	return counts, peak
}
