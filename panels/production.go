// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package panels

import "github.com/danielhkuo/inct-panel/dataset"

// ProductionType pairs a display label with the type name used in the tables.
type ProductionType struct {
	Label string
	Type  string
}

// ProductionTypes are the bibliographic production kinds shown on the grid.
var ProductionTypes = []ProductionType{
	{"Artigos Publicados", "Artigo Publicado"},
	{"Trabalhos em Eventos", "Trabalho Em Eventos"},
	{"Capítulos de Livros", "Capitulo De Livro Publicado"},
	{"Livros Publicados/Organizados", "Livro Publicado Ou Organizado"},
	{"Textos em Jornais/Revistas", "Texto Em Jornal Ou Revista"},
	{"Outras Produções Bibliográficas", "Outra Producao Bibliografica"},
	{"Artigos Aceitos", "Artigo Aceito Para Publicacao"},
	{"Prefácios/Pósfácios", "Prefacio Posfacio"},
	{"Traduções", "Traducao"},
	{"Partituras Musicais", "Partitura Musical"},
}

// ProductionPeriods are the five-year windows, oldest first.
var ProductionPeriods = []string{"2010-2015", "2015-2020", "2020-2025"}

// gridWidth is the number of metrics per grid line.
const gridWidth = 5

// Metric is one labelled number of the production grid.
type Metric struct {
	Label string
	Value int
}

// Display formats the value with thousands separators.
func (m Metric) Display() string {
	return FormatCount(m.Value)
}

// PeriodBlock holds the grid lines of one period.
type PeriodBlock struct {
	Period string
	Lines  [][]Metric
}

// ProductionGrid lays out every type for every period, five per line. Types
// and periods are matched case-insensitively with dash variants unified;
// the first matching row wins and missing cells are zero.
func ProductionGrid(rows []dataset.ProductionRow, types []ProductionType, periods []string) []PeriodBlock {
	lookup := make(map[[2]string]int, len(rows))
	for _, r := range rows {
		k := [2]string{dataset.Normalize(r.Type), dataset.Normalize(r.Period)}
		if _, ok := lookup[k]; !ok {
			lookup[k] = r.Count
		}
	}

	blocks := make([]PeriodBlock, 0, len(periods))
	for _, p := range periods {
		b := PeriodBlock{Period: p}
		for start := 0; start < len(types); start += gridWidth {
			end := min(start+gridWidth, len(types))
			line := make([]Metric, 0, end-start)
			for _, t := range types[start:end] {
				k := [2]string{dataset.Normalize(t.Type), dataset.Normalize(p)}
				line = append(line, Metric{Label: t.Label, Value: lookup[k]})
			}
			b.Lines = append(b.Lines, line)
		}
		blocks = append(blocks, b)
	}
	return blocks
}
