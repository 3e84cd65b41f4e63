// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"io"
	"slices"

	"github.com/danielhkuo/inct-panel/catalog"
	"github.com/danielhkuo/inct-panel/charts"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/panels"
)

// AreaPeriods are the periods with area texts, oldest first.
var AreaPeriods = []string{"2010–2015", "2015–2020", "2020–2025"}

// AreaView is the panel for a research area and all of its INCTs.
type AreaView struct {
	Data *dataset.Repository
}

type periodChoice struct {
	Label    string
	Selected bool
}

type areaData struct {
	Key string

	Periods  []periodChoice
	Period   string
	Text     dataset.AreaText
	HasText  bool
	Sankey   fragment
	KPI      panels.KPI
	Table    []catalog.Entry
	Keywords *chart

	KeywordPeriods []periodChoice

	Production []panels.PeriodBlock

	Cloud     cloudBlock
	Formation *chart

	Map             *chart
	TopInstitutions *chart
	Degrees         *chart
}

// SelectPeriod returns the area period matching p, or the latest one.
func SelectPeriod(p string) string {
	want := dataset.Normalize(p)
	for _, period := range AreaPeriods {
		if want != "" && dataset.Normalize(period) == want {
			return period
		}
	}
	return AreaPeriods[len(AreaPeriods)-1]
}

// Render writes the area panel. KPIs and the INCT table cover every row of
// subset; the Sankey diagram follows the area id of the first row.
func (v *AreaView) Render(w io.Writer, key string, subset []catalog.Entry, opts Options) error {
	if len(subset) == 0 {
		return ErrEmptySubset
	}
	t := opts.tables(v.Data)

	d := areaData{
		Key:    key,
		Period: SelectPeriod(opts.Period),
		KPI:    panels.SumKPI(subset),
		Table:  panels.ByResearchers(subset),
	}
	for _, p := range AreaPeriods {
		d.Periods = append(d.Periods, periodChoice{Label: p, Selected: p == d.Period})
	}
	d.Text, d.HasText = t.AreaText(key, d.Period)
	d.Sankey.HTML, d.Sankey.Path, d.Sankey.OK = v.Data.SankeyArea(subset[0])
	d.Sankey.Height = 1000

	words := panels.Where(t.WordsByArea, func(r dataset.WordRow) bool { return r.Area == key })
	words = panels.InPeriods(words, opts.Periods)
	for _, p := range panels.Periods(t.WordsByArea) {
		selected := len(opts.Periods) == 0 || slices.ContainsFunc(opts.Periods, func(s string) bool {
			return dataset.Normalize(s) == dataset.Normalize(p)
		})
		d.KeywordPeriods = append(d.KeywordPeriods, periodChoice{Label: p, Selected: selected})
	}
	if top := panels.KeywordTotals(words, nil, panels.KeywordLimit); len(top) > 0 {
		d.Keywords = newChart("chart-keywords", charts.KeywordBar(top, charts.BarOptions{
			XTitle: "Frequência",
			Height: 1200,
		}))
	}
	d.Cloud = newCloud(words, opts.TopN, "Nenhuma frase disponível para gerar a nuvem com os filtros atuais.")

	production := panels.Where(t.ProductionByArea, func(r dataset.ProductionRow) bool {
		return r.Area == key
	})
	d.Production = panels.ProductionGrid(production, panels.ProductionTypes, panels.ProductionPeriods)

	formations := panels.FormationsByField(panels.Where(t.Formations, func(r dataset.FormationRow) bool {
		return r.Area == key
	}))
	if len(formations) > 0 {
		d.Formation = newChart("chart-formation", charts.HorizontalBar(formations, charts.BarOptions{
			XTitle: "Número de Pesquisadores",
			YTitle: "Área de Formação",
			Height: 530,
		}))
	}

	institutions := panels.Where(t.Institutions, func(r dataset.InstitutionRow) bool {
		return r.Area == key
	})
	d.Map, d.TopInstitutions = geoCharts(institutions)

	degrees := panels.Degrees(panels.Where(t.DegreesByArea, func(r dataset.DegreeRow) bool {
		return r.Area == key
	}))
	d.Degrees = degreeChart(degrees)

	return templates.ExecuteTemplate(w, "area.html", d)
}
