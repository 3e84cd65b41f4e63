// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"io"
	"strings"

	"github.com/danielhkuo/inct-panel/catalog"
	"github.com/danielhkuo/inct-panel/charts"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/panels"
)

// Word cloud font sizes in pixels
const (
	cloudMinPx = 12
	cloudMaxPx = 56
)

// InstituteView is the panel for a single INCT.
type InstituteView struct {
	Data *dataset.Repository
}

type cloudBlock struct {
	TopN     int
	Min      int
	Max      int
	Step     int
	Words    []panels.CloudWord
	NoSource bool   // nothing for this key before stopword filtering
	Empty    string // message shown when NoSource
}

type instituteData struct {
	Key         string
	Area        string
	Coordinator string

	Description string
	Extra       []string

	Graph  fragment
	Sankey fragment

	Cloud     cloudBlock
	Formation *chart

	KPI panels.KPI

	Production []panels.PeriodBlock

	Map             *chart
	TopInstitutions *chart
	Degrees         *chart
}

// Render writes the institute panel. The first row of subset supplies the
// scalar fields when the name is duplicated.
func (v *InstituteView) Render(w io.Writer, key string, subset []catalog.Entry, opts Options) error {
	if len(subset) == 0 {
		return ErrEmptySubset
	}
	info := subset[0]
	t := opts.tables(v.Data)

	d := instituteData{
		Key:         key,
		Area:        info.Area,
		Coordinator: info.Coordinator,
		KPI:         panels.EntryKPI(info),
	}

	if text, ok := t.InstituteText(key); ok {
		d.Description = strings.TrimSpace(text.Description)
		for _, s := range []string{text.Statistics, text.Comparisons, text.Indicators} {
			if s = strings.TrimSpace(s); s != "" {
				d.Extra = append(d.Extra, s)
			}
		}
	}

	d.Graph.HTML, d.Graph.Path, d.Graph.OK = v.Data.GraphFragment(info)
	d.Graph.Height = 960
	d.Sankey.HTML, d.Sankey.Path, d.Sankey.OK = v.Data.SankeyInstitute(info)
	d.Sankey.Height = 1000

	words := panels.Where(t.WordsByInstitute, func(r dataset.WordRow) bool { return r.Institute == key })
	d.Cloud = newCloud(words, opts.TopN, "Nenhuma palavra encontrada para este INCT.")

	formations := panels.Formations(panels.Where(t.Formations, func(r dataset.FormationRow) bool {
		return r.Institute == key
	}))
	if len(formations) > 0 {
		d.Formation = newChart("chart-formation", charts.HorizontalBar(formations, charts.BarOptions{
			XTitle: "Número de Pesquisadores",
			YTitle: "Área de Formação",
			Height: 420,
		}))
	}

	production := panels.Where(t.ProductionByInstitute, func(r dataset.ProductionRow) bool {
		return r.Institute == key
	})
	d.Production = panels.ProductionGrid(production, panels.ProductionTypes, panels.ProductionPeriods)

	institutions := panels.Where(t.Institutions, func(r dataset.InstitutionRow) bool {
		return r.Institute == key
	})
	d.Map, d.TopInstitutions = geoCharts(institutions)

	degrees := panels.Degrees(panels.Where(t.DegreesByInstitute, func(r dataset.DegreeRow) bool {
		return r.Institute == key
	}))
	d.Degrees = degreeChart(degrees)

	return templates.ExecuteTemplate(w, "institute.html", d)
}

func newCloud(rows []dataset.WordRow, topN int, empty string) cloudBlock {
	c := cloudBlock{
		TopN:  panels.ClampTopN(topN),
		Min:   panels.MinTopN,
		Max:   panels.MaxTopN,
		Step:  panels.StepTopN,
		Empty: empty,
	}
	if len(rows) == 0 {
		c.NoSource = true
		return c
	}
	c.Words = panels.Cloud(panels.WordFrequencies(rows, c.TopN), cloudMinPx, cloudMaxPx)
	return c
}

func geoCharts(rows []dataset.InstitutionRow) (uf, top *chart) {
	counts, peak := panels.UFDistribution(rows)
	uf = &chart{
		ID:     "chart-uf",
		Figure: charts.Choropleth(counts, peak, "Instituições"),
		Config: charts.MapConfig(),
	}
	if ranked := panels.TopInstitutions(rows, 10); len(ranked) > 0 {
		top = newChart("chart-institutions", charts.HorizontalBar(ranked, charts.BarOptions{
			Title:  "Top 10 Instituições",
			XTitle: "Número de Pesquisadores",
			Height: 500,
		}))
	}
	return uf, top
}

func degreeChart(degrees []panels.NamedCount) *chart {
	if len(degrees) == 0 {
		return nil
	}
	return newChart("chart-degrees", charts.VerticalBar(degrees, charts.BarOptions{
		XTitle: "Formação Mais Alta",
		YTitle: "Número de Pesquisadores",
		Height: 350,
	}))
}
