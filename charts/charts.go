// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package charts

import "github.com/danielhkuo/inct-panel/panels"

// BrazilStatesGeoJSON is the state boundary file keyed by properties.sigla.
const BrazilStatesGeoJSON = "https://raw.githubusercontent.com/codeforamerica/click_that_hood/master/public/data/brazil-states.geojson"

// ColorScale is the continuous scale used by every chart.
const ColorScale = "Blues"

// Figure is a Plotly figure, encoded as-is for Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type         string  `json:"type"`
	Orientation  string  `json:"orientation,omitempty"`
	X            []any   `json:"x,omitempty"`
	Y            []any   `json:"y,omitempty"`
	Text         []any   `json:"text,omitempty"`
	TextPosition string  `json:"textposition,omitempty"`
	ClipOnAxis   *bool   `json:"cliponaxis,omitempty"`
	Marker       *Marker `json:"marker,omitempty"`

	// choropleth
	GeoJSON      string   `json:"geojson,omitempty"`
	FeatureIDKey string   `json:"featureidkey,omitempty"`
	Locations    []string `json:"locations,omitempty"`
	Z            []int    `json:"z,omitempty"`
	ZMin         *int     `json:"zmin,omitempty"`
	ZMax         *int     `json:"zmax,omitempty"`
	ColorScale   string   `json:"colorscale,omitempty"`
	ColorBar     *Axis    `json:"colorbar,omitempty"`

	HoverTemplate string `json:"hovertemplate,omitempty"`
}

type Marker struct {
	Color      []int  `json:"color,omitempty"`
	ColorScale string `json:"colorscale,omitempty"`
}

type Layout struct {
	Title    *Title  `json:"title,omitempty"`
	Height   int     `json:"height,omitempty"`
	Margin   *Margin `json:"margin,omitempty"`
	XAxis    *Axis   `json:"xaxis,omitempty"`
	YAxis    *Axis   `json:"yaxis,omitempty"`
	Geo      *Geo    `json:"geo,omitempty"`
	DragMode any     `json:"dragmode,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title     *Title `json:"title,omitempty"`
	AutoRange string `json:"autorange,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Geo struct {
	FitBounds string `json:"fitbounds,omitempty"`
	Visible   bool   `json:"visible"`
	Scope     string `json:"scope,omitempty"`
}

// Config holds Plotly's per-chart interaction settings.
type Config struct {
	DisplayModeBar         bool     `json:"displayModeBar"`
	DisplayLogo            bool     `json:"displaylogo"`
	Responsive             bool     `json:"responsive"`
	ScrollZoom             bool     `json:"scrollZoom"`
	DoubleClick            any      `json:"doubleClick"`
	ModeBarButtonsToRemove []string `json:"modeBarButtonsToRemove,omitempty"`
}

// DefaultConfig keeps the mode bar but drops zoom, pan and selection tools.
func DefaultConfig() Config {
	return Config{
		DisplayModeBar: true,
		Responsive:     true,
		DoubleClick:    "reset",
		ModeBarButtonsToRemove: []string{
			"zoom2d", "pan2d", "select2d", "lasso2d",
			"zoomIn2d", "zoomOut2d", "resetScale2d",
		},
	}
}

// MapConfig disables every pointer interaction except hover.
func MapConfig() Config {
	return Config{
		DisplayModeBar: true,
		Responsive:     true,
		DoubleClick:    false,
	}
}

// BarOptions labels a bar chart.
type BarOptions struct {
	Title  string
	XTitle string
	YTitle string
	Height int
}

func axis(title string) *Axis {
	if title == "" {
		return &Axis{}
	}
	return &Axis{Title: &Title{Text: title}}
}

func (o BarOptions) layout(m Margin) Layout {
	l := Layout{
		Height: o.Height,
		Margin: &m,
		XAxis:  axis(o.XTitle),
		YAxis:  axis(o.YTitle),
	}
	if o.Title != "" {
		l.Title = &Title{Text: o.Title}
	}
	return l
}

// HorizontalBar draws one bar per item, largest at the top, shaded by value.
func HorizontalBar(items []panels.NamedCount, o BarOptions) Figure {
	t := Trace{
		Type:         "bar",
		Orientation:  "h",
		TextPosition: "outside",
		Marker:       &Marker{ColorScale: ColorScale},
	}
	for _, it := range items {
		t.X = append(t.X, it.Count)
		t.Y = append(t.Y, it.Name)
		t.Text = append(t.Text, it.Count)
		t.Marker.Color = append(t.Marker.Color, it.Count)
	}
	l := o.layout(Margin{L: 10, R: 10, T: 40, B: 0})
	// Plotly draws the first category at the bottom
	l.YAxis.AutoRange = "reversed"
	return Figure{Data: []Trace{t}, Layout: l}
}

// VerticalBar draws one column per item in the given order.
func VerticalBar(items []panels.NamedCount, o BarOptions) Figure {
	clip := false
	t := Trace{
		Type:         "bar",
		TextPosition: "outside",
		ClipOnAxis:   &clip,
		Marker:       &Marker{ColorScale: ColorScale},
	}
	for _, it := range items {
		t.X = append(t.X, it.Name)
		t.Y = append(t.Y, it.Count)
		t.Text = append(t.Text, it.Count)
		t.Marker.Color = append(t.Marker.Color, it.Count)
	}
	return Figure{Data: []Trace{t}, Layout: o.layout(Margin{L: 20, R: 20, T: 60, B: 80})}
}

// KeywordBar is a horizontal bar chart of term frequencies.
func KeywordBar(words []panels.WordFreq, o BarOptions) Figure {
	items := make([]panels.NamedCount, len(words))
	for i, w := range words {
		items[i] = panels.NamedCount{Name: w.Word, Count: int(w.Freq + 0.5)}
	}
	return HorizontalBar(items, o)
}

// Choropleth shades Brazilian states by count, scaled from zero to peak.
func Choropleth(counts []panels.UFCount, peak int, colorBarTitle string) Figure {
	zmin := 0
	t := Trace{
		Type:          "choropleth",
		GeoJSON:       BrazilStatesGeoJSON,
		FeatureIDKey:  "properties.sigla",
		ColorScale:    ColorScale,
		ZMin:          &zmin,
		ZMax:          &peak,
		HoverTemplate: "%{location}: %{z}<extra></extra>",
	}
	if colorBarTitle != "" {
		t.ColorBar = axis(colorBarTitle)
	}
	for _, c := range counts {
		t.Locations = append(t.Locations, c.UF)
		t.Z = append(t.Z, c.Count)
	}
	return Figure{
		Data: []Trace{t},
		Layout: Layout{
			Height:   500,
			Margin:   &Margin{T: 40},
			Geo:      &Geo{FitBounds: "locations", Scope: "south america"},
			DragMode: false,
		},
	}
}
