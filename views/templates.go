// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/danielhkuo/inct-panel/charts"
	"github.com/danielhkuo/inct-panel/panels"
)

//go:embed templates/*.html
var templateFS embed.FS

// md renders pipeline texts. Raw HTML in the source is dropped.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown converts src to HTML, falling back to escaped text.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"count":    panels.FormatCount,
		"pct":      panels.FormatPercent,
		"markdown": Markdown,
	}).ParseFS(templateFS, "templates/*.html"),
)

// chart is a figure placed in a page under a DOM id.
type chart struct {
	ID     string
	Figure charts.Figure
	Config charts.Config
}

func newChart(id string, fig charts.Figure) *chart {
	return &chart{ID: id, Figure: fig, Config: charts.DefaultConfig()}
}

// fragment is a pre-rendered HTML document embedded in an iframe.
type fragment struct {
	HTML   string
	Path   string // expected location, shown when missing
	OK     bool
	Height int // pixels
}
