// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"html/template"
	"io"

	"github.com/danielhkuo/inct-panel/selection"
)

// Title is shown in the browser tab of every page.
const Title = "Painel de Competências"

// LoginPage is the credential form. Error is shown inline when set.
type LoginPage struct {
	Username string
	Error    string
}

// DashboardPage wraps a dispatched view with the filter bar.
type DashboardPage struct {
	Type    selection.FilterType
	Key     string
	Options []string
	Body    template.HTML
}

// Types lists the toggle positions of the filter bar.
func (p DashboardPage) Types() []selection.FilterType {
	return []selection.FilterType{selection.ByInstitute, selection.ByArea}
}

// Placeholder is the empty choice of the selector.
func (p DashboardPage) Placeholder() string {
	if p.Type == selection.ByArea {
		return "Escolha uma Área..."
	}
	return "Escolha um INCT..."
}

type page struct {
	Title string
	Data  any
}

func RenderLanding(w io.Writer) error {
	return templates.ExecuteTemplate(w, "landing.html", page{Title: Title})
}

func RenderLogin(w io.Writer, p LoginPage) error {
	return templates.ExecuteTemplate(w, "login.html", page{Title: Title, Data: p})
}

func RenderDashboard(w io.Writer, p DashboardPage) error {
	return templates.ExecuteTemplate(w, "dashboard.html", page{Title: Title, Data: p})
}

// Prompt is the neutral state: nothing chosen yet, or a key with no rows.
type Prompt struct{}

func (Prompt) RenderPrompt(w io.Writer, sel selection.Selection) error {
	return templates.ExecuteTemplate(w, "prompt.html", sel)
}
