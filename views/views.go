// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"errors"
	"io"
	"slices"

	"github.com/danielhkuo/inct-panel/catalog"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/selection"
)

var ErrEmptySubset = errors.New("empty subset")

// Options carries the per-render controls of the views.
type Options struct {
	TopN    int      // word cloud size, clamped by the view
	Period  string   // area text period; empty picks the latest
	Periods []string // keyword periods; empty means all

	// Tables loaded with the catalog the subset came from; nil reads the
	// repository's current tables.
	Tables *dataset.Tables
}

func (o Options) tables(repo *dataset.Repository) *dataset.Tables {
	if o.Tables != nil {
		return o.Tables
	}
	return repo.Tables()
}

// Renderer draws one view for a non-empty subset. Implementations must not
// mutate subset.
type Renderer interface {
	Render(w io.Writer, key string, subset []catalog.Entry, opts Options) error
}

// PromptRenderer draws the neutral state shown when there is nothing to
// display.
type PromptRenderer interface {
	RenderPrompt(w io.Writer, sel selection.Selection) error
}

// Outcome records which collaborator handled a dispatch.
type Outcome string

const (
	OutcomePrompt    Outcome = "prompt"
	OutcomeInstitute Outcome = "institute"
	OutcomeArea      Outcome = "area"
)

// Dispatcher routes a filtered subset to exactly one collaborator.
type Dispatcher struct {
	Institute Renderer
	Area      Renderer
	Prompt    PromptRenderer
}

// Route reports which collaborator Dispatch picks for sel and subset.
func Route(sel selection.Selection, subset []catalog.Entry) Outcome {
	if len(subset) == 0 {
		return OutcomePrompt
	}
	switch sel.Type {
	case selection.ByInstitute:
		return OutcomeInstitute
	case selection.ByArea:
		return OutcomeArea
	}
	return OutcomePrompt
}

// Dispatch renders subset with the view matching sel.Type. An empty subset
// renders the prompt whatever the type, and no view is invoked.
func (d *Dispatcher) Dispatch(w io.Writer, sel selection.Selection, subset []catalog.Entry, opts Options) (Outcome, error) {
	switch out := Route(sel, subset); out {
	case OutcomeInstitute:
		return out, d.Institute.Render(w, sel.Key, slices.Clone(subset), opts)
	case OutcomeArea:
		return out, d.Area.Render(w, sel.Key, slices.Clone(subset), opts)
	}
	return OutcomePrompt, d.Prompt.RenderPrompt(w, sel)
}
