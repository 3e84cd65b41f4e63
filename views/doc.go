// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package views renders the dashboard pages.
//
// A Dispatcher sends each filtered subset to exactly one collaborator: the
// InstituteView, the AreaView, or the Prompt when the subset is empty.
// Pages are html/template documents embedded in the binary; charts are
// Plotly figures drawn client-side and pre-rendered network and Sankey
// diagrams are embedded as iframes.
package views
