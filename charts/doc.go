// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package charts builds Plotly figure objects from panel data. Figures are
// plain structs with JSON tags; pages embed them in a script block and hand
// them to Plotly.newPlot together with a Config.
package charts
