// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package panels turns catalog and dataset rows into the numbers shown on
// the dashboard: researcher KPIs, word frequencies, the bibliographic
// production grid, the per-UF institution distribution and ranked lists.
//
// Everything here is pure: functions take rows and return new slices
// without mutating their input, so views can call them on shared snapshots.
package panels
