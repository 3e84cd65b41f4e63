// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package selection derives the visible catalog rows from the filter bar:
// a type toggle (institute or area) and a dependent single-choice key.
package selection
