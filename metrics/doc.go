// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for logins, view dispatch and
// dataset reloads, plus a per-route latency histogram.
package metrics
