// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginLimited = "rate_limited"
)

// Metrics holds the dashboard collectors and the registry they live in.
//
// Exposed series:
//   - inct_login_attempts_total{outcome}
//   - inct_dispatch_total{outcome}
//   - inct_data_reloads_total{result}
//   - inct_http_request_duration_seconds{route}
type Metrics struct {
	registry *prometheus.Registry

	LoginAttempts   *prometheus.CounterVec
	Dispatches      *prometheus.CounterVec
	DataReloads     *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, so several instances
// can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LoginAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inct_login_attempts_total",
				Help: "Login form submissions by outcome",
			},
			[]string{"outcome"}, // success, failure, rate_limited
		),
		Dispatches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inct_dispatch_total",
				Help: "Dashboard renders by the view that handled them",
			},
			[]string{"outcome"}, // prompt, institute, area
		),
		DataReloads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inct_data_reloads_total",
				Help: "Dataset reloads by result",
			},
			[]string{"result"}, // ok, error
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inct_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
			},
			[]string{"route"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Login(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Dispatch(outcome string) {
	m.Dispatches.WithLabelValues(outcome).Inc()
}

// Reload counts one dataset reload; a nil err counts as ok.
func (m *Metrics) Reload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.DataReloads.WithLabelValues(result).Inc()
}

// Instrument times next under the given route label.
func (m *Metrics) Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	obs := m.RequestDuration.WithLabelValues(route)
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		obs.Observe(time.Since(start).Seconds())
	}
}
