// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics bundles the Prometheus collectors for one run. All methods
// are safe to call on a nil *Metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors on a dedicated registry.
type Metrics struct {
	Registry          *prometheus.Registry
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	FaultsTotal       *prometheus.CounterVec
	ArticlesParsed    prometheus.Counter
	RecordsEmitted    prometheus.Counter
	IdentifiersPooled prometheus.Gauge
}

// New constructs and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eutils_requests_total",
			Help: "Total E-utilities requests issued, by endpoint.",
		},
		[]string{"endpoint"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eutils_request_duration_seconds",
			Help:    "E-utilities request latency, including rate-limit retries.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	faults := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_faults_total",
			Help: "Faults absorbed by the pipeline, by kind and operation.",
		},
		[]string{"kind", "op"},
	)
	parsed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_articles_parsed_total",
		Help: "Articles decoded from EFetch responses.",
	})
	emitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_records_emitted_total",
		Help: "Records with at least one company-affiliated author.",
	})
	pooled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pipeline_identifiers_pooled",
		Help: "Identifiers collected by the last search.",
	})

	registry.MustRegister(requests, duration, faults, parsed, emitted, pooled)

	return &Metrics{
		Registry:          registry,
		RequestsTotal:     requests,
		RequestDuration:   duration,
		FaultsTotal:       faults,
		ArticlesParsed:    parsed,
		RecordsEmitted:    emitted,
		IdentifiersPooled: pooled,
	}
}

// IncRequest counts one request to endpoint.
func (m *Metrics) IncRequest(endpoint string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint).Inc()
}

// ObserveDuration records the latency of one request to endpoint.
func (m *Metrics) ObserveDuration(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncFault counts one absorbed fault.
func (m *Metrics) IncFault(kind, op string) {
	if m == nil {
		return
	}
	m.FaultsTotal.WithLabelValues(kind, op).Inc()
}

// IncArticle counts one decoded article.
func (m *Metrics) IncArticle() {
	if m == nil {
		return
	}
	m.ArticlesParsed.Inc()
}

// IncRecord counts one emitted record.
func (m *Metrics) IncRecord() {
	if m == nil {
		return
	}
	m.RecordsEmitted.Inc()
}

// SetPooled records the size of the identifier pool.
func (m *Metrics) SetPooled(n int) {
	if m == nil {
		return
	}
	m.IdentifiersPooled.Set(float64(n))
}

// WriteTextfile writes the registry to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
