// Package metrics exposes Prometheus instruments for the meeting pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Processing statuses.
const (
	StatusSuccess = "success"
	StatusCached  = "cached"
	StatusFailed  = "failed"
)

// Metrics holds all Prometheus metrics for the pipeline. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	MeetingsProcessedTotal *prometheus.CounterVec
	FallbacksTotal         *prometheus.CounterVec
	RiskPriorityTotal      *prometheus.CounterVec
	UrgencyScore           prometheus.Histogram
	StageSeconds           *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the pipeline metrics on reg. reg is also used to serve
// Handler when it implements prometheus.Gatherer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		MeetingsProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetflow_meetings_processed_total",
				Help: "Meetings processed by final status",
			},
			[]string{"status"},
		),
		FallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetflow_collaborator_fallbacks_total",
				Help: "Times a collaborator failed and a local fallback was used",
			},
			[]string{"collaborator", "code"},
		),
		RiskPriorityTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetflow_risk_priority_total",
				Help: "Analyzed meetings per risk priority tier",
			},
			[]string{"priority"},
		),
		UrgencyScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meetflow_urgency_score",
				Help:    "Urgency score of analyzed meetings",
				Buckets: []float64{0, 5, 10, 20, 30, 50, 75, 100},
			},
		),
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meetflow_stage_seconds",
				Help:    "Latency per pipeline stage",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 300, 900},
			},
			[]string{"stage"},
		),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// RecordProcessed counts a meeting that left the pipeline with status.
func (m *Metrics) RecordProcessed(status string) {
	if m == nil {
		return
	}
	m.MeetingsProcessedTotal.WithLabelValues(status).Inc()
}

// RecordFallback counts a degraded collaborator call.
func (m *Metrics) RecordFallback(collaborator, code string) {
	if m == nil {
		return
	}
	m.FallbacksTotal.WithLabelValues(collaborator, code).Inc()
}

// RecordRisk records the priority tier and urgency score of a report.
func (m *Metrics) RecordRisk(priority string, urgency int) {
	if m == nil {
		return
	}
	m.RiskPriorityTotal.WithLabelValues(priority).Inc()
	m.UrgencyScore.Observe(float64(urgency))
}

// RecordStage records how long a stage took.
func (m *Metrics) RecordStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.StageSeconds.WithLabelValues(stage).Observe(seconds)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
