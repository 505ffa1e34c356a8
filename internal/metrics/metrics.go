// Package metrics holds the Prometheus collectors exported by the agent service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the agent's domain metrics. A nil *Metrics is valid and
// records nothing, so components can be built without a registry in tests.
type Metrics struct {
	ResponsesTotal    *prometheus.CounterVec
	GeneratorFailures *prometheus.CounterVec
	QueriesTotal      *prometheus.CounterVec
	QueryDuration     prometheus.Histogram
	ResultsFound      prometheus.Histogram
	OwnerContacts     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResponsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "realestate_agent",
				Subsystem: "composer",
				Name:      "responses_total",
				Help:      "Conversational responses produced, by tier",
			},
			[]string{"tier"},
		),

		GeneratorFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "realestate_agent",
				Subsystem: "composer",
				Name:      "generator_failures_total",
				Help:      "Failed external generation attempts, by generator and failure kind",
			},
			[]string{"generator", "kind"},
		),

		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "realestate_agent",
				Subsystem: "agent",
				Name:      "queries_total",
				Help:      "Agent queries handled, by status",
			},
			[]string{"status"},
		),

		QueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "realestate_agent",
				Subsystem: "agent",
				Name:      "query_duration_seconds",
				Help:      "End-to-end agent query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		ResultsFound: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "realestate_agent",
				Subsystem: "agent",
				Name:      "results_found",
				Help:      "Number of properties returned per agent query",
				Buckets:   []float64{0, 1, 2, 5, 10, 20},
			},
		),

		OwnerContacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "realestate_agent",
				Subsystem: "contact",
				Name:      "owner_contacts_total",
				Help:      "Simulated owner contacts, by follow-up flag",
			},
			[]string{"follow_up"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.ResponsesTotal,
			m.GeneratorFailures,
			m.QueriesTotal,
			m.QueryDuration,
			m.ResultsFound,
			m.OwnerContacts,
		)
	}
	return m
}

// RecordResponse counts a response produced by tier
func (m *Metrics) RecordResponse(tier string) {
	if m == nil {
		return
	}
	m.ResponsesTotal.WithLabelValues(tier).Inc()
}

// RecordGeneratorFailure counts a failed generation attempt
func (m *Metrics) RecordGeneratorFailure(generator, kind string) {
	if m == nil {
		return
	}
	m.GeneratorFailures.WithLabelValues(generator, kind).Inc()
}

// RecordQuery observes one finished agent query
func (m *Metrics) RecordQuery(status string, took time.Duration, found int) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(status).Inc()
	m.QueryDuration.Observe(took.Seconds())
	if status == "success" {
		m.ResultsFound.Observe(float64(found))
	}
}

// RecordOwnerContact counts one simulated owner contact
func (m *Metrics) RecordOwnerContact(followUp bool) {
	if m == nil {
		return
	}
	label := "false"
	if followUp {
		label = "true"
	}
	m.OwnerContacts.WithLabelValues(label).Inc()
}
