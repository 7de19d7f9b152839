// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	VotesCast      prometheus.Counter
	VoteRejections *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	Registrations  prometheus.Counter
	AuditFailures  prometheus.Counter
}

// New creates the metrics on a private registry so tests can build many.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		VotesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eballot_votes_cast_total",
			Help: "Total number of votes accepted by the ballot ledger",
		}),
		VoteRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eballot_vote_rejections_total",
			Help: "Vote attempts rejected by the ballot ledger, by reason",
		}, []string{"reason"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eballot_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eballot_registrations_total",
			Help: "Total number of voters registered",
		}),
		AuditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eballot_audit_failures_total",
			Help: "Audit events that could not be written",
		}),
	}

	reg.MustRegister(
		m.VotesCast,
		m.VoteRejections,
		m.Logins,
		m.Registrations,
		m.AuditFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncVotesCast() {
	if m == nil {
		return
	}
	m.VotesCast.Inc()
}

func (m *Metrics) IncVoteRejection(reason string) {
	if m == nil {
		return
	}
	m.VoteRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRegistrations() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}

func (m *Metrics) IncAuditFailures() {
	if m == nil {
		return
	}
	m.AuditFailures.Inc()
}
