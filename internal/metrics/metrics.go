// Package metrics exposes Prometheus counters for the reception and
// escalation flows. Init must be called once at startup; before that every
// Record func is a no-op, which keeps unit tests free of registry state.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	matchesTotal     *prometheus.CounterVec
	escalationsTotal *prometheus.CounterVec
	deliveriesFailed prometheus.Counter

	initOnce sync.Once
)

// Init registers the frontdesk collectors with the default registry.
// Safe to call repeatedly.
func Init() {
	initOnce.Do(func() {
		matchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_matches_total",
			Help: "Knowledge base match attempts by outcome tier (exact, substring, fuzzy, keyword, none)",
		}, []string{"tier"})

		escalationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_escalations_total",
			Help: "Escalation state transitions by event (created, resolved, delivered)",
		}, []string{"event"})

		deliveriesFailed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frontdesk_deliveries_failed_total",
			Help: "Answer deliveries that failed because the session was gone",
		})

		prometheus.MustRegister(matchesTotal, escalationsTotal, deliveriesFailed)
	})
}

// RecordMatch counts a knowledge base hit on the given tier.
func RecordMatch(tier string) {
	if matchesTotal == nil {
		return
	}
	matchesTotal.WithLabelValues(tier).Inc()
}

// RecordNoMatch counts a question that no tier could answer.
func RecordNoMatch() {
	if matchesTotal == nil {
		return
	}
	matchesTotal.WithLabelValues("none").Inc()
}

// RecordEscalation counts an escalation lifecycle event.
func RecordEscalation(event string) {
	if escalationsTotal == nil {
		return
	}
	escalationsTotal.WithLabelValues(event).Inc()
}

// RecordDeliveryFailed counts a failed answer delivery.
func RecordDeliveryFailed() {
	if deliveriesFailed == nil {
		return
	}
	deliveriesFailed.Inc()
}
