package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	purchaseAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchase_attempts_total",
			Help: "Purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets created through accepted purchases",
		},
	)

	artifactsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_artifacts_rendered_total",
			Help: "Downloaded ticket artifacts by format",
		},
		[]string{"format"},
	)
)

// RecordPurchase tracks one purchase attempt; outcome is "success" or the
// rejection reason.
func RecordPurchase(outcome string, tickets int) {
	purchaseAttempts.WithLabelValues(outcome).Inc()
	if tickets > 0 {
		ticketsIssued.Add(float64(tickets))
	}
}

func RecordArtifact(format string) {
	artifactsRendered.WithLabelValues(format).Inc()
}
