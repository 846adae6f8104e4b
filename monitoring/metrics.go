package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	purchaseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_purchases_total",
			Help: "Purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	purchaseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventflow_purchase_duration_seconds",
			Help:    "Wall time of the purchase transaction",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventflow_tickets_issued_total",
			Help: "Tickets issued across all events",
		},
	)

	checkinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_checkins_total",
			Help: "Check-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	lifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventflow_event_transitions_total",
			Help: "Event lifecycle transitions by target status",
		},
		[]string{"to"},
	)
)

func TrackPurchase(outcome string, tickets int, duration time.Duration) {
	purchaseTotal.WithLabelValues(outcome).Inc()
	purchaseDuration.Observe(duration.Seconds())
	if tickets > 0 {
		ticketsIssued.Add(float64(tickets))
	}
}

func TrackCheckIn(outcome string) {
	checkinsTotal.WithLabelValues(outcome).Inc()
}

func TrackTransition(to string) {
	lifecycleTransitions.WithLabelValues(to).Inc()
}
