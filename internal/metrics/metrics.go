package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts booking activity for the /metrics endpoint.
type Metrics struct {
	BookingsCreated  prometheus.Counter
	Transitions      *prometheus.CounterVec
	Conflicts        prometheus.Counter
	RejectedRequests *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booking_requests_created_total",
			Help: "Total number of bookings created",
		}),

		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Total number of committed status transitions by target status",
		}, []string{"status"}),

		Conflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of approvals lost to an overlap or optimistic race",
		}),

		RejectedRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_rejected_requests_total",
			Help: "Total number of requests rejected before any write, by reason",
		}, []string{"reason"}),
	}
}
