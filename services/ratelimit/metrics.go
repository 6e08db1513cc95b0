package ratelimit

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeAllowed  = "allowed"
	outcomeRejected = "rejected"
	outcomeDegraded = "degraded"
)

var decisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ratelimit_decisions_total",
		Help: "Admission decisions by policy and outcome",
	},
	[]string{"policy", "outcome"},
)

// Collectors returns the metrics owned by this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{decisionsTotal}
}
