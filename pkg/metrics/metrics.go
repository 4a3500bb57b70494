package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "estately", Name: "auth_allowed_total", Help: "Requests admitted by the authorization gate, by policy."},
		[]string{"policy"},
	)
	AuthDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "estately", Name: "auth_denied_total", Help: "Requests rejected by the authorization gate, by stage."},
		[]string{"stage"},
	)
	ListingQueries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "estately", Name: "listing_queries_total", Help: "Listing page queries served."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "estately", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "estately", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthAllowed)
	reg.MustRegister(AuthDenied)
	reg.MustRegister(ListingQueries)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
