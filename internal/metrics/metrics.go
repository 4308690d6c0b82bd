package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for auth counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Auth counts auth operations by outcome.
type Auth struct {
	requests *prometheus.CounterVec
}

// NewAuth registers the auth counters with reg.
func NewAuth(reg prometheus.Registerer) *Auth {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xclone",
		Subsystem: "auth",
		Name:      "requests_total",
		Help:      "Auth requests by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(requests)
	return &Auth{requests: requests}
}

// Observe records one request. Status codes >= 500 count as errors, other
// non-2xx codes as rejections.
func (a *Auth) Observe(operation string, status int) {
	if a == nil {
		return
	}
	outcome := OutcomeSuccess
	switch {
	case status >= 500:
		outcome = OutcomeError
	case status >= 300:
		outcome = OutcomeRejected
	}
	a.requests.WithLabelValues(operation, outcome).Inc()
}
