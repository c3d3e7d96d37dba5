package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook outcomes, used as the outcome label on webhookRequests.
const (
	OutcomeAccepted     = "accepted"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRateLimited  = "rate_limited"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

var webhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "webhook_requests_total",
	Help: "Call-event webhook requests by outcome.",
}, []string{"outcome"})

// RecordWebhook counts one webhook request with its outcome.
func RecordWebhook(outcome string) {
	webhookRequests.WithLabelValues(outcome).Inc()
}
