// Package metrics defines the custom Prometheus metrics for the todo service.
// Request-level HTTP metrics come from echoprometheus; the collectors here
// cover authentication and authorization decisions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// TokenVerificationsTotal counts bearer token checks.
// Label:
//   - result: "ok", "invalid", "expired" or "missing"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, by result.",
	},
	[]string{"result"},
)

// AuthDenialsTotal counts requests rejected for an auth reason.
// Label:
//   - reason: "invalid_credential", "expired_credential", "unauthenticated",
//     "insufficient_role" or "too_many_attempts"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests denied by authentication or authorization.",
	},
	[]string{"reason"},
)

// LoginsTotal counts /auth/token outcomes.
// Label:
//   - outcome: "success", "invalid_credential", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts /auth/create-user outcomes.
// Label:
//   - outcome: "success", "duplicate_username", "duplicate_email" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)
