// Package metrics defines and registers all custom Prometheus metrics for the
// authenticator service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authenticator"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "unauthorized", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts signup attempts by outcome.
// Label:
//   - result: "success", "conflict", "rejected", or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token exchanges by outcome.
// Label:
//   - result: "success", "invalid", "expired", or "error"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Token validation metrics ──────────────────────────────────────────────────

// TokenValidationFailuresTotal counts rejected access tokens.
// Label:
//   - reason: "malformed", "expired", "signature", "unsupported", "empty", or "invalid"
var TokenValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validation_failures_total",
		Help:      "Total number of access tokens rejected by the codec, by reason.",
	},
	[]string{"reason"},
)
