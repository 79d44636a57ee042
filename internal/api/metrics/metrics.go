// Package metrics defines and registers all custom Prometheus metrics for
// the console API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts session cookies minted (login, onboarding
// re-issue).
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session cookies issued.",
	},
)

// SessionDecodeFailuresTotal counts cookies that were present on a request
// but could not be decoded. These are downgraded to "no session" for the
// client, so this counter is the only external sign of them.
var SessionDecodeFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_decode_failures_total",
		Help:      "Total number of session cookies rejected at decode time.",
	},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDenialsTotal counts requests rejected by the role gate.
// Label:
//   - reason: "unauthenticated" (401) or "forbidden" (403)
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by the role gate, by reason.",
	},
	[]string{"reason"},
)
