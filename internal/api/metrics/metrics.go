// Package metrics defines and registers all custom Prometheus metrics for the
// Beamify application gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "beamify"

// ── Session gate metrics ──────────────────────────────────────────────────────

// SessionChecksTotal counts who-am-I checks by classified outcome.
// Label:
//   - outcome: "authenticated", "unauthenticated", "bootstrapping", "unreachable"
var SessionChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_checks_total",
		Help:      "Total number of session checks, labelled by classified outcome.",
	},
	[]string{"outcome"},
)

// SessionCheckDuration measures one session check end-to-end.
// Label:
//   - outcome: same values as SessionChecksTotal
var SessionCheckDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_check_duration_seconds",
		Help:      "Duration of session checks against the core API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// GateRedirectsTotal counts forced navigations issued by the session gate.
// Label:
//   - target: "login" or "init"
var GateRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_redirects_total",
		Help:      "Total number of redirects forced by the session gate, by target route.",
	},
	[]string{"target"},
)

// BootstrapPollsTotal counts admin-exists polls during the setup flow.
// Label:
//   - result: "exists", "pending" or "error"
var BootstrapPollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstrap_polls_total",
		Help:      "Total number of admin-exists polls, labelled by result.",
	},
	[]string{"result"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsTotal counts audit events accepted for persistence.
// Label:
//   - action: "login", "logout", "forced_logout", "admin_created"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events enqueued, by action.",
	},
	[]string{"action"},
)

// AuditEventsDroppedTotal counts audit events dropped on a full queue.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped because the queue was full.",
	},
)
