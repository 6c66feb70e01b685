// Package metrics defines and registers all custom Prometheus metrics for
// the NestHome web frontend. It is the single source of truth for metric
// names, labels, and help strings; registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nesthome_web"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// BootstrapsTotal counts session bootstraps.
// Label:
//   - outcome: "authenticated", "anonymous", or "skipped" (flag unset,
//     no session-check call issued)
var BootstrapsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_bootstraps_total",
		Help:      "Total number of session bootstraps, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDecisionsTotal counts route-guard outcomes.
// Label:
//   - decision: "allow", "login_redirect", or "unauthorized_redirect"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard decisions, by decision.",
	},
	[]string{"decision"},
)

// ── Page data metrics ─────────────────────────────────────────────────────────

// CatalogFallbacksTotal counts catalog page renders served from the
// built-in demo catalog because the upstream was unreachable.
var CatalogFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fallbacks_total",
		Help:      "Total number of catalog renders that used the fallback catalog.",
	},
)

// ContactMessagesTotal counts contact-form submissions.
// Label:
//   - result: "stored" or "failed"
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact form submissions, by result.",
	},
	[]string{"result"},
)
