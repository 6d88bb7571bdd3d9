// Package metrics defines and registers all custom Prometheus metrics for the
// identity gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Legacy CRM metrics ────────────────────────────────────────────────────────

// LegacyRequestsTotal counts calls against the legacy CRM system.
// Labels:
//   - operation: "login", "get_profile", "create_customer", "exists_customer"
//   - result: "ok" (a response was obtained) or "error" (absorbed failure)
var LegacyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "legacy_requests_total",
		Help:      "Total number of requests against the legacy CRM, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Migration metrics ─────────────────────────────────────────────────────────

// MigrationLoginsTotal counts migration login attempts by terminal outcome.
// Label:
//   - outcome: "succeeded", "failed", "cancelled"
var MigrationLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "migration_logins_total",
		Help:      "Total number of migration login attempts, by terminal flow state.",
	},
	[]string{"outcome"},
)

// IdentitiesProvisionedTotal counts local identities created from legacy
// customer data.
// Label:
//   - trigger: "login" (lazy migration) or "registration"
var IdentitiesProvisionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identities_provisioned_total",
		Help:      "Total number of local identities provisioned from the legacy CRM.",
	},
	[]string{"trigger"},
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "created", "email_in_use", "rejected", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)
