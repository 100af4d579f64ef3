// Package metrics defines and registers all custom Prometheus metrics for the
// accounts API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Authentication metrics ───────────────────────────────────────────────────

// SigninTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var SigninTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// CredentialRejectionsTotal counts bearer credentials rejected by the verifier.
// Label:
//   - reason: "missing", "expired", "invalid" or "unauthorized"
var CredentialRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_rejections_total",
		Help:      "Total number of rejected bearer credentials, by reason.",
	},
	[]string{"reason"},
)

// ── Authorization metrics ────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts policy decisions taken at the HTTP edge.
// Labels:
//   - action: policy action (e.g. "roles:list")
//   - decision: "allow" or "deny"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by action and decision.",
	},
	[]string{"action", "decision"},
)

// RoleAssignmentsTotal counts successful role reassignments.
// Label:
//   - role: the role granted
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of roles assigned to users.",
	},
	[]string{"role"},
)

// ── Storage metrics ──────────────────────────────────────────────────────────

// StoreOperationsTotal counts record store operations.
// Labels:
//   - collection: "users" or "roles"
//   - op: "load" or "save"
//   - result: "ok" or "error"
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of record store operations.",
	},
	[]string{"collection", "op", "result"},
)

// StoreOperationDuration measures record store latency per operation.
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of record store load and save calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection", "op"},
)
