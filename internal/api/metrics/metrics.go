// Package metrics defines and registers all custom Prometheus metrics for
// the recruiting platform's access-control core. It is the single source of
// truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the router exposes them through the echo-contrib prometheus handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recruiting"

// TenantResolutionsTotal counts host-to-tenant resolutions on public routes.
// Label:
//   - result: "hit" (alias matched or dev override) or "miss" (404)
var TenantResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tenant_resolutions_total",
		Help:      "Total number of tenant resolutions, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ContextSwitchesTotal counts company context switches.
// Label:
//   - result: "ok" or "error"
var ContextSwitchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "context_switches_total",
		Help:      "Total number of company context switches, labelled by result.",
	},
	[]string{"result"},
)

// GuardBlocksTotal counts single-document requests blocked for crossing a
// tenant boundary (surfaced to the caller as not-found).
// Label:
//   - kind: the resource kind the guard protects (e.g. "campaign")
var GuardBlocksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tenant_guard_blocks_total",
		Help:      "Total number of cross-tenant document requests blocked by the guard.",
	},
	[]string{"kind"},
)

// ImpersonationBlocksTotal counts mutating requests rejected because the
// session is a read-only impersonation.
var ImpersonationBlocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "impersonation_blocks_total",
		Help:      "Total number of mutations rejected under read-only impersonation.",
	},
)

// SeniorityDenialsTotal counts user-management operations denied by the role
// hierarchy check.
var SeniorityDenialsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seniority_denials_total",
		Help:      "Total number of user-management operations denied for insufficient role seniority.",
	},
)
