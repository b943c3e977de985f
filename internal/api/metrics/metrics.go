// Package metrics defines and registers all custom Prometheus metrics for the
// career guidance portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry through promauto on
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts session-changing calls.
// Labels:
//   - op: "sign_up", "sign_in", "federated_sign_in", "sign_out", "reset_password"
//   - mode: the backend mode ("remote" or "local")
//   - result: "ok" or a short failure reason (e.g. "wrong-secret", "duplicate")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations by outcome.",
	},
	[]string{"op", "mode", "result"},
)

// NonCriticalWriteFailuresTotal counts best-effort writes that failed after
// the primary operation succeeded.
// Label:
//   - op: the side write (e.g. "write-profile", "touch-last-login")
var NonCriticalWriteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "noncritical_write_failures_total",
		Help:      "Total number of failed best-effort profile writes.",
	},
	[]string{"op"},
)

// ── Directory metrics ─────────────────────────────────────────────────────────

// DirectoryLoadsTotal counts directory loads.
// Label:
//   - source: "remote", "cache" or "sample"
var DirectoryLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_loads_total",
		Help:      "Total number of college directory loads, by data source.",
	},
	[]string{"source"},
)

// ── Inquiry metrics ───────────────────────────────────────────────────────────

// InquiriesTotal counts contact messages and subscriptions.
// Labels:
//   - kind: "contact" or "newsletter"
//   - result: "stored", "error" or "dropped"
var InquiriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_total",
		Help:      "Total number of inquiries by kind and outcome.",
	},
	[]string{"kind", "result"},
)

// InquiryQueueDepth tracks the number of inquiries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var InquiryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inquiry_queue_depth",
		Help:      "Current number of inquiries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
