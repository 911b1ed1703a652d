// Package metrics defines and registers all custom Prometheus metrics for the
// civic issue API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto; the /metrics route is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "civic"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: internal failure taxonomy ("missing_credential", "expired",
//     "invalid_signature", "malformed_token", "missing_subject", ...). The
//     HTTP response never exposes this; the metric and logs do.
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by internal reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts by outcome.
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

// SignupsTotal counts successful account creations.
// Label:
//   - role: "citizen" or "employee"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ── Issue metrics ─────────────────────────────────────────────────────────────

// IssuesCreatedTotal counts newly reported issues.
// Label:
//   - category: issue category ("roads", "streetlights", ...)
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues reported, by category.",
	},
	[]string{"category"},
)

// VotesCastTotal counts accepted votes.
// Label:
//   - vote_type: "upvote" or "downvote"
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes accepted, by direction.",
	},
	[]string{"vote_type"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityQueueDepth tracks pending entries per dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long recording one entry takes.
// Label:
//   - kind: activity kind ("created", "status_change", "vote", "comment")
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of audit-trail recording from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
