// Package metrics defines and registers the custom Prometheus metrics of the
// TaskBoard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// Rejection reasons used as the "reason" label of UserRequestsRejectedTotal.
const (
	ReasonValidation       = "validation"
	ReasonInvalidID        = "invalid_id"
	ReasonNotFound         = "not_found"
	ReasonMalformedRequest = "malformed_request"
	ReasonDuplicateName    = "duplicate_name"
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts users successfully persisted through the API.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UserRequestsRejectedTotal counts user requests answered with a 4xx status.
// Label:
//   - reason: one of the Reason* constants
var UserRequestsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_requests_rejected_total",
		Help:      "Total number of user requests rejected, labelled by reason.",
	},
	[]string{"reason"},
)
