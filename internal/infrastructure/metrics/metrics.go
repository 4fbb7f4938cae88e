package metrics

import (
	"errors"
	"time"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MembershipToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brand_membership_toggles_total",
		Help: "Membership toggles by relation and outcome.",
	}, []string{"relation", "result"})

	MembershipToggleRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brand_membership_toggle_retries_total",
		Help: "Toggle attempts retried after a store conflict.",
	}, []string{"relation"})

	MembershipToggleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brand_membership_toggle_duration_seconds",
		Help:    "Wall time of a toggle including retries.",
		Buckets: prometheus.DefBuckets,
	}, []string{"relation"})

	BrandCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brand_cache_requests_total",
		Help: "Brand cache lookups by kind (detail, list) and result (hit, miss, error).",
	}, []string{"kind", "result"})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brand_event_publish_failures_total",
		Help: "Membership events that could not be published.",
	})
)

// ToggleResult maps a toggle error to a low-cardinality label.
func ToggleResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entity.ErrSelfRelation):
		return "self_relation"
	case errors.Is(err, entity.ErrBrandNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrConflict):
		return "conflict"
	case errors.Is(err, entity.ErrStoreUnavailable):
		return "unavailable"
	case errors.Is(err, entity.ErrInvalidRelation):
		return "invalid_relation"
	default:
		return "error"
	}
}

// ObserveToggle records the outcome and latency of one toggle call.
func ObserveToggle(relation entity.Relation, err error, elapsed time.Duration) {
	MembershipToggles.WithLabelValues(string(relation), ToggleResult(err)).Inc()
	MembershipToggleDuration.WithLabelValues(string(relation)).Observe(elapsed.Seconds())
}
