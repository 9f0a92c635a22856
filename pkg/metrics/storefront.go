package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records catalog queries, cart mutations and promo
// applications. A nil or unregistered value is a no-op.
type StorefrontMetrics struct {
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cartMutations *prometheus.CounterVec
	promoApplies  *prometheus.CounterVec
	sessions      prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_listing_queries_total",
		Help: "Catalog queries by sort key and page outcome.",
	}, []string{"sort", "outcome"})
	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_listing_query_duration_seconds",
		Help:    "Duration of catalog queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Cart mutations by operation and outcome.",
	}, []string{"op", "outcome"})
	promoApplies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_promo_apply_total",
		Help: "Promo code applications by result.",
	}, []string{"result"})
	sessions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sessions_created_total",
		Help: "Shopping sessions created.",
	})
	reg.MustRegister(queries, queryDuration, cartMutations, promoApplies, sessions)
	return &StorefrontMetrics{
		queries:       queries,
		queryDuration: queryDuration,
		cartMutations: cartMutations,
		promoApplies:  promoApplies,
		sessions:      sessions,
	}
}

// ObserveQuery records one catalog query.
func (m *StorefrontMetrics) ObserveQuery(sort, outcome string, duration time.Duration) {
	if m == nil || m.queries == nil {
		return
	}
	sort = normalizeLabel(sort)
	m.queries.WithLabelValues(sort, normalizeLabel(outcome)).Inc()
	m.queryDuration.WithLabelValues(sort).Observe(duration.Seconds())
}

// IncCartMutation counts one cart mutation.
func (m *StorefrontMetrics) IncCartMutation(op, outcome string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// IncPromoApply counts one promo application attempt.
func (m *StorefrontMetrics) IncPromoApply(result string) {
	if m == nil || m.promoApplies == nil {
		return
	}
	m.promoApplies.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncSessionCreated counts a new shopping session.
func (m *StorefrontMetrics) IncSessionCreated() {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
