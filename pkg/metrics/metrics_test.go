package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStorefrontMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.ObserveQuery("rating", "ok", 5*time.Millisecond)
	m.ObserveQuery("rating", "ok", 5*time.Millisecond)
	m.ObserveQuery("", "page_out_of_range", time.Millisecond)
	m.IncCartMutation("set_quantity", "corrected")
	m.IncPromoApply("invalid_code")
	m.IncSessionCreated()

	if got := testutil.ToFloat64(m.queries.WithLabelValues("rating", "ok")); got != 2 {
		t.Fatalf("expected 2 rating queries, got %f", got)
	}
	if got := testutil.ToFloat64(m.queries.WithLabelValues("unknown", "page_out_of_range")); got != 1 {
		t.Fatalf("expected empty sort label to normalize, got %f", got)
	}
	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("set_quantity", "corrected")); got != 1 {
		t.Fatalf("expected 1 cart mutation, got %f", got)
	}
	if got := testutil.ToFloat64(m.promoApplies.WithLabelValues("invalid_code")); got != 1 {
		t.Fatalf("expected 1 promo apply, got %f", got)
	}
	if got := testutil.ToFloat64(m.sessions); got != 1 {
		t.Fatalf("expected 1 session, got %f", got)
	}
	if count := testutil.CollectAndCount(m.queryDuration); count != 2 {
		t.Fatalf("expected 2 duration series, got %d", count)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *StorefrontMetrics
	m.ObserveQuery("rating", "ok", time.Second)
	m.IncCartMutation("remove", "applied")
	m.IncPromoApply("applied")
	m.IncSessionCreated()

	unregistered := NewStorefrontMetrics(nil)
	unregistered.ObserveQuery("rating", "ok", time.Second)

	var h *HTTPMetrics
	h.Observe("GET", "/health/live", 200, time.Millisecond)
	NewHTTPMetrics(nil).Observe("GET", "/health/live", 200, time.Millisecond)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTPMetrics(reg)

	h.Observe("GET", "/api/v1/listings", 200, 10*time.Millisecond)
	h.Observe("GET", "/api/v1/listings", 400, 10*time.Millisecond)

	if got := testutil.ToFloat64(h.requests.WithLabelValues("GET", "/api/v1/listings", "200")); got != 1 {
		t.Fatalf("expected 1 ok request, got %f", got)
	}
	if got := testutil.ToFloat64(h.requests.WithLabelValues("GET", "/api/v1/listings", "400")); got != 1 {
		t.Fatalf("expected 1 bad request, got %f", got)
	}
}
