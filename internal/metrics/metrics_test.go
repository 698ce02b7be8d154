package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	m := New()

	m.PromoApplied(ResultApplied)
	m.PromoApplied(ResultApplied)
	m.PromoApplied(ResultInvalid)
	m.CheckoutSubmitted(ResultSuccess)
	m.PricingClamped()
	m.OrderEvent(ResultPublished)

	if got := testutil.ToFloat64(m.promoApplications.WithLabelValues(ResultApplied)); got != 2 {
		t.Fatalf("expected 2 applied promos, got %v", got)
	}
	if got := testutil.ToFloat64(m.promoApplications.WithLabelValues(ResultInvalid)); got != 1 {
		t.Fatalf("expected 1 invalid promo, got %v", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues(ResultSuccess)); got != 1 {
		t.Fatalf("expected 1 submission, got %v", got)
	}
	if got := testutil.ToFloat64(m.pricingClamped); got != 1 {
		t.Fatalf("expected 1 clamp, got %v", got)
	}
	if got := testutil.ToFloat64(m.orderEvents.WithLabelValues(ResultPublished)); got != 1 {
		t.Fatalf("expected 1 published event, got %v", got)
	}
}

func TestObserveHTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/checkout/:id", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/checkout/:id", http.MethodGet, "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", http.MethodGet, "404")); got != 1 {
		t.Fatalf("expected unmatched route counted, got %v", got)
	}
}

func TestInstancesUseSeparateRegistries(t *testing.T) {
	first := New()
	second := New()
	first.PricingClamped()
	if got := testutil.ToFloat64(second.pricingClamped); got != 0 {
		t.Fatalf("expected independent registries, got %v", got)
	}
	if first.Registry() == second.Registry() {
		t.Fatal("expected distinct registries")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.PricingClamped()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "checkout_pricing_clamped_total 1") {
		t.Fatalf("expected clamp counter in output, got %s", body)
	}
}
