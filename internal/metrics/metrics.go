// Package metrics exposes prometheus collectors for the checkout service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Result labels shared by the checkout counters.
const (
	ResultApplied     = "applied"
	ResultInvalid     = "invalid"
	ResultMinNotMet   = "min_not_met"
	ResultSuccess     = "success"
	ResultRejected    = "rejected"
	ResultError       = "error"
	ResultInProgress  = "in_progress"
	ResultQueueFull   = "queue_full"
	ResultPublished   = "published"
	ResultPublishFail = "failed"
)

// Module provides a Metrics instance with its own registry.
var Module = fx.Provide(New)

// Metrics groups every collector the service records to.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	promoApplications *prometheus.CounterVec
	submissions       *prometheus.CounterVec
	pricingClamped    prometheus.Counter
	orderEvents       *prometheus.CounterVec
}

// New registers collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_http_requests_total",
				Help: "HTTP requests by route, method and status code.",
			},
			[]string{"path", "method", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "checkout_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		promoApplications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_promo_applications_total",
				Help: "Promo code application attempts by result.",
			},
			[]string{"result"},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_submissions_total",
				Help: "Checkout submissions by result.",
			},
			[]string{"result"},
		),
		pricingClamped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "checkout_pricing_clamped_total",
				Help: "Pricing recomputations whose total was clamped to zero.",
			},
		),
		orderEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_order_events_total",
				Help: "Order placed events by delivery result.",
			},
			[]string{"result"},
		),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records a finished request.
func (m *Metrics) ObserveHTTP(method, path string, code int, elapsed time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

func (m *Metrics) PromoApplied(result string) {
	m.promoApplications.WithLabelValues(result).Inc()
}

func (m *Metrics) CheckoutSubmitted(result string) {
	m.submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) PricingClamped() {
	m.pricingClamped.Inc()
}

func (m *Metrics) OrderEvent(result string) {
	m.orderEvents.WithLabelValues(result).Inc()
}
