package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// CartProviderStub returns a configured cart snapshot.
type CartProviderStub struct {
	CartFn   func(context.Context, int64) (*model.CartSnapshot, error)
	Snapshot *model.CartSnapshot
	Err      error
}

// Cart returns the override result, the configured snapshot, or an empty cart.
func (s CartProviderStub) Cart(ctx context.Context, userID int64) (*model.CartSnapshot, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Snapshot != nil {
		return s.Snapshot, nil
	}
	return &model.CartSnapshot{}, nil
}

// ShippingProviderStub returns configured shipping methods.
type ShippingProviderStub struct {
	MethodsFn func(context.Context) ([]model.ShippingMethod, error)
	Methods   []model.ShippingMethod
	Err       error
}

// ShippingMethods returns the override result or the configured list.
func (s ShippingProviderStub) ShippingMethods(ctx context.Context) ([]model.ShippingMethod, error) {
	if s.MethodsFn != nil {
		return s.MethodsFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Methods, nil
}

// OrderSubmitterStub records order requests.
type OrderSubmitterStub struct {
	SubmitFn func(context.Context, model.OrderRequest) (*model.OrderConfirmation, error)

	mu       sync.Mutex
	requests []model.OrderRequest
}

// SubmitOrder records req and returns the override result or a confirmation.
func (s *OrderSubmitterStub) SubmitOrder(ctx context.Context, req model.OrderRequest) (*model.OrderConfirmation, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, req)
	}
	return &model.OrderConfirmation{OrderID: "ord-1", Status: "CREATED", Total: req.TotalAmount}, nil
}

// Requests returns a copy of the recorded requests.
func (s *OrderSubmitterStub) Requests() []model.OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderRequest(nil), s.requests...)
}

// EventQueueStub collects enqueued events.
type EventQueueStub struct {
	Reject bool

	mu     sync.Mutex
	events []model.OrderPlacedEvent
}

// Enqueue records event unless Reject is set.
func (s *EventQueueStub) Enqueue(event model.OrderPlacedEvent) bool {
	if s.Reject {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return true
}

// Events returns a copy of the recorded events.
func (s *EventQueueStub) Events() []model.OrderPlacedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderPlacedEvent(nil), s.events...)
}

// MetricsStub counts checkout metric calls by result label.
type MetricsStub struct {
	mu          sync.Mutex
	Promos      map[string]int
	Submissions map[string]int
	Events      map[string]int
	Clamped     int
}

func (s *MetricsStub) PromoApplied(result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Promos == nil {
		s.Promos = make(map[string]int)
	}
	s.Promos[result]++
}

func (s *MetricsStub) CheckoutSubmitted(result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Submissions == nil {
		s.Submissions = make(map[string]int)
	}
	s.Submissions[result]++
}

func (s *MetricsStub) PricingClamped() {
	s.mu.Lock()
	s.Clamped++
	s.mu.Unlock()
}

func (s *MetricsStub) OrderEvent(result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Events == nil {
		s.Events = make(map[string]int)
	}
	s.Events[result]++
}

// EventCount returns the number of order event outcomes with result.
func (s *MetricsStub) EventCount(result string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Events[result]
}

// PromoCount returns the number of promo attempts with result.
func (s *MetricsStub) PromoCount(result string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Promos[result]
}

// SubmissionCount returns the number of submissions with result.
func (s *MetricsStub) SubmissionCount(result string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Submissions[result]
}

// Money parses a decimal literal, panicking on malformed input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ClampedCount returns how many clamped totals were recorded.
func (s *MetricsStub) ClampedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Clamped
}

// EventPublisherStub records published events.
type EventPublisherStub struct {
	PublishFn func(context.Context, model.OrderPlacedEvent) error

	mu        sync.Mutex
	published []model.OrderPlacedEvent
	calls     int
}

// Publish counts the call and records event when the override succeeds.
func (s *EventPublisherStub) Publish(ctx context.Context, event model.OrderPlacedEvent) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.PublishFn != nil {
		if err := s.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.published = append(s.published, event)
	s.mu.Unlock()
	return nil
}

func (s *EventPublisherStub) Close() error {
	return nil
}

// Published returns a copy of the delivered events.
func (s *EventPublisherStub) Published() []model.OrderPlacedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderPlacedEvent(nil), s.published...)
}

// Calls reports how many publish attempts were made.
func (s *EventPublisherStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
