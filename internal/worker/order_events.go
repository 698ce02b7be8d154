package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/metrics"
)

// EventPublisher delivers a single order placed event.
type EventPublisher interface {
	Publish(ctx context.Context, event model.OrderPlacedEvent) error
}

// EventMetrics records delivery outcomes.
type EventMetrics interface {
	OrderEvent(result string)
}

const (
	publishAttempts = 3
	publishBackoff  = 200 * time.Millisecond
	publishTimeout  = 10 * time.Second
)

// OrderEventDispatcher publishes order placed events from a bounded queue with
// a fixed pool of workers. Stop drains whatever is already queued.
type OrderEventDispatcher struct {
	publisher EventPublisher
	metrics   EventMetrics
	workers   int
	backoff   time.Duration
	logger    *slog.Logger

	jobs   chan model.OrderPlacedEvent
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	cancel context.CancelFunc
}

// NewOrderEventDispatcher constructs the dispatcher worker pool.
func NewOrderEventDispatcher(publisher EventPublisher, m EventMetrics, workers, queueSize int, logger *slog.Logger) *OrderEventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderEventDispatcher{
		publisher: publisher,
		metrics:   m,
		workers:   workers,
		backoff:   publishBackoff,
		logger:    logger,
		jobs:      make(chan model.OrderPlacedEvent, queueSize),
	}
}

// Start launches the workers. The run context outlives ctx cancellation so a
// start deadline does not stop delivery.
func (d *OrderEventDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil || d.closed {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Enqueue queues event without blocking. It reports false when the queue is
// full or the dispatcher is stopped.
func (d *OrderEventDispatcher) Enqueue(event model.OrderPlacedEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.record(metrics.ResultQueueFull)
		return false
	}
	select {
	case d.jobs <- event:
		return true
	default:
		d.logger.Warn("order event queue full", slog.String("order_id", event.OrderID))
		d.record(metrics.ResultQueueFull)
		return false
	}
}

// Stop refuses new events and waits for queued ones to be handled. ctx bounds
// the wait; in-flight publishes are cancelled once it is done.
func (d *OrderEventDispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	cancel := d.cancel
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("order event dispatcher stopped before queue drained", slog.Int("pending", len(d.jobs)))
	}
	cancel()
	<-done
}

// Pending reports how many events wait in the queue.
func (d *OrderEventDispatcher) Pending() int {
	return len(d.jobs)
}

func (d *OrderEventDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.jobs {
		d.handle(ctx, event)
	}
}

func (d *OrderEventDispatcher) handle(ctx context.Context, event model.OrderPlacedEvent) {
	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err = d.publisher.Publish(publishCtx, event)
		cancel()
		if err == nil {
			d.record(metrics.ResultPublished)
			return
		}
		if ctx.Err() != nil || attempt == publishAttempts {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(d.backoff * time.Duration(attempt)):
		}
	}
	d.record(metrics.ResultPublishFail)
	d.logger.Error("order event publish failed",
		slog.String("order_id", event.OrderID),
		slog.Int64("user_id", event.UserID),
		slog.String("error", err.Error()),
	)
}

func (d *OrderEventDispatcher) record(result string) {
	if d.metrics != nil {
		d.metrics.OrderEvent(result)
	}
}
