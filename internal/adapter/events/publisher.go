package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

const eventTypeOrderPlaced = "order.placed"

// Publisher delivers order placed events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderPlacedEvent) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON messages keyed by order id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return newKafkaPublisher(writer, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// Publish writes event. Messages of one order always land on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event model.OrderPlacedEvent) error {
	value, err := json.Marshal(newPayload(event))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  event.PlacedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventTypeOrderPlaced)},
			{Key: "user-id", Value: []byte(strconv.FormatInt(event.UserID, 10))},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates NoopPublisher.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, event model.OrderPlacedEvent) error {
	p.logger.Debug("order event not published, no brokers configured", slog.String("order_id", event.OrderID))
	return ctx.Err()
}

func (p *NoopPublisher) Close() error {
	return nil
}

type payload struct {
	Type           string       `json:"type"`
	OrderID        string       `json:"orderId"`
	UserID         int64        `json:"userId"`
	Total          model.Amount `json:"total"`
	PointsEarned   int64        `json:"pointsEarned"`
	PointsRedeemed int64        `json:"pointsRedeemed"`
	CouponCode     string       `json:"couponCode,omitempty"`
	PlacedAt       time.Time    `json:"placedAt"`
}

func newPayload(event model.OrderPlacedEvent) payload {
	return payload{
		Type:           eventTypeOrderPlaced,
		OrderID:        event.OrderID,
		UserID:         event.UserID,
		Total:          model.NewAmount(event.Total),
		PointsEarned:   event.PointsEarned,
		PointsRedeemed: event.PointsRedeemed,
		CouponCode:     event.CouponCode,
		PlacedAt:       event.PlacedAt.UTC(),
	}
}
