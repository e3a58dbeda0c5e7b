package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
)

//go:generate mockgen -source=events.go -destination=mock_events.go -package=events

type Kind string

const (
	KindTransaction Kind = "transaction"
	KindCommission  Kind = "commission"
	KindActivation  Kind = "promo_activation"
	KindClaim       Kind = "daily_bonus_claim"
)

type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher ships committed ledger facts downstream. Delivery is best effort;
// the audit tables remain the source of truth.
type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func newEvent(kind Kind, userID int64, at time.Time, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		UserID:     userID,
		OccurredAt: at,
		Payload:    payload,
	}
}

func Transaction(t domain.Transaction) Event {
	return newEvent(KindTransaction, t.UserID, t.CreatedAt, t)
}

func Commission(c domain.Commission) Event {
	return newEvent(KindCommission, c.ReferrerID, c.CreatedAt, c)
}

func Activation(a domain.PromoActivation) Event {
	return newEvent(KindActivation, a.UserID, a.ActivatedAt, a)
}

func Claim(c domain.DailyBonusClaim) Event {
	return newEvent(KindClaim, c.UserID, c.ClaimedAt, c)
}

type KafkaPublisher struct {
	writer  Writer
	timeout time.Duration
}

const batchTimeout = 10 * time.Millisecond

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewWithWriter(newWriter(brokers, topic))
}

// newWriter returns an async writer: WriteMessages only enqueues, and
// delivery failures surface through onDelivered.
func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: batchTimeout,
		Async:        true,
		Completion:   onDelivered,
	}
}

func onDelivered(msgs []kafka.Message, err error) {
	if err == nil {
		return
	}
	zap.L().Error("failed to deliver events", zap.Int("count", len(msgs)), zap.Error(err))
	metrics.EventPublishErrors.Add(float64(len(msgs)))
}

func NewWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			zap.L().Error("failed to marshal event", zap.String("event_id", ev.ID), zap.Error(err))
			metrics.EventPublishErrors.Inc()
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatInt(ev.UserID, 10)),
			Value: value,
			Time:  ev.OccurredAt,
		})
	}
	if len(msgs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		zap.L().Error("failed to publish events", zap.Int("count", len(msgs)), zap.Error(err))
		metrics.EventPublishErrors.Add(float64(len(msgs)))
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop drops every event; used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) {}
