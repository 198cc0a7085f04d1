package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	TopicOrderEvents   = "order-events"
	TopicDisputeEvents = "dispute-events"
	TopicPayoutEvents  = "payout-events"
)

// Publisher is what the usecases publish through; tests swap in a fake.
type Publisher interface {
	PublishOrder(event OrderEvent) error
	PublishDispute(event DisputeEvent) error
	PublishPayout(event PayoutEvent) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) Publish(topic string, msgs ...domain.Message) error {
	var km []kafka.Message
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(context.Background(), km...)
}

func (k *KafkaPublisher) PublishOrder(event OrderEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.Publish(TopicOrderEvents, domain.Message{Key: []byte(event.OrderID), Value: v})
}

func (k *KafkaPublisher) PublishDispute(event DisputeEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.Publish(TopicDisputeEvents, domain.Message{Key: []byte(event.OrderID), Value: v})
}

func (k *KafkaPublisher) PublishPayout(event PayoutEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.Publish(TopicPayoutEvents, domain.Message{Key: []byte(event.UserID), Value: v})
}
