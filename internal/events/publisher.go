package events

import (
	"context"
	"fmt"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/kafka"
)

const (
	ChannelDefault = "default"

	EventMessageReceived = "message_received"
)

// MessageReceived is the payload mirrored onto the notification channel when
// a message is sent. Identity strings are carried as supplied by the caller.
type MessageReceived struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

// Publisher broadcasts events to a logical channel. Delivery is best-effort:
// callers must not fail their own operation on a publish error.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

// KafkaPublisher maps logical channels onto kafka topics. The event name
// travels as the record key so consumers can dispatch without decoding.
type KafkaPublisher struct {
	producers map[string]*kafka.Producer
}

func NewKafkaPublisher(brokers []string, topics map[string]string) *KafkaPublisher {
	producers := make(map[string]*kafka.Producer, len(topics))
	for channel, topic := range topics {
		producers[channel] = kafka.NewProducer(brokers, topic)
	}
	return &KafkaPublisher{producers: producers}
}

func (p *KafkaPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	prod, ok := p.producers[channel]
	if !ok {
		return fmt.Errorf("unknown channel %q", channel)
	}
	return prod.Publish(ctx, event, payload)
}

func (p *KafkaPublisher) Close() error {
	var firstErr error
	for _, prod := range p.producers {
		if err := prod.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
