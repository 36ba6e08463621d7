// Package kafka publishes order lifecycle events to a Kafka topic so
// downstream consumers (kitchen display, notifications) can react without
// polling the API.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

// Topic carries every order event; messages are keyed by order id so all
// events for one order land in the same partition, in order.
const Topic = "orders.events"

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(broker string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
