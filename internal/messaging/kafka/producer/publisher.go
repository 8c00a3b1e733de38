package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
)

// Publisher ships a single message to a topic.
//
//go:generate mockgen -destination=mock/publisher_mock.go -package=mock . Publisher
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}

type kafkaPublisher struct {
	writer *kafkago.Writer
}

func NewKafkaPublisher(writer *kafkago.Writer) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}
