package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"reservepro/internal/domain"
)

// ChangePublisher emits a change event after every successful reservation
// write. Events are keyed by restaurant name so one scope's changes stay
// ordered.
type ChangePublisher struct {
	Writer *kafka.Writer
}

func NewChangePublisher(writer *kafka.Writer) *ChangePublisher {
	return &ChangePublisher{Writer: writer}
}

func (p *ChangePublisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RestaurantName),
		Value: payload,
	})
}
