package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/elevenlabs-stt/webhook"
)

// Message headers set on every published delivery.
const (
	HeaderEventType      = "event-type"
	HeaderEventTimestamp = "event-timestamp"
	HeaderContentType    = "content-type"
)

// WebhookHandler returns a webhook callback that publishes each delivery
// keyed by request ID, so deliveries for one request share a partition.
func (p *Producer) WebhookHandler() webhook.HandlerFunc {
	return func(ctx context.Context, ev *webhook.Event) error {
		msg, err := eventMessage(ev)
		if err != nil {
			return err
		}
		return p.WriteMessages(ctx, msg)
	}
}

func eventMessage(ev *webhook.Event) (kafkago.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode event %s: %w", ev.Data.RequestID, err)
	}
	return kafkago.Message{
		Key:   []byte(ev.Data.RequestID),
		Value: value,
		Headers: []kafkago.Header{
			{Key: HeaderEventType, Value: []byte(ev.Type)},
			{Key: HeaderEventTimestamp, Value: []byte(strconv.FormatInt(ev.EventTimestamp, 10))},
			{Key: HeaderContentType, Value: []byte("application/json")},
		},
	}, nil
}
