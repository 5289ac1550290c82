package sse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kbukum/elevenlabs-stt/webhook"
)

// WebhookHandler returns a webhook callback that forwards each delivery to
// the subscribers watching its request ID.
func (h *Hub) WebhookHandler() webhook.HandlerFunc {
	return func(_ context.Context, ev *webhook.Event) error {
		data, err := json.Marshal(ev.Data)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", ev.Data.RequestID, err)
		}
		h.Broadcast(ev.Data.RequestID, Event{
			ID:   ev.Data.RequestID,
			Type: EventTypeTranscription,
			Data: data,
		})
		return nil
	}
}
