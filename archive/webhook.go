package archive

import (
	"context"
	"time"

	"github.com/kbukum/elevenlabs-stt/webhook"
)

// Handler returns a webhook callback that archives every transcription
// event under its request ID. A storage failure is returned, so the delivery
// is answered with an error and ElevenLabs retries it.
func (a *Archive) Handler() webhook.HandlerFunc {
	return func(ctx context.Context, ev *webhook.Event) error {
		rec := &Record{
			ID:            ev.Data.RequestID,
			Metadata:      ev.Data.WebhookMetadata,
			Transcription: ev.Data.Transcription,
		}
		if ev.EventTimestamp > 0 {
			rec.ReceivedAt = time.Unix(ev.EventTimestamp, 0).UTC()
		}
		return a.Save(ctx, rec)
	}
}
