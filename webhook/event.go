package webhook

import (
	"encoding/json"

	"github.com/kbukum/elevenlabs-stt/stt"
)

// EventTypeTranscription is the type of a completed transcription delivery.
const EventTypeTranscription = "speech_to_text_transcription"

// Event is one webhook delivery.
type Event struct {
	Type string `json:"type"`
	// EventTimestamp is the Unix time the event was created.
	EventTimestamp int64     `json:"event_timestamp"`
	Data           EventData `json:"data"`
}

// EventData is the payload of a transcription event.
type EventData struct {
	RequestID     string       `json:"request_id"`
	Transcription stt.Response `json:"transcription"`
	// WebhookMetadata echoes the metadata sent with the request, as-is.
	WebhookMetadata json.RawMessage `json:"webhook_metadata,omitempty"`
}

// Metadata decodes the echoed webhook metadata into v. It is a no-op when
// the request carried none.
func (d *EventData) Metadata(v any) error {
	if len(d.WebhookMetadata) == 0 || string(d.WebhookMetadata) == "null" {
		return nil
	}
	// Metadata may arrive as a JSON object or as a string holding one.
	var s string
	if err := json.Unmarshal(d.WebhookMetadata, &s); err == nil {
		return json.Unmarshal([]byte(s), v)
	}
	return json.Unmarshal(d.WebhookMetadata, v)
}
