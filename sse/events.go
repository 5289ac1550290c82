package sse

import (
	"bytes"
	"fmt"
	"io"
)

// Event types.
const (
	// EventTypeConnected is sent once when a subscriber connects.
	EventTypeConnected = "connected"
	// EventTypeTranscription carries a transcript delivered by webhook.
	EventTypeTranscription = "transcription"
)

// Event is one server-sent event.
type Event struct {
	ID   string
	Type string
	Data []byte
}

// WriteTo writes e in the text/event-stream format. Multi-line data is split
// across data fields.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if e.ID != "" {
		fmt.Fprintf(&buf, "id: %s\n", e.ID)
	}
	if e.Type != "" {
		fmt.Fprintf(&buf, "event: %s\n", e.Type)
	}
	for _, line := range bytes.Split(e.Data, []byte("\n")) {
		fmt.Fprintf(&buf, "data: %s\n", line)
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}
