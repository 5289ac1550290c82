package transcription

import (
	"context"

	"github.com/kbukum/elevenlabs-stt/provider"
)

// Provider is the interface transcription backends implement.
type Provider interface {
	provider.Provider

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
}
