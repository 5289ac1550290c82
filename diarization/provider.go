package diarization

import (
	"context"

	"github.com/kbukum/elevenlabs-stt/provider"
)

// Provider is the interface that diarization backends implement.
type Provider interface {
	provider.Provider

	// Diarize labels the speakers in the audio.
	Diarize(ctx context.Context, req DiarizationRequest) (*DiarizationResponse, error)
}

// NewRegistry creates a provider registry for diarization backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
