// Package transcription defines a backend-neutral interface for
// speech-to-text providers and the types they exchange.
//
// Backends live in sub-packages and register with a provider.Manager:
//
//	mgr := transcription.NewManager()
//	mgr.Register(elevenlabs.ProviderName, elevenlabs.Factory())
//	if err := mgr.Initialize(elevenlabs.ProviderName, map[string]any{"api_key": key}); err != nil {
//	    return err
//	}
//	resp, err := transcription.Transcribe(ctx, mgr, transcription.TranscriptionRequest{AudioPath: "talk.mp3"})
//
// # Backends
//
//   - transcription/elevenlabs: the ElevenLabs speech-to-text API
package transcription
