// Package elevenlabs implements transcription.Provider on top of the stt
// client.
//
// The provider always requests word timestamps and rebuilds speaker
// segments from them, so diarized output maps onto transcription.Segment
// without a second pass:
//
//	mgr := transcription.NewManager()
//	mgr.Register(elevenlabs.ProviderName, elevenlabs.Factory())
//	err := mgr.Initialize(elevenlabs.ProviderName, map[string]any{
//	    "api_key": os.Getenv("ELEVENLABS_API_KEY"),
//	    "timeout": "2m",
//	})
//
// Supported map keys: api_key, base_url, model, language, timeout,
// tag_audio_events, validate_requests and segment_gap (seconds).
package elevenlabs
