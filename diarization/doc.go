// Package diarization answers "who spoke when".
//
// The elevenlabs backend in transcription/elevenlabs implements Provider by
// transcribing with diarization enabled, so each segment carries its text:
//
//	reg := diarization.NewRegistry()
//	reg.RegisterFactory(elevenlabs.ProviderName, elevenlabs.DiarizerFactory())
//	p, _ := reg.Create(elevenlabs.ProviderName, map[string]any{"api_key": key})
//	result, err := p.Diarize(ctx, diarization.DiarizationRequest{AudioPath: "meeting.mp3"})
package diarization
