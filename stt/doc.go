// Package stt is a client for the ElevenLabs speech-to-text endpoint.
//
// A call is assembled with a value builder and sent as one multipart POST:
//
//	client, err := stt.New(os.Getenv("ELEVENLABS_API_KEY"))
//	if err != nil {
//		return err
//	}
//	resp, err := client.SpeechToText(audio).
//		Model(stt.ModelScribeV1).
//		LanguageCode("en").
//		Diarize(true).
//		Execute(ctx)
//
// Parameters left unset are never sent. Every failure is an *Error whose Kind
// tells rate limits, authentication and quota problems apart from other API
// and transport errors. Local validation, retries and rate limiting are off
// unless enabled with options.
package stt
