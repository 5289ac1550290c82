package transcription

// TranscriptionRequest holds backend-neutral parameters for one call.
// Exactly one of AudioPath, Audio and AudioURL is used, in that order.
type TranscriptionRequest struct {
	// AudioPath is a local file to read and upload.
	AudioPath string `json:"audio_path,omitempty"`
	// Audio is an in-memory payload.
	Audio []byte `json:"-"`
	// AudioURL is a remote file the backend fetches itself.
	AudioURL string `json:"audio_url,omitempty"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
	// Model overrides the backend's configured model.
	Model string `json:"model,omitempty"`
	// Diarize asks the backend to label speakers.
	Diarize bool `json:"diarize,omitempty"`
	// NumSpeakers is the expected speaker count, 0 for unknown.
	NumSpeakers int `json:"num_speakers,omitempty"`
}

// TranscriptionResponse holds the result of a transcription call.
type TranscriptionResponse struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments are time-aligned runs of speech, split on speaker changes.
	Segments []Segment `json:"segments,omitempty"`
	// Words are the timed words without spacing tokens.
	Words []Word `json:"words,omitempty"`
	// Duration is the end of the last timed word in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
	// LanguageProbability is the backend's confidence in Language.
	LanguageProbability float64 `json:"language_probability,omitempty"`
}

// Segment is a time-aligned portion of a transcript.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Word is a single timed word.
type Word struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
	// Event marks non-speech tokens such as (laughter).
	Event bool `json:"event,omitempty"`
}
