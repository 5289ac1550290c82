package stt

import "github.com/kbukum/elevenlabs-stt/util"

// Response is a decoded transcription. Keys missing from the service's JSON
// stay nil, and encoding omits them again.
type Response struct {
	Text                *string  `json:"text,omitempty"`
	LanguageCode        *string  `json:"language_code,omitempty"`
	LanguageProbability *float64 `json:"language_probability,omitempty"`
	Words               []Word   `json:"words,omitzero"`
	TranscriptionID     *string  `json:"transcription_id,omitempty"`
}

// Word is one token of the transcript. Type is "word", "spacing" or
// "audio_event".
type Word struct {
	Text      *string  `json:"text,omitempty"`
	Start     *float64 `json:"start,omitempty"`
	End       *float64 `json:"end,omitempty"`
	Logprob   *float64 `json:"logprob,omitempty"`
	Type      *string  `json:"type,omitempty"`
	SpeakerID *string  `json:"speaker_id,omitempty"`
	// ChannelIndex is set when the request used multi-channel mode.
	ChannelIndex *int `json:"channel_index,omitempty"`
	// Characters is set at character granularity.
	Characters []Character `json:"characters,omitzero"`
}

// Character is one character of a word with its own timing.
type Character struct {
	Text  *string  `json:"text,omitempty"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
}

// Speakers returns the distinct speaker ids in order of first appearance.
func (r *Response) Speakers() []string {
	ids := make([]string, 0, len(r.Words))
	for _, w := range r.Words {
		if w.SpeakerID != nil {
			ids = append(ids, *w.SpeakerID)
		}
	}
	return util.Unique(ids)
}

// Duration returns the end offset in seconds of the last timed word, or 0
// when no word carries timing.
func (r *Response) Duration() float64 {
	for i := len(r.Words) - 1; i >= 0; i-- {
		if end := r.Words[i].End; end != nil {
			return *end
		}
	}
	return 0
}
