package diarization

// DiarizationRequest holds parameters for a diarization call. Exactly one of
// AudioPath, Audio and AudioURL is used, in that order.
type DiarizationRequest struct {
	AudioPath string `json:"audio_path,omitempty"`
	Audio     []byte `json:"-"`
	AudioURL  string `json:"audio_url,omitempty"`
	// NumSpeakers is the expected number of speakers, 0 to auto-detect.
	NumSpeakers int `json:"num_speakers,omitempty"`
	// Threshold tunes how readily a new speaker is detected, in (0, 1).
	// It only applies when NumSpeakers is 0.
	Threshold float64 `json:"threshold,omitempty"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
}

// DiarizationResponse holds the result of a diarization call.
type DiarizationResponse struct {
	// Segments are speaker turns in time order.
	Segments []Segment `json:"segments"`
	// NumSpeakers is the number of distinct speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Segment is one speaker turn.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	// Text is what was said, when the backend transcribes too.
	Text string `json:"text,omitempty"`
}

// Speakers returns the distinct speaker labels in order of first appearance.
func (r *DiarizationResponse) Speakers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range r.Segments {
		if s.Speaker == "" || seen[s.Speaker] {
			continue
		}
		seen[s.Speaker] = true
		out = append(out, s.Speaker)
	}
	return out
}

// SpeakingTime sums segment durations per speaker, in seconds.
func (r *DiarizationResponse) SpeakingTime() map[string]float64 {
	out := make(map[string]float64)
	for _, s := range r.Segments {
		out[s.Speaker] += s.End - s.Start
	}
	return out
}
