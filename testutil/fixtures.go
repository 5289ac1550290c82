package testutil

// DiarizedTranscript is a two-speaker response with spacing and an audio
// event, as the API returns it for diarize=true.
const DiarizedTranscript = `{
  "text": "Hi there. (laughs) Hello!",
  "language_code": "en",
  "language_probability": 0.97,
  "words": [
    {"text": "Hi", "start": 0.0, "end": 0.3, "type": "word", "speaker_id": "speaker_0"},
    {"text": " ", "start": 0.3, "end": 0.35, "type": "spacing", "speaker_id": "speaker_0"},
    {"text": "there.", "start": 0.35, "end": 0.8, "type": "word", "speaker_id": "speaker_0"},
    {"text": " ", "start": 0.8, "end": 0.9, "type": "spacing", "speaker_id": "speaker_0"},
    {"text": "(laughs)", "start": 0.9, "end": 1.4, "type": "audio_event", "speaker_id": "speaker_0"},
    {"text": " ", "start": 1.4, "end": 1.5, "type": "spacing", "speaker_id": "speaker_1"},
    {"text": "Hello!", "start": 1.5, "end": 2.1, "type": "word", "speaker_id": "speaker_1"}
  ]
}`
