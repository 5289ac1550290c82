package stt

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const sampleResponse = `{
	"text": "Hello there.",
	"language_code": "en",
	"language_probability": 0.98,
	"transcription_id": "tr_1",
	"words": [
		{"text": "Hello", "start": 0.0, "end": 0.4, "type": "word", "speaker_id": "speaker_0", "logprob": -0.1},
		{"text": " ", "start": 0.4, "end": 0.5, "type": "spacing", "speaker_id": "speaker_0"},
		{"text": "there.", "start": 0.5, "end": 0.9, "type": "word", "speaker_id": "speaker_1",
		 "characters": [{"text": "t", "start": 0.5, "end": 0.55}]},
		{"text": "(laughs)", "type": "audio_event"}
	]
}`

func TestResponse_Decode(t *testing.T) {
	resp, err := decodeResponse([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text == nil || *resp.Text != "Hello there." {
		t.Errorf("unexpected text: %v", resp.Text)
	}
	if resp.LanguageProbability == nil || *resp.LanguageProbability != 0.98 {
		t.Errorf("unexpected language probability: %v", resp.LanguageProbability)
	}
	if len(resp.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(resp.Words))
	}
	if w := resp.Words[2]; len(w.Characters) != 1 || *w.Characters[0].Text != "t" {
		t.Errorf("expected character timing on third word, got %+v", w.Characters)
	}
	if w := resp.Words[3]; w.Start != nil || w.SpeakerID != nil {
		t.Errorf("expected absent timing on audio event, got %+v", w)
	}
}

func TestResponse_Decode_OnlyText(t *testing.T) {
	resp, err := decodeResponse([]byte(`{"text":"hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *resp.Text != "hello" {
		t.Errorf("expected hello, got %s", *resp.Text)
	}
	if resp.LanguageCode != nil || resp.LanguageProbability != nil || resp.Words != nil {
		t.Errorf("expected other fields absent, got %+v", resp)
	}
}

func TestResponse_Decode_EmptyObject(t *testing.T) {
	resp, err := decodeResponse([]byte(" {} "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != nil {
		t.Errorf("expected nil text, got %v", *resp.Text)
	}
}

func TestResponse_Decode_Invalid(t *testing.T) {
	for _, body := range []string{"", "not json", "null", "[]", `"text"`, `{"text": 5}`} {
		t.Run(body, func(t *testing.T) {
			if _, err := decodeResponse([]byte(body)); err == nil {
				t.Errorf("expected error for %q", body)
			}
		})
	}
}

func TestResponse_RoundTripOmitsAbsent(t *testing.T) {
	resp, err := decodeResponse([]byte(`{"text":"hi","words":[{"text":"hi","type":"word"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("expected no nulls, got %s", data)
	}
	if got, want := string(data), `{"text":"hi","words":[{"text":"hi","type":"word"}]}`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResponse_RoundTripKeepsEmptyArrays(t *testing.T) {
	for _, body := range []string{
		`{"text":"x","words":[]}`,
		`{"text":"x","words":[{"text":"a","characters":[]}]}`,
	} {
		t.Run(body, func(t *testing.T) {
			first, err := decodeResponse([]byte(body))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			data, err := json.Marshal(first)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != body {
				t.Errorf("expected %s, got %s", body, data)
			}
			second, err := decodeResponse(data)
			if err != nil {
				t.Fatalf("decode again: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed the response: %+v vs %+v", first, second)
			}
		})
	}
}

func TestResponse_Speakers(t *testing.T) {
	resp, _ := decodeResponse([]byte(sampleResponse))
	got := resp.Speakers()
	if len(got) != 2 || got[0] != "speaker_0" || got[1] != "speaker_1" {
		t.Errorf("expected [speaker_0 speaker_1], got %v", got)
	}
}

func TestResponse_Duration(t *testing.T) {
	resp, _ := decodeResponse([]byte(sampleResponse))
	if d := resp.Duration(); d != 0.9 {
		t.Errorf("expected 0.9, got %v", d)
	}
	if d := (&Response{}).Duration(); d != 0 {
		t.Errorf("expected 0 for empty response, got %v", d)
	}
}
