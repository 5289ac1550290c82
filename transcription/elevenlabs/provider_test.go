package elevenlabs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/provider"
	"github.com/kbukum/elevenlabs-stt/stt"
	"github.com/kbukum/elevenlabs-stt/testutil"
	"github.com/kbukum/elevenlabs-stt/transcription"
	"github.com/kbukum/elevenlabs-stt/util"
)

func newTestProvider(t *testing.T, api *testutil.FakeAPI, cfg Config) *Provider {
	t.Helper()
	client, err := stt.NewWithBaseURL("key", api.URL, stt.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return NewProvider(client, cfg)
}

func TestTranscribe_Segments(t *testing.T) {
	api := testutil.NewFakeAPI(t, http.StatusOK, testutil.DiarizedTranscript)
	p := newTestProvider(t, api, Config{})

	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		Audio:       []byte("RIFF"),
		Diarize:     true,
		NumSpeakers: 2,
		Language:    "en",
	})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}

	if resp.Text != "Hi there. (laughs) Hello!" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Language != "en" || resp.LanguageProbability != 0.97 {
		t.Errorf("unexpected language %s/%v", resp.Language, resp.LanguageProbability)
	}
	if resp.Duration != 2.1 {
		t.Errorf("expected duration 2.1, got %v", resp.Duration)
	}
	if len(resp.Words) != 4 {
		t.Fatalf("expected 4 words without spacing, got %d", len(resp.Words))
	}
	if !resp.Words[2].Event || resp.Words[0].Event {
		t.Errorf("expected only the audio event flagged, got %+v", resp.Words)
	}

	if len(resp.Segments) != 2 {
		t.Fatalf("expected a segment per speaker turn, got %+v", resp.Segments)
	}
	first, second := resp.Segments[0], resp.Segments[1]
	if first.Speaker != "speaker_0" || first.Text != "Hi there. (laughs)" || first.Start != 0 || first.End != 1.4 {
		t.Errorf("unexpected first segment %+v", first)
	}
	if second.Speaker != "speaker_1" || second.Text != "Hello!" || second.Start != 1.5 {
		t.Errorf("unexpected second segment %+v", second)
	}

	sent := api.Last(t)
	want := map[string]string{
		"model_id":               stt.DefaultModel,
		"language_code":          "en",
		"diarize":                "true",
		"num_speakers":           "2",
		"timestamps_granularity": "word",
	}
	for k, v := range want {
		if sent.Fields[k] != v {
			t.Errorf("field %s: expected %q, got %q", k, v, sent.Fields[k])
		}
	}
	if string(sent.File) != "RIFF" {
		t.Errorf("expected payload uploaded, got %q", sent.File)
	}
}

func TestTranscribe_AudioSources(t *testing.T) {
	api := testutil.NewFakeAPI(t, http.StatusOK, `{"text":"ok"}`)
	p := newTestProvider(t, api, Config{Model: stt.ModelScribeV1Experimental, TagAudioEvents: true})

	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{AudioPath: path}); err != nil {
		t.Fatalf("path: %v", err)
	}
	sent := api.Last(t)
	if string(sent.File) != "ID3" {
		t.Errorf("expected file contents, got %q", sent.File)
	}
	if sent.Fields["model_id"] != stt.ModelScribeV1Experimental {
		t.Errorf("expected configured model, got %q", sent.Fields["model_id"])
	}
	if sent.Fields["tag_audio_events"] != "true" {
		t.Errorf("expected tag_audio_events, got %q", sent.Fields["tag_audio_events"])
	}

	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		AudioURL: "https://storage.example.com/a.mp3",
		Model:    stt.ModelScribeV1,
	})
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	sent = api.Last(t)
	if sent.File != nil {
		t.Error("expected no file part for a remote URL")
	}
	if sent.Fields["cloud_storage_url"] != "https://storage.example.com/a.mp3" {
		t.Errorf("unexpected url field %q", sent.Fields["cloud_storage_url"])
	}
	if sent.Fields["model_id"] != stt.ModelScribeV1 {
		t.Errorf("expected request model to win, got %q", sent.Fields["model_id"])
	}
}

func TestTranscribe_NoAudio(t *testing.T) {
	api := testutil.NewFakeAPI(t, http.StatusOK, `{}`)
	p := newTestProvider(t, api, Config{})

	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{})
	if !stt.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	_, err = p.Transcribe(context.Background(), transcription.TranscriptionRequest{AudioPath: "/nonexistent/clip.wav"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestTranscribe_APIError(t *testing.T) {
	api := testutil.NewFakeAPI(t, http.StatusUnauthorized, `{"detail":"bad key"}`)
	p := newTestProvider(t, api, Config{})

	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: []byte("a")})
	if !stt.IsAuthentication(err) {
		t.Errorf("expected wrapped authentication error, got %v", err)
	}
}

func TestToResponse_GapSplitsSegment(t *testing.T) {
	w := func(text string, start, end float64) stt.Word {
		return stt.Word{Text: util.Ptr(text), Start: util.Ptr(start), End: util.Ptr(end), Type: util.Ptr("word")}
	}
	resp := &stt.Response{Words: []stt.Word{
		w("one", 0, 0.5),
		{Text: util.Ptr(" "), Type: util.Ptr("spacing")},
		w("two", 0.6, 1.0),
		{Text: util.Ptr(" "), Type: util.Ptr("spacing")},
		w("three", 5.0, 5.5),
		{Text: util.Ptr(" "), Type: util.Ptr("spacing")},
		{Text: util.Ptr("four")},
	}}

	out := toResponse(resp, 1.5)
	if len(out.Segments) != 2 {
		t.Fatalf("expected pause to split segments, got %+v", out.Segments)
	}
	if out.Segments[0].Text != "one two" || out.Segments[1].Text != "three four" {
		t.Errorf("unexpected segment text %+v", out.Segments)
	}
	if last := out.Words[len(out.Words)-1]; last.Start != 5.5 || last.End != 5.5 {
		t.Errorf("expected untimed word to inherit previous end, got %+v", last)
	}
	if out.Duration != 5.5 {
		t.Errorf("expected duration 5.5, got %v", out.Duration)
	}
}

func TestToResponse_Empty(t *testing.T) {
	out := toResponse(&stt.Response{}, defaultSegmentGap)
	if out.Text != "" || len(out.Segments) != 0 || len(out.Words) != 0 {
		t.Errorf("expected empty response, got %+v", out)
	}
}

func TestFactory(t *testing.T) {
	api := testutil.NewFakeAPI(t, http.StatusOK, testutil.DiarizedTranscript)

	mgr := transcription.NewManager()
	mgr.Register(ProviderName, Factory(stt.WithLogger(logger.NewNop())))

	if err := mgr.Initialize(ProviderName, map[string]any{}); err == nil {
		t.Error("expected missing api_key to fail")
	}
	if err := mgr.Initialize(ProviderName, map[string]any{"api_key": "k", "timeout": "soon"}); err == nil {
		t.Error("expected bad timeout to fail")
	}

	err := mgr.Initialize(ProviderName, map[string]any{
		"api_key":     "k",
		"base_url":    api.URL,
		"timeout":     "30s",
		"segment_gap": 2.0,
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	resp, err := transcription.Transcribe(context.Background(), mgr, transcription.TranscriptionRequest{Audio: []byte("a")})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(resp.Segments) != 2 {
		t.Errorf("expected segments, got %+v", resp.Segments)
	}

	p, err := mgr.GetByName(ProviderName)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != ProviderName || !p.IsAvailable(context.Background()) {
		t.Errorf("expected available %s provider", ProviderName)
	}
}

func TestIsAvailable(t *testing.T) {
	if (&Provider{}).IsAvailable(context.Background()) {
		t.Error("expected provider without client to be unavailable")
	}
	client, err := stt.New("", stt.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	if NewProvider(client, Config{}).IsAvailable(context.Background()) {
		t.Error("expected provider without key to be unavailable")
	}
}

var _ provider.Factory[transcription.Provider] = Factory()
