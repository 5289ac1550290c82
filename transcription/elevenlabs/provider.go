package elevenlabs

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/provider"
	"github.com/kbukum/elevenlabs-stt/stt"
	"github.com/kbukum/elevenlabs-stt/transcription"
	"github.com/kbukum/elevenlabs-stt/util"
)

// ProviderName is the registered name of the backend.
const ProviderName = "elevenlabs"

const defaultSegmentGap = 1.5

// Config holds the backend settings.
type Config struct {
	stt.Config `yaml:",inline" mapstructure:",squash"`

	// Model is used when a request names none.
	Model string `yaml:"model" mapstructure:"model"`
	// Language is used when a request names none.
	Language string `yaml:"language" mapstructure:"language"`
	// TagAudioEvents keeps events such as (laughter) in the transcript.
	TagAudioEvents bool `yaml:"tag_audio_events" mapstructure:"tag_audio_events"`
	// SegmentGap starts a new segment after a pause this long, in seconds.
	SegmentGap float64 `yaml:"segment_gap" mapstructure:"segment_gap"`
}

// Provider adapts stt.Client to transcription.Provider.
type Provider struct {
	client *stt.Client
	cfg    Config
	log    *logger.Logger
}

// NewProvider wraps an existing client.
func NewProvider(client *stt.Client, cfg Config) *Provider {
	if cfg.SegmentGap <= 0 {
		cfg.SegmentGap = defaultSegmentGap
	}
	cfg.Model = cmp.Or(cfg.Model, stt.DefaultModel)
	return &Provider{
		client: client,
		cfg:    cfg,
		log:    logger.Get("transcription").WithFields(logger.Fields("provider", ProviderName)),
	}
}

// Factory returns a provider.Factory that builds the backend from a config
// map such as {"api_key": "...", "model": "scribe_v1", "timeout": "2m"}.
// opts are applied to the underlying client after the map's settings.
func Factory(opts ...stt.Option) provider.Factory[transcription.Provider] {
	return func(m map[string]any) (transcription.Provider, error) {
		cfg, err := configFromMap(m)
		if err != nil {
			return nil, err
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: api_key is required", ProviderName)
		}
		client, err := stt.NewFromConfig(cfg.Config, nil, nil, opts...)
		if err != nil {
			return nil, err
		}
		return NewProvider(client, cfg), nil
	}
}

func configFromMap(m map[string]any) (Config, error) {
	var cfg Config
	if v, ok := m["api_key"].(string); ok {
		cfg.APIKey = v
	}
	if v, ok := m["base_url"].(string); ok {
		cfg.BaseURL = v
	}
	if v, ok := m["model"].(string); ok {
		cfg.Model = v
	}
	if v, ok := m["language"].(string); ok {
		cfg.Language = v
	}
	if v, ok := m["tag_audio_events"].(bool); ok {
		cfg.TagAudioEvents = v
	}
	if v, ok := m["validate_requests"].(bool); ok {
		cfg.ValidateRequests = v
	}
	if v, ok := m["segment_gap"].(float64); ok {
		cfg.SegmentGap = v
	}
	switch v := m["timeout"].(type) {
	case time.Duration:
		cfg.Timeout = v
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: invalid timeout %q: %w", ProviderName, v, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// Name returns ProviderName.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a client with a credential is configured. It
// makes no network call.
func (p *Provider) IsAvailable(context.Context) bool {
	return p.client != nil && p.client.APIKey() != ""
}

// CheckHealth delegates to the client.
func (p *Provider) CheckHealth(ctx context.Context) observability.Health {
	return p.client.CheckHealth(ctx)
}

// Transcribe uploads the audio and converts the result. Word timestamps are
// always requested so that segments can be built.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()
	span.SetAttributes(attribute.String(observability.AttrOperationName, ProviderName))

	b, err := p.builder(req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	resp, err := b.Execute(ctx)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, fmt.Errorf("%s transcribe: %w", ProviderName, err)
	}

	out := toResponse(resp, p.cfg.SegmentGap)
	p.log.Debug("transcription converted", logger.Fields(
		"segments", len(out.Segments),
		"words", len(out.Words),
		"duration_s", out.Duration,
	))
	return out, nil
}

func (p *Provider) builder(req transcription.TranscriptionRequest) (stt.SpeechToTextBuilder, error) {
	var b stt.SpeechToTextBuilder
	switch {
	case req.AudioPath != "":
		data, err := os.ReadFile(req.AudioPath)
		if err != nil {
			return b, fmt.Errorf("read audio file: %w", err)
		}
		b = p.client.SpeechToText(data)
	case req.Audio != nil:
		b = p.client.SpeechToText(req.Audio)
	case req.AudioURL != "":
		b = p.client.SpeechToText(nil).CloudStorageURL(req.AudioURL)
	default:
		return b, &stt.Error{Kind: stt.KindValidation, Message: "no audio given: set AudioPath, Audio or AudioURL"}
	}

	b = b.Model(cmp.Or(req.Model, p.cfg.Model)).
		TimestampsGranularity(stt.GranularityWord)
	if lang := cmp.Or(req.Language, p.cfg.Language); lang != "" {
		b = b.LanguageCode(lang)
	}
	if p.cfg.TagAudioEvents {
		b = b.TagAudioEvents(true)
	}
	if req.Diarize {
		b = b.Diarize(true)
	}
	if req.NumSpeakers > 0 {
		b = b.NumSpeakers(req.NumSpeakers)
	}
	return b, nil
}

// toResponse flattens the service response. Spacing tokens only contribute
// to segment text. A segment ends when the speaker changes or after a pause
// longer than gap seconds.
func toResponse(resp *stt.Response, gap float64) *transcription.TranscriptionResponse {
	out := &transcription.TranscriptionResponse{
		Text:                strings.TrimSpace(util.Deref(resp.Text)),
		Duration:            resp.Duration(),
		Language:            util.Deref(resp.LanguageCode),
		LanguageProbability: util.Deref(resp.LanguageProbability),
	}

	var cur *transcription.Segment
	var text strings.Builder
	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.TrimSpace(text.String())
		if cur.Text != "" {
			out.Segments = append(out.Segments, *cur)
		}
		cur = nil
		text.Reset()
	}

	lastEnd := 0.0
	for _, w := range resp.Words {
		typ := util.Deref(w.Type)
		start := util.Deref(w.Start)
		if w.Start == nil {
			start = lastEnd
		}
		end := util.Deref(w.End)
		if w.End == nil {
			end = start
		}
		speaker := util.Deref(w.SpeakerID)

		if typ == "spacing" {
			if cur != nil {
				text.WriteString(util.Deref(w.Text))
			}
			continue
		}

		if cur != nil && (speaker != cur.Speaker || start-cur.End > gap) {
			flush()
		}
		if cur == nil {
			cur = &transcription.Segment{Start: start, Speaker: speaker}
		}
		text.WriteString(util.Deref(w.Text))
		cur.End = end
		lastEnd = end

		out.Words = append(out.Words, transcription.Word{
			Text:    util.Deref(w.Text),
			Start:   start,
			End:     end,
			Speaker: speaker,
			Event:   typ == "audio_event",
		})
	}
	flush()

	return out
}
