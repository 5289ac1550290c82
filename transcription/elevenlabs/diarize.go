package elevenlabs

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/elevenlabs-stt/diarization"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/provider"
	"github.com/kbukum/elevenlabs-stt/stt"
	"github.com/kbukum/elevenlabs-stt/transcription"
)

var _ diarization.Provider = (*Provider)(nil)

// DiarizerFactory is Factory for the diarization registry. It accepts the
// same config map.
func DiarizerFactory(opts ...stt.Option) provider.Factory[diarization.Provider] {
	create := Factory(opts...)
	return func(m map[string]any) (diarization.Provider, error) {
		p, err := create(m)
		if err != nil {
			return nil, err
		}
		return p.(*Provider), nil
	}
}

// Diarize transcribes with speaker labelling and returns the speaker turns.
// Turns are split on speaker change only, never on pauses.
func (p *Provider) Diarize(ctx context.Context, req diarization.DiarizationRequest) (*diarization.DiarizationResponse, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanDiarize)
	defer span.End()
	span.SetAttributes(attribute.String(observability.AttrOperationName, ProviderName))

	b, err := p.builder(transcription.TranscriptionRequest{
		AudioPath:   req.AudioPath,
		Audio:       req.Audio,
		AudioURL:    req.AudioURL,
		Language:    req.Language,
		Diarize:     true,
		NumSpeakers: req.NumSpeakers,
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	if req.NumSpeakers == 0 && req.Threshold > 0 {
		b = b.DiarizationThreshold(req.Threshold)
	}

	resp, err := b.Execute(ctx)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, fmt.Errorf("%s diarize: %w", ProviderName, err)
	}

	tr := toResponse(resp, math.Inf(1))
	out := &diarization.DiarizationResponse{Segments: make([]diarization.Segment, 0, len(tr.Segments))}
	for _, s := range tr.Segments {
		out.Segments = append(out.Segments, diarization.Segment{
			Speaker: s.Speaker,
			Start:   s.Start,
			End:     s.End,
			Text:    s.Text,
		})
	}
	out.NumSpeakers = len(out.Speakers())
	span.SetAttributes(attribute.Int("diarization.speakers", out.NumSpeakers))
	return out, nil
}
