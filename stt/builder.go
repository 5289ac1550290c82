package stt

import (
	"context"
	"encoding/json"

	"github.com/kbukum/elevenlabs-stt/util"
)

// SpeechToTextBuilder accumulates parameters for one call. It is a value:
// every setter returns a modified copy and leaves the receiver untouched, so
// a partially configured builder can be reused as a template.
//
//	resp, err := client.SpeechToText(audio).
//	    Model(stt.ModelScribeV1).
//	    Diarize(true).
//	    TimestampsGranularity(stt.GranularityWord).
//	    Execute(ctx)
type SpeechToTextBuilder struct {
	client *Client
	req    Request
}

// Model sets model_id.
func (b SpeechToTextBuilder) Model(modelID string) SpeechToTextBuilder {
	b.req.ModelID = modelID
	return b
}

// LanguageCode sets language_code.
func (b SpeechToTextBuilder) LanguageCode(code string) SpeechToTextBuilder {
	b.req.LanguageCode = util.Ptr(code)
	return b
}

// TagAudioEvents sets tag_audio_events.
func (b SpeechToTextBuilder) TagAudioEvents(on bool) SpeechToTextBuilder {
	b.req.TagAudioEvents = util.Ptr(on)
	return b
}

// NumSpeakers sets num_speakers.
func (b SpeechToTextBuilder) NumSpeakers(n int) SpeechToTextBuilder {
	b.req.NumSpeakers = util.Ptr(n)
	return b
}

// TimestampsGranularity sets timestamps_granularity.
func (b SpeechToTextBuilder) TimestampsGranularity(g Granularity) SpeechToTextBuilder {
	b.req.TimestampsGranularity = util.Ptr(g)
	return b
}

// Diarize sets diarize.
func (b SpeechToTextBuilder) Diarize(on bool) SpeechToTextBuilder {
	b.req.Diarize = util.Ptr(on)
	return b
}

// DiarizationThreshold sets diarization_threshold.
func (b SpeechToTextBuilder) DiarizationThreshold(threshold float64) SpeechToTextBuilder {
	b.req.DiarizationThreshold = util.Ptr(threshold)
	return b
}

// CloudStorageURL sets cloud_storage_url.
func (b SpeechToTextBuilder) CloudStorageURL(url string) SpeechToTextBuilder {
	b.req.CloudStorageURL = util.Ptr(url)
	return b
}

// Webhook sets webhook.
func (b SpeechToTextBuilder) Webhook(on bool) SpeechToTextBuilder {
	b.req.Webhook = util.Ptr(on)
	return b
}

// WebhookID sets webhook_id.
func (b SpeechToTextBuilder) WebhookID(id string) SpeechToTextBuilder {
	b.req.WebhookID = util.Ptr(id)
	return b
}

// Temperature sets temperature.
func (b SpeechToTextBuilder) Temperature(t float64) SpeechToTextBuilder {
	b.req.Temperature = util.Ptr(t)
	return b
}

// Seed sets seed.
func (b SpeechToTextBuilder) Seed(seed int) SpeechToTextBuilder {
	b.req.Seed = util.Ptr(seed)
	return b
}

// UseMultiChannel sets use_multi_channel.
func (b SpeechToTextBuilder) UseMultiChannel(on bool) SpeechToTextBuilder {
	b.req.UseMultiChannel = util.Ptr(on)
	return b
}

// WebhookMetadata sets webhook_metadata to a raw JSON string.
func (b SpeechToTextBuilder) WebhookMetadata(metadata string) SpeechToTextBuilder {
	b.req.WebhookMetadata = util.Ptr(metadata)
	return b
}

// WebhookMetadataJSON marshals v and sets it as webhook_metadata. On error
// the returned builder is the unchanged receiver.
func (b SpeechToTextBuilder) WebhookMetadataJSON(v any) (SpeechToTextBuilder, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return b, &Error{Kind: KindValidation, Message: "webhook_metadata: " + err.Error(), Err: err}
	}
	return b.WebhookMetadata(string(data)), nil
}

// Build finalizes the request, filling in DefaultModel when no model was set.
func (b SpeechToTextBuilder) Build() Request {
	req := b.req
	if req.ModelID == "" {
		req.ModelID = DefaultModel
	}
	return req
}

// Execute builds the request and sends it.
func (b SpeechToTextBuilder) Execute(ctx context.Context) (*Response, error) {
	return b.client.execute(ctx, b.Build())
}
