package stt

import (
	"cmp"
	"strconv"

	"github.com/kbukum/elevenlabs-stt/httpclient"
	"github.com/kbukum/elevenlabs-stt/util"
	"github.com/kbukum/elevenlabs-stt/validation"
)

// Limits documented by the service.
const (
	MaxSpeakers             = 32
	MaxTemperature          = 2.0
	MaxSeed                 = 2147483647
	MaxWebhookMetadataBytes = 16 * 1024
	MaxWebhookMetadataDepth = 2
)

// Request carries every parameter of one speech-to-text call. Nil pointers
// are absent and never sent. Requests are normally produced by
// SpeechToTextBuilder.Build.
type Request struct {
	// File is the audio or video payload. Nil means no file part is sent.
	// Exactly one of File and CloudStorageURL should be set.
	File []byte `json:"-"`

	ModelID string `json:"model_id" validate:"required"`

	// LanguageCode is an ISO-639 code that pins the transcription language.
	LanguageCode *string `json:"language_code,omitempty"`
	// TagAudioEvents marks events such as (laughter) in the transcript.
	TagAudioEvents *bool `json:"tag_audio_events,omitempty"`
	// NumSpeakers caps the number of predicted speakers.
	NumSpeakers *int `json:"num_speakers,omitempty" validate:"omitnil,min=1,max=32"`

	TimestampsGranularity *Granularity `json:"timestamps_granularity,omitempty" validate:"omitnil,oneof=none word character"`

	Diarize *bool `json:"diarize,omitempty"`
	// DiarizationThreshold only applies with Diarize=true and NumSpeakers unset.
	DiarizationThreshold *float64 `json:"diarization_threshold,omitempty"`

	// CloudStorageURL is an https URL the service fetches the media from.
	CloudStorageURL *string `json:"cloud_storage_url,omitempty"`

	// Webhook makes the call return early; the result is delivered later to
	// the account's speech-to-text webhooks.
	Webhook *bool `json:"webhook,omitempty"`
	// WebhookID targets one webhook. Only valid with Webhook=true.
	WebhookID *string `json:"webhook_id,omitempty"`

	Temperature *float64 `json:"temperature,omitempty" validate:"omitnil,gte=0,lte=2"`
	Seed        *int     `json:"seed,omitempty" validate:"omitnil,gte=0,lte=2147483647"`

	// UseMultiChannel transcribes up to 5 channels independently.
	UseMultiChannel *bool `json:"use_multi_channel,omitempty"`

	// WebhookMetadata is a JSON object echoed back with webhook deliveries.
	WebhookMetadata *string `json:"webhook_metadata,omitempty"`
}

// Fields returns the text form fields in wire order. model_id always comes
// first; absent optionals are skipped.
func (r Request) Fields() []httpclient.FormField {
	fields := []httpclient.FormField{{Name: "model_id", Value: cmp.Or(r.ModelID, DefaultModel)}}
	add := func(name string, value *string) {
		if value != nil {
			fields = append(fields, httpclient.FormField{Name: name, Value: *value})
		}
	}

	add("language_code", r.LanguageCode)
	add("tag_audio_events", formatBool(r.TagAudioEvents))
	add("num_speakers", formatInt(r.NumSpeakers))
	if r.TimestampsGranularity != nil {
		add("timestamps_granularity", util.Ptr(string(*r.TimestampsGranularity)))
	}
	add("diarize", formatBool(r.Diarize))
	add("diarization_threshold", formatFloat(r.DiarizationThreshold))
	add("cloud_storage_url", r.CloudStorageURL)
	add("webhook", formatBool(r.Webhook))
	add("webhook_id", r.WebhookID)
	add("temperature", formatFloat(r.Temperature))
	add("seed", formatInt(r.Seed))
	add("use_multi_channel", formatBool(r.UseMultiChannel))
	add("webhook_metadata", r.WebhookMetadata)

	return fields
}

// Body returns the multipart body for the request. The file part is named
// "file" and is present only when File is non-nil.
func (r Request) Body() *httpclient.MultipartBody {
	body := &httpclient.MultipartBody{Fields: r.Fields()}
	if r.File != nil {
		body.Files = []httpclient.FileField{{
			FieldName:   "file",
			FileName:    "file",
			ContentType: "application/octet-stream",
			Data:        r.File,
		}}
	}
	return body
}

// Validate checks the documented parameter constraints and returns a
// KindValidation error listing every violation.
func (r Request) Validate() error {
	v := validation.New().Merge(validation.Validate(r))

	v.Custom((r.File != nil) != (r.CloudStorageURL != nil), "file",
		"exactly one of file or cloud_storage_url must be provided")
	if r.CloudStorageURL != nil {
		v.HTTPSURL("cloud_storage_url", *r.CloudStorageURL)
	}
	if r.DiarizationThreshold != nil {
		v.Custom(util.Deref(r.Diarize), "diarization_threshold", "requires diarize=true")
		v.Custom(r.NumSpeakers == nil, "diarization_threshold", "cannot be combined with num_speakers")
	}
	if r.WebhookID != nil {
		v.Custom(util.Deref(r.Webhook), "webhook_id", "requires webhook=true")
	}
	if r.WebhookMetadata != nil {
		v.MaxBytes("webhook_metadata", *r.WebhookMetadata, MaxWebhookMetadataBytes)
		v.JSONObject("webhook_metadata", *r.WebhookMetadata, MaxWebhookMetadataDepth)
	}

	if appErr := v.Validate(); appErr != nil {
		return &Error{Kind: KindValidation, Message: appErr.Message, Err: appErr}
	}
	return nil
}

func formatBool(b *bool) *string {
	if b == nil {
		return nil
	}
	return util.Ptr(strconv.FormatBool(*b))
}

func formatInt(n *int) *string {
	if n == nil {
		return nil
	}
	return util.Ptr(strconv.Itoa(*n))
}

// formatFloat uses the shortest representation that round-trips, so 0.22
// is sent as "0.22" rather than "0.220000".
func formatFloat(f *float64) *string {
	if f == nil {
		return nil
	}
	return util.Ptr(strconv.FormatFloat(*f, 'f', -1, 64))
}
