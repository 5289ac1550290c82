package httpclient

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"testing"
)

type decodedPart struct {
	name, filename, contentType, data string
}

func decodeParts(t *testing.T, r io.Reader, contentType string) []decodedPart {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type %q: %v", contentType, err)
	}
	mr := multipart.NewReader(r, params["boundary"])
	var out []decodedPart
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		data, _ := io.ReadAll(p)
		out = append(out, decodedPart{p.FormName(), p.FileName(), p.Header.Get("Content-Type"), string(data)})
	}
}

func TestMultipartEncode(t *testing.T) {
	tests := []struct {
		name string
		body *MultipartBody
		want []decodedPart
	}{
		{
			name: "fields keep order",
			body: (&MultipartBody{}).Add("model_id", "scribe_v1").Add("language_code", "en").Add("diarize", "true"),
			want: []decodedPart{
				{name: "model_id", data: "scribe_v1"},
				{name: "language_code", data: "en"},
				{name: "diarize", data: "true"},
			},
		},
		{
			name: "files after fields",
			body: &MultipartBody{
				Files:  []FileField{{FieldName: "file", FileName: "file", Data: []byte("audio data")}},
				Fields: []FormField{{Name: "model_id", Value: "scribe_v1"}},
			},
			want: []decodedPart{
				{name: "model_id", data: "scribe_v1"},
				{name: "file", filename: "file", contentType: "application/octet-stream", data: "audio data"},
			},
		},
		{
			name: "content type and quoted filename",
			body: &MultipartBody{Files: []FileField{{FieldName: "audio", FileName: `say "hi".wav`, ContentType: "audio/wav", Data: []byte("wav")}}},
			want: []decodedPart{{name: "audio", filename: `say "hi".wav`, contentType: "audio/wav", data: "wav"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Two encodes must agree: retries call Encode again.
			for range 2 {
				r, ct, err := tt.body.Encode()
				if err != nil {
					t.Fatalf("Encode: %v", err)
				}
				got := decodeParts(t, r, ct)
				for i := range got {
					if got[i].filename == "" {
						got[i].contentType = ""
					}
				}
				if !slices.Equal(got, tt.want) {
					t.Fatalf("got %+v\nwant %+v", got, tt.want)
				}
			}
		})
	}
}

func TestMultipartField(t *testing.T) {
	mp := (&MultipartBody{}).Add("tag", "first").Add("tag", "second")
	if v, ok := mp.Field("tag"); !ok || v != "first" {
		t.Errorf("Field(tag) = %q, %v", v, ok)
	}
	if _, ok := mp.Field("missing"); ok {
		t.Error("expected missing field to be absent")
	}
}

func TestDo_MultipartOverridesContentType(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if r.FormValue("model_id") != "scribe_v1" || hdr.Filename != "file" || string(data) != "audio bytes" {
			t.Errorf("unexpected form %v %q %q", r.MultipartForm.Value, hdr.Filename, data)
		}
		_, _ = w.Write([]byte(`{"text":"hello world"}`))
	})

	resp, err := newClient(t, Config{BaseURL: srv.URL}).Do(t.Context(), Request{
		Method:  http.MethodPost,
		Path:    "/speech-to-text",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body: &MultipartBody{
			Fields: []FormField{{Name: "model_id", Value: "scribe_v1"}},
			Files:  []FileField{{FieldName: "file", FileName: "file", Data: []byte("audio bytes")}},
		},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(resp.Body) != `{"text":"hello world"}` {
		t.Errorf("body = %q", resp.Body)
	}
}
