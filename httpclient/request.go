package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// Body is a request payload. Encode is called once per attempt, so a
// retried upload sends the same bytes again.
type Body interface {
	Encode() (r io.Reader, contentType string, err error)
}

// Bytes is a raw payload with an explicit content type.
type Bytes struct {
	Data        []byte
	ContentType string
}

func (b Bytes) Encode() (io.Reader, string, error) {
	return bytes.NewReader(b.Data), b.ContentType, nil
}

// JSON marshals V on every attempt.
type JSON struct {
	V any
}

func (j JSON) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(j.V)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

var (
	_ Body = (*MultipartBody)(nil)
	_ Body = Bytes{}
	_ Body = JSON{}
)

// Request describes an outbound HTTP request.
type Request struct {
	Method string
	// Path is joined to the client's BaseURL unless it is an absolute URL.
	Path string
	// Headers override the client defaults for this request.
	Headers map[string]string
	Query   url.Values
	Body    Body
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	StatusCode int
	// Headers holds the first value per canonical key.
	Headers map[string]string
	Body    []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Header returns a response header value using canonical key lookup.
func (r *Response) Header(key string) string {
	return r.Headers[http.CanonicalHeaderKey(key)]
}
