package testutil

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Request is what the fake API recorded for one call.
type Request struct {
	Method   string
	Path     string
	APIKey   string
	Fields   map[string]string
	File     []byte
	Filename string
}

// FakeAPI answers every request with a fixed status and body and records
// the multipart form it was sent.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []Request
}

// NewFakeAPI starts a fake API that is closed when the test ends.
func NewFakeAPI(t testing.TB, status int, body string) *FakeAPI {
	t.Helper()
	api := &FakeAPI{status: status, body: body}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

// Respond changes the answer for subsequent requests.
func (a *FakeAPI) Respond(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status, a.body = status, body
}

// Requests returns a copy of everything recorded so far.
func (a *FakeAPI) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests...)
}

// Last returns the most recent request, failing the test if there is none.
func (a *FakeAPI) Last(t testing.TB) Request {
	t.Helper()
	reqs := a.Requests()
	if len(reqs) == 0 {
		t.Fatal("no request received")
	}
	return reqs[len(reqs)-1]
}

func (a *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		APIKey: r.Header.Get("xi-api-key"),
		Fields: map[string]string{},
	}
	if _, params, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && params["boundary"] != "" {
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			if part.FormName() == "file" {
				rec.File = data
				rec.Filename = part.FileName()
			} else {
				rec.Fields[part.FormName()] = string(data)
			}
		}
	}

	a.mu.Lock()
	a.requests = append(a.requests, rec)
	status, body := a.status, a.body
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
