package s3

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/elevenlabs-stt/storage"
)

const testBucket = "transcripts"

// fakeS3 serves the path-style subset of the S3 API the backend uses.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

type listResult struct {
	XMLName     xml.Name       `xml:"ListBucketResult"`
	Name        string         `xml:"Name"`
	Prefix      string         `xml:"Prefix"`
	KeyCount    int            `xml:"KeyCount"`
	IsTruncated bool           `xml:"IsTruncated"`
	Contents    []listContents `xml:"Contents"`
}

type listContents struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	Size         int64  `xml:"Size"`
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rest, ok := strings.CutPrefix(r.URL.Path, "/"+testBucket)
	if !ok {
		http.Error(w, "no such bucket", http.StatusNotFound)
		return
	}
	key := strings.TrimPrefix(rest, "/")

	switch {
	case r.Method == http.MethodGet && key == "" && r.URL.Query().Get("list-type") == "2":
		prefix := r.URL.Query().Get("prefix")
		res := listResult{Name: testBucket, Prefix: prefix}
		for k, v := range f.objects {
			if strings.HasPrefix(k, prefix) {
				res.Contents = append(res.Contents, listContents{
					Key:          k,
					LastModified: "2026-10-17T00:00:00.000Z",
					Size:         int64(len(v)),
				})
			}
		}
		sort.Slice(res.Contents, func(i, j int) bool { return res.Contents[i].Key > res.Contents[j].Key })
		res.KeyCount = len(res.Contents)
		w.Header().Set("Content-Type", "application/xml")
		_ = xml.NewEncoder(w).Encode(res)
	case r.Method == http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[key] = data
		f.types[key] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet, r.Method == http.MethodHead:
		data, ok := f.objects[key]
		if !ok {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", f.types[key])
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	case r.Method == http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T) (*Storage, *fakeS3) {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	fake := &fakeS3{objects: make(map[string][]byte), types: make(map[string]string)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := New(context.Background(), storage.Config{
		Provider:  storage.ProviderS3,
		Bucket:    testBucket,
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, fake
}

func TestPutGet(t *testing.T) {
	s, fake := newTestStorage(t)
	ctx := context.Background()

	if err := s.Put(ctx, "t/a.json", strings.NewReader(`{"text":"hi"}`), "application/json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if fake.types["t/a.json"] != "application/json" {
		t.Errorf("expected content type to be sent, got %q", fake.types["t/a.json"])
	}

	rc, err := s.Get(ctx, "t/a.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != `{"text":"hi"}` {
		t.Errorf("unexpected content %s", data)
	}
}

func TestGetMissing(t *testing.T) {
	s, _ := newTestStorage(t)
	if _, err := s.Get(context.Background(), "missing.json"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExistsDelete(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	if ok, err := s.Exists(ctx, "a.json"); err != nil || ok {
		t.Fatalf("expected missing object, got %v %v", ok, err)
	}
	_ = s.Put(ctx, "a.json", strings.NewReader("x"), "")
	if ok, err := s.Exists(ctx, "a.json"); err != nil || !ok {
		t.Fatalf("expected object to exist, got %v %v", ok, err)
	}
	if err := s.Delete(ctx, "a.json"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok, _ := s.Exists(ctx, "a.json"); ok {
		t.Error("expected object to be gone")
	}
}

func TestList(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	for _, key := range []string{"t/a.json", "t/b.json", "x/c.json"} {
		_ = s.Put(ctx, key, strings.NewReader("abc"), "")
	}

	objects, err := s.List(ctx, "t/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 2 || objects[0].Key != "t/a.json" || objects[1].Key != "t/b.json" {
		t.Fatalf("expected sorted listing, got %+v", objects)
	}
	if objects[0].Size != 3 {
		t.Errorf("expected size 3, got %d", objects[0].Size)
	}
	if want := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC); !objects[0].LastModified.Equal(want) {
		t.Errorf("unexpected modification time %s", objects[0].LastModified)
	}
}
