package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestPutGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.Put(ctx, "2026/10/a.json", strings.NewReader(`{"text":"hi"}`), "application/json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, "2026/10/a.json", strings.NewReader(`{"text":"bye"}`), "application/json"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	rc, err := s.Get(ctx, "2026/10/a.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != `{"text":"bye"}` {
		t.Errorf("expected overwritten content, got %s", data)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.Get(context.Background(), "nope.json"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	s := newTestStorage(t)
	for _, key := range []string{"", "../escape.json", "/abs.json", "a/../../b"} {
		if err := s.Put(context.Background(), key, strings.NewReader("x"), ""); err == nil {
			t.Errorf("expected %q to be rejected", key)
		}
	}
}

func TestExistsDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

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
	if err := s.Delete(ctx, "a.json"); err != nil {
		t.Errorf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestList(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	for _, key := range []string{"t/b.json", "t/a.json", "other/c.json"} {
		_ = s.Put(ctx, key, strings.NewReader(key), "")
	}

	objects, err := s.List(ctx, "t/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 2 || objects[0].Key != "t/a.json" || objects[1].Key != "t/b.json" {
		t.Errorf("unexpected listing %+v", objects)
	}
	if objects[0].Size != int64(len("t/a.json")) {
		t.Errorf("unexpected size %d", objects[0].Size)
	}

	all, _ := s.List(ctx, "")
	if len(all) != 3 {
		t.Errorf("expected 3 objects, got %d", len(all))
	}
}

func TestRegisteredFactory(t *testing.T) {
	st, err := storage.New(context.Background(), storage.Config{BasePath: t.TempDir()}, logger.NewNop())
	if err != nil {
		t.Fatalf("storage.New failed: %v", err)
	}
	if _, ok := st.(*Storage); !ok {
		t.Errorf("expected local storage, got %T", st)
	}
}
