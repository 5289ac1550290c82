package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/elevenlabs-stt/encryption"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/storage"
	"github.com/kbukum/elevenlabs-stt/stt"
)

// DefaultPrefix is the key prefix under which records are stored.
const DefaultPrefix = "transcripts/"

// ErrNotFound is returned by Load for an unknown ID.
var ErrNotFound = errors.New("archive: transcript not found")

// ErrNoIndex is returned by Search when the archive has no index.
var ErrNoIndex = errors.New("archive: no index configured")

// Record is one archived transcript.
type Record struct {
	ID            string          `json:"id"`
	ReceivedAt    time.Time       `json:"received_at"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	Transcription stt.Response    `json:"transcription"`
}

// Archive stores transcripts as JSON objects in a storage backend.
type Archive struct {
	store  storage.Storage
	prefix string
	index  *Index
	sealer encryption.Sealer
	log    *logger.Logger
	now    func() time.Time
}

// Option configures an Archive.
type Option func(*Archive)

// WithPrefix sets the key prefix. A trailing slash is added when missing.
func WithPrefix(prefix string) Option {
	return func(a *Archive) {
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		a.prefix = prefix
	}
}

// WithIndex keeps ix in step with the stored records.
func WithIndex(ix *Index) Option {
	return func(a *Archive) { a.index = ix }
}

// WithSealer encrypts records at rest. The object key is bound to each
// ciphertext, so a record copied to another key fails to load. An index, if
// configured, still holds the transcript text in clear.
func WithSealer(s encryption.Sealer) Option {
	return func(a *Archive) { a.sealer = s }
}

func WithLogger(l *logger.Logger) Option {
	return func(a *Archive) { a.log = l }
}

// New creates an Archive over store.
func New(store storage.Storage, opts ...Option) *Archive {
	a := &Archive{
		store:  store,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get("archive")
	}
	return a
}

func (a *Archive) key(id string) string {
	return a.prefix + id + ".json"
}

func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("archive: invalid id %q", id)
	}
	return nil
}

// Save writes rec, replacing any record with the same ID. An empty ID is
// taken from the transcription ID, or generated.
func (a *Archive) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		if tid := rec.Transcription.TranscriptionID; tid != nil && *tid != "" {
			rec.ID = *tid
		} else {
			rec.ID = uuid.NewString()
		}
	}
	if err := validID(rec.ID); err != nil {
		return err
	}
	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = a.now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("archive: encode %s: %w", rec.ID, err)
	}
	key, contentType := a.key(rec.ID), "application/json"
	if a.sealer != nil {
		if data, err = a.sealer.Seal(data, []byte(key)); err != nil {
			return fmt.Errorf("archive: encrypt %s: %w", rec.ID, err)
		}
		contentType = "application/octet-stream"
	}
	if err := a.store.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return err
	}
	if a.index != nil {
		if err := a.index.Upsert(ctx, rec); err != nil {
			return err
		}
	}

	a.log.Debug("transcript archived", logger.Fields("id", rec.ID, "bytes", len(data)))
	return nil
}

// Load reads the record with the given ID.
func (a *Archive) Load(ctx context.Context, id string) (*Record, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	key := a.key(id)
	rc, err := a.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: read %s: %w", id, err)
	}
	if a.sealer != nil {
		if data, err = a.sealer.Open(data, []byte(key)); err != nil {
			return nil, fmt.Errorf("archive: decrypt %s: %w", id, err)
		}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", id, err)
	}
	return &rec, nil
}

// List returns the IDs of every archived record, sorted.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	objects, err := a.store.List(ctx, a.prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(objects))
	for _, obj := range objects {
		rest := strings.TrimPrefix(obj.Key, a.prefix)
		if strings.Contains(rest, "/") || path.Ext(rest) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(rest, ".json"))
	}
	return ids, nil
}

// Delete removes a record. Deleting an unknown ID is not an error.
func (a *Archive) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := a.store.Delete(ctx, a.key(id)); err != nil {
		return err
	}
	if a.index != nil {
		return a.index.Remove(ctx, id)
	}
	return nil
}

// Search queries the index.
func (a *Archive) Search(ctx context.Context, q Query) ([]Entry, error) {
	if a.index == nil {
		return nil, ErrNoIndex
	}
	return a.index.Search(ctx, q)
}
