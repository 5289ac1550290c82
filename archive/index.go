package archive

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"github.com/kbukum/elevenlabs-stt/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	migrationsDir   = "migrations"
	migrationsTable = "transcript_migrations"

	defaultSearchLimit = 100
	maxSearchLimit     = 1000
)

// Entry is the searchable summary of a record kept in the index.
type Entry struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Language   string    `json:"language"`
	Text       string    `json:"text"`
	Duration   float64   `json:"duration"`
	Words      int       `json:"words"`
	Speakers   int       `json:"speakers"`
	ReceivedAt time.Time `json:"received_at"`
}

func (Entry) TableName() string { return "transcripts" }

func entryFor(rec *Record) *Entry {
	e := &Entry{
		ID:         rec.ID,
		Duration:   rec.Transcription.Duration(),
		Speakers:   len(rec.Transcription.Speakers()),
		ReceivedAt: rec.ReceivedAt.UTC(),
	}
	if rec.Transcription.LanguageCode != nil {
		e.Language = *rec.Transcription.LanguageCode
	}
	if rec.Transcription.Text != nil {
		e.Text = *rec.Transcription.Text
	}
	for _, w := range rec.Transcription.Words {
		if w.Type != nil && *w.Type == "word" {
			e.Words++
		}
	}
	return e
}

// Query filters a search. Zero fields match everything.
type Query struct {
	Language string
	// Text matches transcripts containing it, case-insensitively for ASCII.
	Text  string
	Since time.Time
	// Limit defaults to 100 and is capped at 1000.
	Limit int
}

// Index is a SQL index over archived records.
type Index struct {
	db *database.DB
}

// NewIndex applies the index migrations and returns the index.
func NewIndex(db *database.DB) (*Index, error) {
	if err := db.MigrateUp(migrations, migrationsDir, migrationsTable); err != nil {
		return nil, fmt.Errorf("archive: migrate index: %w", err)
	}
	return &Index{db: db}, nil
}

// Upsert inserts or replaces the entry for rec.
func (ix *Index) Upsert(ctx context.Context, rec *Record) error {
	err := ix.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(entryFor(rec)).Error
	if err != nil {
		return fmt.Errorf("archive: index %s: %w", rec.ID, err)
	}
	return nil
}

// Remove drops the entry for id.
func (ix *Index) Remove(ctx context.Context, id string) error {
	return ix.db.WithContext(ctx).Delete(&Entry{}, "id = ?", id).Error
}

// Search returns matching entries, newest first.
func (ix *Index) Search(ctx context.Context, q Query) ([]Entry, error) {
	limit := q.Limit
	switch {
	case limit <= 0:
		limit = defaultSearchLimit
	case limit > maxSearchLimit:
		limit = maxSearchLimit
	}

	tx := ix.db.WithContext(ctx).Model(&Entry{})
	if q.Language != "" {
		tx = tx.Where("language = ?", q.Language)
	}
	if q.Text != "" {
		tx = tx.Where("text LIKE ? ESCAPE '\\'", "%"+escapeLike(q.Text)+"%")
	}
	if !q.Since.IsZero() {
		tx = tx.Where("received_at >= ?", q.Since.UTC())
	}

	var entries []Entry
	if err := tx.Order("received_at DESC").Order("id").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("archive: search: %w", err)
	}
	return entries, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
