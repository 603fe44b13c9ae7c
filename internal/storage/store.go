// Package storage persists the whole application document in a local
// SQLite database. The document is stored as a single JSON row; every
// load reads fresh state and every save is a whole-document replace, so
// concurrent writers merge last-write-wins at document granularity.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mfeller/vitalog/internal/models"
)

// Store handles persistence of the application document.
type Store struct {
	db   *sql.DB
	path string
}

// StorageInfo reports how much space the database occupies on disk.
type StorageInfo struct {
	UsedBytes int64
}

// Open creates the database file (and parent directory) if needed and
// initializes the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, storageErr(CodeNotAvailable, "failed to create data directory: %w", err)
	}

	// WAL mode allows a reader during a write; the busy timeout covers
	// the brief lock contention that still occurs.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storageErr(CodeNotAvailable, "failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageErr(CodeNotAvailable, "failed to ping database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, storageErr(CodeNotAvailable, "failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS document (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		body       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Load reads the current document. On first run it creates and persists
// an empty document; on subsequent runs it validates the raw JSON,
// unmarshals it, and runs the migration chain, persisting the upgraded
// document when a migration applied.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM document WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		doc := models.NewDocument()
		if err := s.write(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, storageErr(CodeNotAvailable, "failed to read document: %w", err)
	}

	raw := []byte(body)
	if err := validateRawDocument(raw); err != nil {
		return nil, &StorageError{Code: CodeParse, Err: err}
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, storageErr(CodeParse, "failed to parse document: %w", err)
	}

	changed, err := migrate(&doc)
	if err != nil {
		return nil, &StorageError{Code: CodeMigration, Err: err}
	}
	if changed {
		if err := s.write(ctx, &doc); err != nil {
			return nil, err
		}
	}

	return &doc, nil
}

// Save persists the document, bumping its LastModified timestamp.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	doc.LastModified = time.Now().UTC()
	return s.write(ctx, doc)
}

func (s *Store) write(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return storageErr(CodeSerialization, "failed to marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document (id, body, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(data), doc.LastModified.Format(time.RFC3339Nano))
	if err != nil {
		return storageErr(CodeNotAvailable, "failed to write document: %w", err)
	}
	return nil
}

// Info reports disk usage of the backing database file.
func (s *Store) Info() (StorageInfo, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return StorageInfo{}, storageErr(CodeNotAvailable, "failed to stat database: %w", err)
	}
	return StorageInfo{UsedBytes: fi.Size()}, nil
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Clear replaces the stored document with a fresh empty one.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM document WHERE id = 1`); err != nil {
		return storageErr(CodeNotAvailable, "failed to clear document: %w", err)
	}
	return s.write(ctx, models.NewDocument())
}
