package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadCreatesEmptyDocumentOnFirstRun(t *testing.T) {
	store := openTestStore(t)

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.SchemaVersion != models.CurrentSchemaVersion {
		t.Errorf("schema version = %d, want %d", doc.SchemaVersion, models.CurrentSchemaVersion)
	}
	if doc.CardioSessions == nil || doc.Conversations == nil {
		t.Error("sections must be initialized, not nil")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	doc.WeightEntries = append(doc.WeightEntries, models.WeightEntry{
		ID:        "w1",
		Date:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		WeightLbs: 180.5,
	})
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.WeightEntries) != 1 || got.WeightEntries[0].WeightLbs != 180.5 {
		t.Errorf("round trip lost data: %+v", got.WeightEntries)
	}
	if got.LastModified.IsZero() {
		t.Error("Save must stamp LastModified")
	}
}

func TestLoadMigratesLegacyDocument(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// A pre-versioning document with only the base tracking sections.
	legacy := `{"cardio_sessions": [], "weight_entries": [{"id": "w1", "weight_lbs": 175}]}`
	if _, err := store.db.ExecContext(ctx,
		`INSERT INTO document (id, body, updated_at) VALUES (1, ?, ?)`,
		legacy, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		t.Fatalf("seed legacy document: %v", err)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.SchemaVersion != models.CurrentSchemaVersion {
		t.Errorf("schema version = %d, want migrated to %d", doc.SchemaVersion, models.CurrentSchemaVersion)
	}
	if len(doc.WeightEntries) != 1 {
		t.Errorf("migration lost existing data: %+v", doc.WeightEntries)
	}
	if doc.Conversations == nil || doc.SavedFoods == nil {
		t.Error("migration must fill in missing sections")
	}

	// The upgraded document was persisted; a second load needs no migration.
	again, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again.SchemaVersion != models.CurrentSchemaVersion {
		t.Error("upgraded document was not persisted")
	}
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx,
		`INSERT INTO document (id, body, updated_at) VALUES (1, ?, ?)`,
		`{"conversations": "not an array"}`, "2026-01-01T00:00:00Z"); err != nil {
		t.Fatalf("seed corrupt document: %v", err)
	}

	_, err := store.Load(ctx)
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Code != CodeParse {
		t.Fatalf("err = %v, want StorageError with CodeParse", err)
	}
}

func TestClearResetsDocument(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	doc, _ := store.Load(ctx)
	doc.WeightEntries = append(doc.WeightEntries, models.WeightEntry{ID: "w1"})
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.WeightEntries) != 0 {
		t.Error("Clear must drop existing data")
	}
}

func TestInfoReportsFileSize(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	info, err := store.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.UsedBytes <= 0 {
		t.Errorf("UsedBytes = %d, want > 0", info.UsedBytes)
	}
}

func TestMigrateRejectsNewerSchema(t *testing.T) {
	doc := models.NewDocument()
	doc.SchemaVersion = models.CurrentSchemaVersion + 1
	if _, err := migrate(doc); err == nil {
		t.Error("migrate must reject documents from a newer app version")
	}
}
