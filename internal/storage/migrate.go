package storage

import (
	"fmt"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

// migrate upgrades a loaded document to the current schema version in
// place. It returns true when anything changed so the caller can persist
// the upgraded document immediately.
func migrate(doc *models.Document) (bool, error) {
	if doc.SchemaVersion > models.CurrentSchemaVersion {
		return false, fmt.Errorf("document schema version %d is newer than supported version %d",
			doc.SchemaVersion, models.CurrentSchemaVersion)
	}

	changed := false

	// v0 -> v1: documents from before versioning carry only the base
	// tracking sections, possibly with missing fields.
	if doc.SchemaVersion < 1 {
		if doc.LastModified.IsZero() {
			doc.LastModified = time.Now().UTC()
		}
		doc.SchemaVersion = 1
		changed = true
	}

	// v1 -> v2: diet, chat, and AI settings sections were added.
	if doc.SchemaVersion < 2 {
		doc.SchemaVersion = 2
		changed = true
	}

	// Older documents (and hand-edited ones) may omit sections entirely;
	// services expect non-nil slices.
	changed = normalizeSections(doc) || changed

	return changed, nil
}

func normalizeSections(doc *models.Document) bool {
	changed := false
	if doc.CardioSessions == nil {
		doc.CardioSessions = []models.CardioSession{}
		changed = true
	}
	if doc.WeightEntries == nil {
		doc.WeightEntries = []models.WeightEntry{}
		changed = true
	}
	if doc.HealthReadings == nil {
		doc.HealthReadings = []models.HealthReading{}
		changed = true
	}
	if doc.SavedFoods == nil {
		doc.SavedFoods = []models.SavedFood{}
		changed = true
	}
	if doc.MealEntries == nil {
		doc.MealEntries = []models.MealEntry{}
		changed = true
	}
	if doc.Conversations == nil {
		doc.Conversations = []models.Conversation{}
		changed = true
	}
	return changed
}
