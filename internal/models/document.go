package models

import "time"

// CurrentSchemaVersion is bumped whenever the document layout changes.
// v1: cardio, weight, health readings. v2: diet, chat, AI settings.
const CurrentSchemaVersion = 2

// Document is the root container for all application data, persisted as
// a single record. Services read the whole document, modify their own
// section, and write the whole document back.
type Document struct {
	SchemaVersion  int             `json:"schema_version"`
	CardioSessions []CardioSession `json:"cardio_sessions"`
	WeightEntries  []WeightEntry   `json:"weight_entries"`
	HealthReadings []HealthReading `json:"health_readings"`
	SavedFoods     []SavedFood     `json:"saved_foods"`
	MealEntries    []MealEntry     `json:"meal_entries"`
	Conversations  []Conversation  `json:"conversations"`
	AISettings     *AISettings     `json:"ai_settings,omitempty"`
	LastModified   time.Time       `json:"last_modified"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		SchemaVersion:  CurrentSchemaVersion,
		CardioSessions: []CardioSession{},
		WeightEntries:  []WeightEntry{},
		HealthReadings: []HealthReading{},
		SavedFoods:     []SavedFood{},
		MealEntries:    []MealEntry{},
		Conversations:  []Conversation{},
		LastModified:   time.Now().UTC(),
	}
}
