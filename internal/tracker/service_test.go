package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

type memStore struct {
	doc *models.Document
}

func (m *memStore) Load(ctx context.Context) (*models.Document, error) { return m.doc, nil }
func (m *memStore) Save(ctx context.Context, doc *models.Document) error {
	m.doc = doc
	return nil
}

func newMemService() (*Service, *memStore) {
	store := &memStore{doc: models.NewDocument()}
	return NewService(store), store
}

func TestAddWeightPersistsEntry(t *testing.T) {
	svc, store := newMemService()

	entry, err := svc.AddWeight(context.Background(), CreateWeightEntry{Date: testDate, WeightLbs: 182.4, Notes: "morning"})
	if err != nil {
		t.Fatalf("AddWeight: %v", err)
	}
	if entry.ID == "" || entry.CreatedAt.IsZero() {
		t.Error("entry must get an ID and timestamps")
	}
	if len(store.doc.WeightEntries) != 1 {
		t.Fatalf("stored %d entries, want 1", len(store.doc.WeightEntries))
	}
}

func TestAddWeightRejectsInvalidInput(t *testing.T) {
	svc, store := newMemService()

	if _, err := svc.AddWeight(context.Background(), CreateWeightEntry{Date: testDate, WeightLbs: 10}); err == nil {
		t.Fatal("invalid weight accepted")
	}
	if len(store.doc.WeightEntries) != 0 {
		t.Error("invalid input must not be persisted")
	}
}

func TestListCardioNewestFirst(t *testing.T) {
	svc, _ := newMemService()
	ctx := context.Background()

	for _, d := range []time.Time{testDate, testDate.AddDate(0, 0, 2), testDate.AddDate(0, 0, 1)} {
		if _, err := svc.AddCardio(ctx, CreateCardioSession{Date: d, Type: models.CardioRunning, DurationMinutes: 30}); err != nil {
			t.Fatalf("AddCardio: %v", err)
		}
	}

	sessions, err := svc.ListCardio(ctx)
	if err != nil {
		t.Fatalf("ListCardio: %v", err)
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Date.After(sessions[i-1].Date) {
			t.Fatal("sessions not sorted newest first")
		}
	}
}

func TestDeleteReading(t *testing.T) {
	svc, _ := newMemService()
	ctx := context.Background()

	reading, err := svc.AddBloodPressure(ctx, CreateBloodPressure{Date: testDate, Systolic: 118, Diastolic: 76})
	if err != nil {
		t.Fatalf("AddBloodPressure: %v", err)
	}

	deleted, err := svc.DeleteReading(ctx, reading.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteReading = (%v, %v), want (true, nil)", deleted, err)
	}
	deleted, err = svc.DeleteReading(ctx, reading.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestReadingTypesTagged(t *testing.T) {
	svc, store := newMemService()
	ctx := context.Background()

	if _, err := svc.AddGlucose(ctx, CreateBloodGlucose{Date: testDate, GlucoseMmol: 5.2}); err != nil {
		t.Fatalf("AddGlucose: %v", err)
	}
	if _, err := svc.AddKetone(ctx, CreateKetone{Date: testDate, KetoneMmol: 1.1}); err != nil {
		t.Fatalf("AddKetone: %v", err)
	}

	types := map[models.ReadingType]bool{}
	for _, r := range store.doc.HealthReadings {
		types[r.Type] = true
	}
	if !types[models.ReadingBloodGlucose] || !types[models.ReadingKetone] {
		t.Errorf("reading types = %v", types)
	}
}
