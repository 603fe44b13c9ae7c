package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mfeller/vitalog/internal/models"
)

// CreateBloodPressure is the input for a blood pressure reading.
type CreateBloodPressure struct {
	Date      time.Time
	Systolic  int
	Diastolic int
	Notes     string
}

// CreateBloodGlucose is the input for a blood glucose reading.
type CreateBloodGlucose struct {
	Date        time.Time
	GlucoseMmol float64
	Notes       string
}

// CreateKetone is the input for a ketone reading.
type CreateKetone struct {
	Date       time.Time
	KetoneMmol float64
	Notes      string
}

// AddBloodPressure validates and persists a blood pressure reading.
func (s *Service) AddBloodPressure(ctx context.Context, in CreateBloodPressure) (*models.HealthReading, error) {
	if err := validateBloodPressure(in); err != nil {
		return nil, err
	}
	return s.appendReading(ctx, models.HealthReading{
		Type:      models.ReadingBloodPressure,
		Date:      in.Date,
		Systolic:  in.Systolic,
		Diastolic: in.Diastolic,
		Notes:     in.Notes,
	})
}

// AddGlucose validates and persists a blood glucose reading.
func (s *Service) AddGlucose(ctx context.Context, in CreateBloodGlucose) (*models.HealthReading, error) {
	if err := validateGlucose(in); err != nil {
		return nil, err
	}
	return s.appendReading(ctx, models.HealthReading{
		Type:        models.ReadingBloodGlucose,
		Date:        in.Date,
		GlucoseMmol: in.GlucoseMmol,
		Notes:       in.Notes,
	})
}

// AddKetone validates and persists a ketone reading.
func (s *Service) AddKetone(ctx context.Context, in CreateKetone) (*models.HealthReading, error) {
	if err := validateKetone(in); err != nil {
		return nil, err
	}
	return s.appendReading(ctx, models.HealthReading{
		Type:       models.ReadingKetone,
		Date:       in.Date,
		KetoneMmol: in.KetoneMmol,
		Notes:      in.Notes,
	})
}

func (s *Service) appendReading(ctx context.Context, reading models.HealthReading) (*models.HealthReading, error) {
	now := time.Now().UTC()
	reading.ID = uuid.NewString()
	reading.CreatedAt = now
	reading.UpdatedAt = now

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.HealthReadings = append(doc.HealthReadings, reading)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &reading, nil
}

// ListReadings returns all health readings, newest first.
func (s *Service) ListReadings(ctx context.Context) ([]models.HealthReading, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	readings := make([]models.HealthReading, len(doc.HealthReadings))
	copy(readings, doc.HealthReadings)
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Date.After(readings[j].Date)
	})
	return readings, nil
}

// DeleteReading removes a reading by id, reporting false when absent.
func (s *Service) DeleteReading(ctx context.Context, id string) (bool, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range doc.HealthReadings {
		if doc.HealthReadings[i].ID == id {
			doc.HealthReadings = append(doc.HealthReadings[:i], doc.HealthReadings[i+1:]...)
			if err := s.store.Save(ctx, doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
