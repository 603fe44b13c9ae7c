package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mfeller/vitalog/internal/models"
)

// CreateCardioSession is the input for logging a cardio workout.
// DistanceKm and CaloriesBurned are optional; zero means not recorded.
type CreateCardioSession struct {
	Date            time.Time
	Type            models.CardioType
	DurationMinutes int
	DistanceKm      float64
	CaloriesBurned  float64
	Notes           string
}

// AddCardio validates and persists a new cardio session.
func (s *Service) AddCardio(ctx context.Context, in CreateCardioSession) (*models.CardioSession, error) {
	if err := validateCardio(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := models.CardioSession{
		ID:              uuid.NewString(),
		Date:            in.Date,
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		DistanceKm:      in.DistanceKm,
		CaloriesBurned:  in.CaloriesBurned,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.CardioSessions = append(doc.CardioSessions, session)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListCardio returns all cardio sessions, newest first.
func (s *Service) ListCardio(ctx context.Context) ([]models.CardioSession, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	sessions := make([]models.CardioSession, len(doc.CardioSessions))
	copy(sessions, doc.CardioSessions)
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions, nil
}

// DeleteCardio removes a session by id, reporting false when absent.
func (s *Service) DeleteCardio(ctx context.Context, id string) (bool, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range doc.CardioSessions {
		if doc.CardioSessions[i].ID == id {
			doc.CardioSessions = append(doc.CardioSessions[:i], doc.CardioSessions[i+1:]...)
			if err := s.store.Save(ctx, doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
