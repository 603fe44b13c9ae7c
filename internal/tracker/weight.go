package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mfeller/vitalog/internal/models"
)

// CreateWeightEntry is the input for logging a weight measurement.
type CreateWeightEntry struct {
	Date      time.Time
	WeightLbs float64
	Notes     string
}

// AddWeight validates and persists a new weight entry.
func (s *Service) AddWeight(ctx context.Context, in CreateWeightEntry) (*models.WeightEntry, error) {
	if err := validateWeight(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := models.WeightEntry{
		ID:        uuid.NewString(),
		Date:      in.Date,
		WeightLbs: in.WeightLbs,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.WeightEntries = append(doc.WeightEntries, entry)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListWeight returns all weight entries, newest first.
func (s *Service) ListWeight(ctx context.Context) ([]models.WeightEntry, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]models.WeightEntry, len(doc.WeightEntries))
	copy(entries, doc.WeightEntries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// DeleteWeight removes an entry by id, reporting false when absent.
func (s *Service) DeleteWeight(ctx context.Context, id string) (bool, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range doc.WeightEntries {
		if doc.WeightEntries[i].ID == id {
			doc.WeightEntries = append(doc.WeightEntries[:i], doc.WeightEntries[i+1:]...)
			if err := s.store.Save(ctx, doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
