package tracker

import (
	"context"

	"github.com/mfeller/vitalog/internal/models"
)

// Store is the document store all tracker records live in.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// Service provides CRUD over the tracking sections of the document.
type Service struct {
	store Store
}

// NewService creates a tracker service.
func NewService(store Store) *Service {
	return &Service{store: store}
}
