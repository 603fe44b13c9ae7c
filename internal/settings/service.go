// Package settings manages the user's AI configuration, persisted inside
// the application document.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mfeller/vitalog/internal/models"
)

const (
	apiKeyPrefix     = "sk-ant-"
	maxResponseLimit = 32768
)

// Store is the document store the settings live in.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// Service reads and writes AI settings.
type Service struct {
	store Store
}

// NewService creates a settings service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Settings returns the stored settings, or defaults when none were saved.
func (s *Service) Settings(ctx context.Context) (models.AISettings, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return models.AISettings{}, err
	}
	if doc.AISettings == nil {
		return models.DefaultAISettings(), nil
	}
	return *doc.AISettings, nil
}

// Save validates and persists the settings.
func (s *Service) Save(ctx context.Context, cfg models.AISettings) error {
	if err := validate(cfg); err != nil {
		return err
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	doc.AISettings = &cfg
	return s.store.Save(ctx, doc)
}

// HasValidAPIKey reports whether a plausibly valid key is configured.
func (s *Service) HasValidAPIKey(ctx context.Context) (bool, error) {
	cfg, err := s.Settings(ctx)
	if err != nil {
		return false, err
	}
	return cfg.APIKey != "" && strings.HasPrefix(cfg.APIKey, apiKeyPrefix), nil
}

// ClearAPIKey removes the stored key, keeping the other settings.
func (s *Service) ClearAPIKey(ctx context.Context) error {
	cfg, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	cfg.APIKey = ""
	return s.Save(ctx, cfg)
}

func validate(cfg models.AISettings) error {
	var problems []string

	if cfg.APIKey != "" && !strings.HasPrefix(cfg.APIKey, apiKeyPrefix) {
		problems = append(problems, fmt.Sprintf("API key must start with %q", apiKeyPrefix))
	}

	if cfg.Model != "" {
		known := false
		for _, m := range models.ClaudeModels {
			if m.Value == cfg.Model {
				known = true
				break
			}
		}
		if !known {
			problems = append(problems, "invalid model selected")
		}
	}

	if cfg.MaxResponseTokens < 1 || cfg.MaxResponseTokens > maxResponseLimit {
		problems = append(problems, fmt.Sprintf("max response tokens must be between 1 and %d", maxResponseLimit))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
