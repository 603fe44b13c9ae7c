package main

import (
	"context"
	"os"

	"github.com/mfeller/vitalog/internal/models"
	"github.com/mfeller/vitalog/internal/settings"
)

// envSettings layers an ANTHROPIC_API_KEY environment fallback over the
// stored settings. A key saved through /settings always wins; the env
// var only fills in when nothing is stored.
type envSettings struct {
	inner *settings.Service
}

func (e *envSettings) Settings(ctx context.Context) (models.AISettings, error) {
	cfg, err := e.inner.Settings(ctx)
	if err != nil {
		return models.AISettings{}, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return cfg, nil
}
